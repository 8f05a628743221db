package leave

import (
	"context"
	"encoding/json"
	"time"

	leaveerrors "unicube-hr/internal/leave/errors"
	"unicube-hr/internal/messaging/kafka"
	"unicube-hr/internal/shared/contextutil"
	"unicube-hr/internal/shared/dateutil"
	"unicube-hr/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	reasonMinLen = 10
	reasonMaxLen = 200
)

// AttendanceMarker is the authority path into the attendance engine:
// stamps and reverts issued here bypass the approved-leave lock, because
// the lifecycle engine is what set the lock in the first place.
type AttendanceMarker interface {
	MarkOnLeave(ctx context.Context, userID, date string) error
	RevertOnLeave(ctx context.Context, userID, startDate, endDate string) error
}

// ReportInvalidator drops any cached insight report after leave data
// changes.
type ReportInvalidator interface {
	InvalidateReport(ctx context.Context)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, requester user.User, req SubmitLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetAllForUser(ctx context.Context, userID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Decide(ctx context.Context, id, status string) (LeaveResponse, error)
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, id string) (LeaveResponse, error)
}

type service struct {
	repo       Repository
	attendance AttendanceMarker
	outbox     kafka.OutboxRepository
	reports    ReportInvalidator
	logger     *zap.Logger
}

func NewService(repo Repository, attendance AttendanceMarker, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, attendance: attendance, logger: l}
}

// NewServiceWithHooks wires the optional side channels: decision events
// into the outbox and insight report cache invalidation.
func NewServiceWithHooks(
	repo Repository,
	attendance AttendanceMarker,
	outbox kafka.OutboxRepository,
	reports ReportInvalidator,
	logger ...*zap.Logger,
) Service {
	s := NewService(repo, attendance, logger...).(*service)
	s.outbox = outbox
	s.reports = reports
	return s
}

func (s *service) Submit(ctx context.Context, requester user.User, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.log(ctx).Debug("submit leave requested",
		zap.String("user_id", requester.ID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if len(req.Reason) < reasonMinLen || len(req.Reason) > reasonMaxLen {
		return LeaveResponse{}, leaveerrors.ErrReasonLength
	}
	startDate, err := dateutil.Canonical(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := dateutil.Canonical(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate > endDate {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	rec := LeaveRequest{
		ID:            uuid.New().String(),
		UserID:        requester.ID,
		UserName:      requester.Name,
		UserAvatarURL: requester.AvatarURL,
		StartDate:     startDate,
		EndDate:       endDate,
		Reason:        req.Reason,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.Prepend(ctx, rec); err != nil {
		s.log(ctx).Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.invalidateReport(ctx)

	s.log(ctx).Info("submit leave success",
		zap.String("leave_id", rec.ID),
		zap.String("user_id", rec.UserID),
	)
	return mapToResponse(rec), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	reqs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(reqs), nil
}

func (s *service) GetAllForUser(ctx context.Context, userID string) ([]LeaveResponse, error) {
	reqs, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(reqs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) Approve(ctx context.Context, id string) (LeaveResponse, error) {
	return s.Decide(ctx, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id string) (LeaveResponse, error) {
	return s.Decide(ctx, id, StatusRejected)
}

// Decide transitions a request to approved or rejected and keeps the
// attendance collection consistent with the decision. A decision may be
// revised (approved -> rejected and back), re-running its side effects;
// repeating the current decision or returning to pending is rejected.
func (s *service) Decide(ctx context.Context, id, status string) (LeaveResponse, error) {
	s.log(ctx).Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("target_status", status),
	)

	if status != StatusApproved && status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	reqs, err := s.repo.FindAll(ctx)
	if err != nil {
		return LeaveResponse{}, err
	}
	idx := -1
	for i := range reqs {
		if reqs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if reqs[idx].Status == status {
		s.log(ctx).Warn("decide leave repeated decision",
			zap.String("leave_id", id),
			zap.String("status", status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	reqs[idx].Status = status
	if err := s.repo.ReplaceAll(ctx, reqs); err != nil {
		s.log(ctx).Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	rec := reqs[idx]

	switch status {
	case StatusApproved:
		// approving always wins over prior manual marks
		for date := range dateutil.Range(rec.StartDate, rec.EndDate) {
			if err := s.attendance.MarkOnLeave(ctx, rec.UserID, date); err != nil {
				s.log(ctx).Error("stamp attendance failed",
					zap.String("leave_id", id),
					zap.String("date", date),
					zap.Error(err),
				)
				return LeaveResponse{}, err
			}
		}
	case StatusRejected:
		if err := s.attendance.RevertOnLeave(ctx, rec.UserID, rec.StartDate, rec.EndDate); err != nil {
			s.log(ctx).Error("revert attendance failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	s.appendDecisionEvent(ctx, rec)
	s.invalidateReport(ctx)

	s.log(ctx).Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", status),
	)
	return mapToResponse(rec), nil
}

// appendDecisionEvent records the decision for the outbox worker. Delivery
// is best-effort: a full outbox must not fail the admin action.
func (s *service) appendDecisionEvent(ctx context.Context, rec LeaveRequest) {
	if s.outbox == nil {
		return
	}
	payload, err := json.Marshal(mapToResponse(rec))
	if err != nil {
		s.log(ctx).Error("marshal decision event failed", zap.Error(err))
		return
	}
	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave_request",
		AggregateID:   rec.ID,
		EventType:     "leave." + rec.Status,
		Topic:         kafka.LeaveEventsTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.outbox.Append(ctx, event); err != nil {
		s.log(ctx).Error("append decision event failed",
			zap.String("leave_id", rec.ID),
			zap.Error(err),
		)
	}
}

// log returns the request-scoped logger when middleware attached one.
func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) invalidateReport(ctx context.Context) {
	if s.reports != nil {
		s.reports.InvalidateReport(ctx)
	}
}

func mapToResponse(rec LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:            rec.ID,
		UserID:        rec.UserID,
		UserName:      rec.UserName,
		UserAvatarURL: rec.UserAvatarURL,
		StartDate:     rec.StartDate,
		EndDate:       rec.EndDate,
		TotalDays:     dateutil.DayCount(rec.StartDate, rec.EndDate),
		Reason:        rec.Reason,
		Status:        rec.Status,
		CreatedAt:     rec.CreatedAt,
	}
}

func mapToListResponse(reqs []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(reqs))
	for i, rec := range reqs {
		resp[i] = mapToResponse(rec)
	}
	return resp
}
