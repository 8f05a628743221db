package attendance

import (
	"context"

	attendanceerrors "unicube-hr/internal/attendance/errors"
	"unicube-hr/internal/leave"
	"unicube-hr/internal/shared/dateutil"
	"unicube-hr/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// SetStatus is the guarded admin path for manual day-by-day marking.
	// A date controlled by an approved leave rejects any status other
	// than on_leave.
	SetStatus(ctx context.Context, userID, date, status string) (EntryResponse, error)

	// MarkOnLeave and RevertOnLeave are reserved for the leave lifecycle
	// engine; they bypass the lock because the engine is its authority.
	MarkOnLeave(ctx context.Context, userID, date string) error
	RevertOnLeave(ctx context.Context, userID, startDate, endDate string) error

	ListForUser(ctx context.Context, userID string) ([]EntryResponse, error)
	ListAllWithContext(ctx context.Context) ([]UserContext, error)
}

type service struct {
	repo   Repository
	leaves leave.Repository
	users  user.Repository
	logger *zap.Logger
}

func NewService(repo Repository, leaves leave.Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, leaves: leaves, users: users, logger: l}
}

func (s *service) SetStatus(ctx context.Context, userID, date, status string) (EntryResponse, error) {
	s.logger.Debug("set attendance status requested",
		zap.String("user_id", userID),
		zap.String("date", date),
		zap.String("status", status),
	)

	if !ValidStatus(status) {
		return EntryResponse{}, attendanceerrors.ErrInvalidStatus
	}
	day, err := dateutil.Canonical(date)
	if err != nil {
		return EntryResponse{}, err
	}

	locked, err := s.isLocked(ctx, userID, day)
	if err != nil {
		return EntryResponse{}, err
	}

	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return EntryResponse{}, err
	}

	idx := findEntry(entries, userID, day)
	if idx >= 0 {
		if entries[idx].Status == StatusOnLeave && locked && status != StatusOnLeave {
			s.logger.Warn("set attendance blocked by approved leave",
				zap.String("user_id", userID),
				zap.String("date", day),
			)
			return EntryResponse{}, attendanceerrors.ErrLockedByApprovedLeave
		}
		entries[idx].Status = status
	} else {
		// no record yet: still guard the first write so a locked date
		// cannot be contradicted before it was ever stamped
		if locked && status != StatusOnLeave {
			s.logger.Warn("create attendance blocked by approved leave",
				zap.String("user_id", userID),
				zap.String("date", day),
			)
			return EntryResponse{}, attendanceerrors.ErrLockedByApprovedLeave
		}
		entries = append(entries, Entry{
			ID:     uuid.New().String(),
			UserID: userID,
			Date:   day,
			Status: status,
		})
		idx = len(entries) - 1
	}

	if err := s.repo.ReplaceAll(ctx, entries); err != nil {
		s.logger.Error("set attendance persist failed", zap.Error(err))
		return EntryResponse{}, err
	}

	s.logger.Info("set attendance status success",
		zap.String("user_id", userID),
		zap.String("date", day),
		zap.String("status", status),
	)
	return mapToResponse(entries[idx]), nil
}

// MarkOnLeave upserts (userID, date) to on_leave unconditionally.
func (s *service) MarkOnLeave(ctx context.Context, userID, date string) error {
	day, err := dateutil.Canonical(date)
	if err != nil {
		return err
	}

	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	if idx := findEntry(entries, userID, day); idx >= 0 {
		if entries[idx].Status == StatusOnLeave {
			return nil
		}
		entries[idx].Status = StatusOnLeave
	} else {
		entries = append(entries, Entry{
			ID:     uuid.New().String(),
			UserID: userID,
			Date:   day,
			Status: StatusOnLeave,
		})
	}

	return s.repo.ReplaceAll(ctx, entries)
}

// RevertOnLeave flips every on_leave entry of the user within the range
// back to absent. Absent is the conservative choice: a rejected leave must
// not keep looking like an approved one.
func (s *service) RevertOnLeave(ctx context.Context, userID, startDate, endDate string) error {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	changed := false
	for i := range entries {
		if entries[i].UserID != userID || entries[i].Status != StatusOnLeave {
			continue
		}
		if !dateutil.Covers(startDate, endDate, entries[i].Date) {
			continue
		}
		entries[i].Status = StatusAbsent
		changed = true
	}

	if !changed {
		return nil
	}
	return s.repo.ReplaceAll(ctx, entries)
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]EntryResponse, error) {
	entries, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) ListAllWithContext(ctx context.Context) ([]UserContext, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaves.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserContext, 0, len(users))
	for _, u := range users {
		uc := UserContext{
			User: UserSummary{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Role:      u.Role,
				AvatarURL: u.AvatarURL,
			},
			Attendance:    []EntryResponse{},
			LeaveRequests: []leave.LeaveRequest{},
		}
		for _, e := range entries {
			if e.UserID == u.ID {
				uc.Attendance = append(uc.Attendance, mapToResponse(e))
			}
		}
		for _, l := range leaves {
			if l.UserID == u.ID {
				uc.LeaveRequests = append(uc.LeaveRequests, l)
			}
		}
		out = append(out, uc)
	}
	return out, nil
}

// isLocked reports whether an approved leave of the user covers the date.
func (s *service) isLocked(ctx context.Context, userID, date string) (bool, error) {
	leaves, err := s.leaves.FindAllByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, l := range leaves {
		if l.Status != leave.StatusApproved {
			continue
		}
		if dateutil.Covers(l.StartDate, l.EndDate, date) {
			return true, nil
		}
	}
	return false, nil
}

func findEntry(entries []Entry, userID, date string) int {
	for i := range entries {
		if entries[i].UserID == userID && entries[i].Date == date {
			return i
		}
	}
	return -1
}

func mapToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:     e.ID,
		UserID: e.UserID,
		Date:   e.Date,
		Status: e.Status,
	}
}

func mapToListResponse(entries []Entry) []EntryResponse {
	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
