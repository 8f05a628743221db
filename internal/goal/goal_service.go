package goal

import (
	"context"
	"time"

	goalerrors "unicube-hr/internal/goal/errors"
	"unicube-hr/internal/shared/dateutil"
	"unicube-hr/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=goal_service.go -destination=mock/goal_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateGoalRequest) (GoalResponse, error)
	GetAll(ctx context.Context) ([]GoalResponse, error)
	GetAllForUser(ctx context.Context, userID string) ([]GoalResponse, error)
	SetStatus(ctx context.Context, actorID, actorRole, id, status string) (GoalResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	users  user.Repository
	logger *zap.Logger
}

func NewService(repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("goal.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("goal.service")
	}
	return &service{repo: repo, users: users, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateGoalRequest) (GoalResponse, error) {
	if len(req.Title) < 5 || len(req.Title) > 100 {
		return GoalResponse{}, goalerrors.ErrTitleLength
	}
	if len(req.Description) < 10 || len(req.Description) > 500 {
		return GoalResponse{}, goalerrors.ErrDescriptionLength
	}
	deadline, err := dateutil.Canonical(req.Deadline)
	if err != nil {
		return GoalResponse{}, err
	}

	assignee, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return GoalResponse{}, err
	}

	g := Goal{
		ID:          uuid.New().String(),
		UserID:      assignee.ID,
		UserName:    assignee.Name,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Status:      StatusInProgress,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.Prepend(ctx, g); err != nil {
		s.logger.Error("create goal persist failed", zap.Error(err))
		return GoalResponse{}, err
	}

	s.logger.Info("create goal success",
		zap.String("goal_id", g.ID),
		zap.String("user_id", g.UserID),
	)
	return mapToResponse(g), nil
}

func (s *service) GetAll(ctx context.Context) ([]GoalResponse, error) {
	goals, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(goals), nil
}

func (s *service) GetAllForUser(ctx context.Context, userID string) ([]GoalResponse, error) {
	goals, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(goals), nil
}

// SetStatus toggles a goal between in_progress and completed. Employees
// may only update their own goals; admins may update any.
func (s *service) SetStatus(ctx context.Context, actorID, actorRole, id, status string) (GoalResponse, error) {
	if status != StatusInProgress && status != StatusCompleted {
		return GoalResponse{}, goalerrors.ErrInvalidStatus
	}

	goals, err := s.repo.FindAll(ctx)
	if err != nil {
		return GoalResponse{}, err
	}
	idx := -1
	for i := range goals {
		if goals[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return GoalResponse{}, goalerrors.ErrGoalNotFound
	}
	if actorRole != user.RoleAdmin && goals[idx].UserID != actorID {
		return GoalResponse{}, goalerrors.ErrNotAssignee
	}

	goals[idx].Status = status
	if err := s.repo.ReplaceAll(ctx, goals); err != nil {
		s.logger.Error("set goal status persist failed", zap.String("goal_id", id), zap.Error(err))
		return GoalResponse{}, err
	}

	s.logger.Info("set goal status success",
		zap.String("goal_id", id),
		zap.String("status", status),
	)
	return mapToResponse(goals[idx]), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	goals, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	kept := make([]Goal, 0, len(goals))
	found := false
	for _, g := range goals {
		if g.ID == id {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return goalerrors.ErrGoalNotFound
	}

	if err := s.repo.ReplaceAll(ctx, kept); err != nil {
		s.logger.Error("delete goal persist failed", zap.String("goal_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete goal success", zap.String("goal_id", id))
	return nil
}

func mapToResponse(g Goal) GoalResponse {
	return GoalResponse{
		ID:          g.ID,
		UserID:      g.UserID,
		UserName:    g.UserName,
		Title:       g.Title,
		Description: g.Description,
		Deadline:    g.Deadline,
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
	}
}

func mapToListResponse(goals []Goal) []GoalResponse {
	resp := make([]GoalResponse, len(goals))
	for i, g := range goals {
		resp[i] = mapToResponse(g)
	}
	return resp
}
