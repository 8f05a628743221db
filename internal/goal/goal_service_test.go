package goal_test

import (
	"context"
	"testing"

	"unicube-hr/internal/goal"
	goalerrors "unicube-hr/internal/goal/errors"
	"unicube-hr/internal/recordstore"
	"unicube-hr/internal/shared/dateutil"
	"unicube-hr/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type goalDeps struct {
	userRepo user.Repository
	repo     goal.Repository
	service  goal.Service
	assignee user.User
}

func setupGoalTest(t *testing.T) *goalDeps {
	t.Helper()

	store := recordstore.NewMemoryStore()
	repo := goal.NewRepository(store)
	userRepo := user.NewRepository(store)

	assignee := user.User{
		ID:    uuid.New().String(),
		Name:  "Arjun Sharma",
		Email: "arjun@unicube.in",
		Role:  user.RoleEmployee,
	}
	err := userRepo.ReplaceAll(context.Background(), []user.User{assignee})
	assert.NoError(t, err)

	return &goalDeps{
		userRepo: userRepo,
		repo:     repo,
		service:  goal.NewService(repo, userRepo),
		assignee: assignee,
	}
}

func validCreateRequest(userID string) goal.CreateGoalRequest {
	return goal.CreateGoalRequest{
		UserID:      userID,
		Title:       "Ship Q2 onboarding flow",
		Description: "Deliver the redesigned onboarding flow end to end",
		Deadline:    "2026-06-30",
	}
}

func TestGoalService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success denormalizes assignee name", func(t *testing.T) {
		deps := setupGoalTest(t)

		resp, err := deps.service.Create(ctx, validCreateRequest(deps.assignee.ID))

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, deps.assignee.Name, resp.UserName)
		assert.Equal(t, goal.StatusInProgress, resp.Status)
		assert.Equal(t, "2026-06-30", resp.Deadline)
		assert.NotEmpty(t, resp.CreatedAt)
	})

	t.Run("success canonicalizes deadline timestamp", func(t *testing.T) {
		deps := setupGoalTest(t)

		req := validCreateRequest(deps.assignee.ID)
		req.Deadline = "2026-06-30T12:00:00Z"
		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "2026-06-30", resp.Deadline)
	})

	t.Run("negative title too short", func(t *testing.T) {
		deps := setupGoalTest(t)

		req := validCreateRequest(deps.assignee.ID)
		req.Title = "Q2"
		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, goalerrors.ErrTitleLength)
	})

	t.Run("negative description too short", func(t *testing.T) {
		deps := setupGoalTest(t)

		req := validCreateRequest(deps.assignee.ID)
		req.Description = "ship it"
		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, goalerrors.ErrDescriptionLength)
	})

	t.Run("negative unparseable deadline", func(t *testing.T) {
		deps := setupGoalTest(t)

		req := validCreateRequest(deps.assignee.ID)
		req.Deadline = "end of june"
		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, dateutil.ErrUnparseableDate)
	})

	t.Run("negative unknown assignee", func(t *testing.T) {
		deps := setupGoalTest(t)

		_, err := deps.service.Create(ctx, validCreateRequest(uuid.New().String()))

		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestGoalService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("assignee completes own goal", func(t *testing.T) {
		deps := setupGoalTest(t)
		created, err := deps.service.Create(ctx, validCreateRequest(deps.assignee.ID))
		assert.NoError(t, err)

		resp, err := deps.service.SetStatus(ctx, deps.assignee.ID, user.RoleEmployee, created.ID, goal.StatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, goal.StatusCompleted, resp.Status)
	})

	t.Run("admin updates any goal", func(t *testing.T) {
		deps := setupGoalTest(t)
		created, err := deps.service.Create(ctx, validCreateRequest(deps.assignee.ID))
		assert.NoError(t, err)

		resp, err := deps.service.SetStatus(ctx, uuid.New().String(), user.RoleAdmin, created.ID, goal.StatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, goal.StatusCompleted, resp.Status)
	})

	t.Run("negative other employee forbidden", func(t *testing.T) {
		deps := setupGoalTest(t)
		created, err := deps.service.Create(ctx, validCreateRequest(deps.assignee.ID))
		assert.NoError(t, err)

		_, err = deps.service.SetStatus(ctx, uuid.New().String(), user.RoleEmployee, created.ID, goal.StatusCompleted)

		assert.ErrorIs(t, err, goalerrors.ErrNotAssignee)
	})

	t.Run("negative invalid status", func(t *testing.T) {
		deps := setupGoalTest(t)
		created, err := deps.service.Create(ctx, validCreateRequest(deps.assignee.ID))
		assert.NoError(t, err)

		_, err = deps.service.SetStatus(ctx, deps.assignee.ID, user.RoleEmployee, created.ID, "done")

		assert.ErrorIs(t, err, goalerrors.ErrInvalidStatus)
	})

	t.Run("negative unknown goal", func(t *testing.T) {
		deps := setupGoalTest(t)

		_, err := deps.service.SetStatus(ctx, deps.assignee.ID, user.RoleAdmin, uuid.New().String(), goal.StatusCompleted)

		assert.ErrorIs(t, err, goalerrors.ErrGoalNotFound)
	})
}

func TestGoalService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success removes only the target", func(t *testing.T) {
		deps := setupGoalTest(t)
		first, err := deps.service.Create(ctx, validCreateRequest(deps.assignee.ID))
		assert.NoError(t, err)
		second, err := deps.service.Create(ctx, validCreateRequest(deps.assignee.ID))
		assert.NoError(t, err)

		err = deps.service.Delete(ctx, first.ID)
		assert.NoError(t, err)

		remaining, err := deps.service.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, remaining, 1)
		assert.Equal(t, second.ID, remaining[0].ID)
	})

	t.Run("negative unknown goal", func(t *testing.T) {
		deps := setupGoalTest(t)

		err := deps.service.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, goalerrors.ErrGoalNotFound)
	})
}
