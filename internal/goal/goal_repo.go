package goal

import (
	"context"

	"unicube-hr/internal/recordstore"
)

//go:generate mockgen -source=goal_repo.go -destination=mock/goal_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Goal, error)
	FindAllByUser(ctx context.Context, userID string) ([]Goal, error)
	Prepend(ctx context.Context, g Goal) error
	ReplaceAll(ctx context.Context, goals []Goal) error
}

type repository struct {
	store recordstore.Store
}

func NewRepository(store recordstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) FindAll(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	if err := r.store.ReadAll(ctx, recordstore.CollectionGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Goal, error) {
	goals, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if g.UserID == userID {
			filtered = append(filtered, g)
		}
	}
	return filtered, nil
}

func (r *repository) Prepend(ctx context.Context, g Goal) error {
	goals, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	goals = append([]Goal{g}, goals...)
	return r.ReplaceAll(ctx, goals)
}

func (r *repository) ReplaceAll(ctx context.Context, goals []Goal) error {
	return r.store.WriteAll(ctx, recordstore.CollectionGoals, goals)
}
