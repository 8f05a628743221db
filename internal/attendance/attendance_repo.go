package attendance

import (
	"context"

	"unicube-hr/internal/recordstore"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Entry, error)
	FindAllByUser(ctx context.Context, userID string) ([]Entry, error)
	ReplaceAll(ctx context.Context, entries []Entry) error
}

type repository struct {
	store recordstore.Store
}

func NewRepository(store recordstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) FindAll(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := r.store.ReadAll(ctx, recordstore.CollectionAttendance, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Entry, error) {
	entries, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.UserID == userID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (r *repository) ReplaceAll(ctx context.Context, entries []Entry) error {
	return r.store.WriteAll(ctx, recordstore.CollectionAttendance, entries)
}
