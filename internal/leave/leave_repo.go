package leave

import (
	"context"

	leaveerrors "unicube-hr/internal/leave/errors"
	"unicube-hr/internal/recordstore"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindAllByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Prepend(ctx context.Context, req LeaveRequest) error
	ReplaceAll(ctx context.Context, reqs []LeaveRequest) error
}

type repository struct {
	store recordstore.Store
}

func NewRepository(store recordstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	if err := r.store.ReadAll(ctx, recordstore.CollectionLeaveRequests, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]LeaveRequest, error) {
	reqs, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]LeaveRequest, 0, len(reqs))
	for _, req := range reqs {
		if req.UserID == userID {
			filtered = append(filtered, req)
		}
	}
	return filtered, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	reqs, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		if reqs[i].ID == id {
			return &reqs[i], nil
		}
	}
	return nil, leaveerrors.ErrLeaveNotFound
}

// Prepend persists the new request at the head of the collection, keeping
// it most-recent-first.
func (r *repository) Prepend(ctx context.Context, req LeaveRequest) error {
	reqs, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	reqs = append([]LeaveRequest{req}, reqs...)
	return r.ReplaceAll(ctx, reqs)
}

func (r *repository) ReplaceAll(ctx context.Context, reqs []LeaveRequest) error {
	return r.store.WriteAll(ctx, recordstore.CollectionLeaveRequests, reqs)
}
