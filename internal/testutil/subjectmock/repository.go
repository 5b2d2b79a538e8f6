package subjectmock

import (
	"context"

	domain "ticketflow-backend/internal/domain/subject"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetPointerFn          func(ctx context.Context, kind domain.Kind, id uint64) (*domain.Pointer, error)
	GetPointerForUpdateFn func(ctx context.Context, kind domain.Kind, id uint64) (*domain.Pointer, error)
	SetPointerFn          func(ctx context.Context, kind domain.Kind, id uint64, p domain.Pointer) error
	CountInFlightFn       func(ctx context.Context, workflowID uint64) (int64, error)
	PendingForUserFn      func(ctx context.Context, kind domain.Kind, userID uint64, limit, offset int) ([]domain.PendingItem, int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) GetPointer(ctx context.Context, kind domain.Kind, id uint64) (*domain.Pointer, error) {
	if m.GetPointerFn != nil {
		return m.GetPointerFn(ctx, kind, id)
	}
	return nil, context.Canceled
}
func (m *Repo) GetPointerForUpdate(ctx context.Context, kind domain.Kind, id uint64) (*domain.Pointer, error) {
	if m.GetPointerForUpdateFn != nil {
		return m.GetPointerForUpdateFn(ctx, kind, id)
	}
	return nil, context.Canceled
}
func (m *Repo) SetPointer(ctx context.Context, kind domain.Kind, id uint64, p domain.Pointer) error {
	if m.SetPointerFn != nil {
		return m.SetPointerFn(ctx, kind, id, p)
	}
	return nil
}
func (m *Repo) CountInFlight(ctx context.Context, workflowID uint64) (int64, error) {
	if m.CountInFlightFn != nil {
		return m.CountInFlightFn(ctx, workflowID)
	}
	return 0, nil
}
func (m *Repo) PendingForUser(ctx context.Context, kind domain.Kind, userID uint64, limit, offset int) ([]domain.PendingItem, int64, error) {
	if m.PendingForUserFn != nil {
		return m.PendingForUserFn(ctx, kind, userID, limit, offset)
	}
	return nil, 0, context.Canceled
}
