package votemock

import (
	"context"
	"time"

	domain "ticketflow-backend/internal/domain/vote"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	SeedPendingFn      func(ctx context.Context, kind string, subjectID, nodeID uint64, userIDs []uint64) error
	DecideFn           func(ctx context.Context, kind string, subjectID, nodeID, userID uint64, status domain.Status, comment string, at time.Time) error
	VotesForFn         func(ctx context.Context, kind string, subjectID, nodeID uint64) ([]domain.Vote, error)
	SupersedePendingFn func(ctx context.Context, kind string, subjectID, nodeID uint64) error
	HistoryForFn       func(ctx context.Context, kind string, subjectID uint64) ([]domain.Vote, error)
	DeleteForSubjectFn func(ctx context.Context, kind string, subjectID uint64) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) SeedPending(ctx context.Context, kind string, subjectID, nodeID uint64, userIDs []uint64) error {
	if m.SeedPendingFn != nil {
		return m.SeedPendingFn(ctx, kind, subjectID, nodeID, userIDs)
	}
	return nil
}
func (m *Repo) Decide(ctx context.Context, kind string, subjectID, nodeID, userID uint64, status domain.Status, comment string, at time.Time) error {
	if m.DecideFn != nil {
		return m.DecideFn(ctx, kind, subjectID, nodeID, userID, status, comment, at)
	}
	return nil
}
func (m *Repo) VotesFor(ctx context.Context, kind string, subjectID, nodeID uint64) ([]domain.Vote, error) {
	if m.VotesForFn != nil {
		return m.VotesForFn(ctx, kind, subjectID, nodeID)
	}
	return nil, context.Canceled
}
func (m *Repo) SupersedePending(ctx context.Context, kind string, subjectID, nodeID uint64) error {
	if m.SupersedePendingFn != nil {
		return m.SupersedePendingFn(ctx, kind, subjectID, nodeID)
	}
	return nil
}
func (m *Repo) HistoryFor(ctx context.Context, kind string, subjectID uint64) ([]domain.Vote, error) {
	if m.HistoryForFn != nil {
		return m.HistoryForFn(ctx, kind, subjectID)
	}
	return nil, context.Canceled
}
func (m *Repo) DeleteForSubject(ctx context.Context, kind string, subjectID uint64) error {
	if m.DeleteForSubjectFn != nil {
		return m.DeleteForSubjectFn(ctx, kind, subjectID)
	}
	return nil
}
