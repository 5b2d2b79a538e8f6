package vote

import (
	"context"
	"time"
)

type Repository interface {
	// SeedPending creates one PENDING row per user for a node visit. On a
	// re-initialized record the existing (subject, node, user) row is reset
	// to PENDING instead of violating the unique constraint.
	SeedPending(ctx context.Context, kind string, subjectID, nodeID uint64, userIDs []uint64) error

	// Decide flips the user's row for the current visit to APPROVED/REJECTED,
	// recording comment and action time. Re-voting overwrites.
	Decide(ctx context.Context, kind string, subjectID, nodeID, userID uint64, status Status, comment string, at time.Time) error

	// VotesFor returns all rows for one (record, node) visit.
	VotesFor(ctx context.Context, kind string, subjectID, nodeID uint64) ([]Vote, error)

	// SupersedePending marks the remaining PENDING rows of a completed node.
	SupersedePending(ctx context.Context, kind string, subjectID, nodeID uint64) error

	// HistoryFor is the full append-only ledger for a record, ordered by
	// action time (undecided rows last).
	HistoryFor(ctx context.Context, kind string, subjectID uint64) ([]Vote, error)

	DeleteForSubject(ctx context.Context, kind string, subjectID uint64) error
}
