package subject

import "context"

// Repository is the record-adapter capability the engine runs against. Both
// subject tables are served by one implementation keyed on Kind.
type Repository interface {
	GetPointer(ctx context.Context, kind Kind, id uint64) (*Pointer, error)
	// GetPointerForUpdate takes a row lock so a CastVote transaction cannot
	// race another vote on the same record.
	GetPointerForUpdate(ctx context.Context, kind Kind, id uint64) (*Pointer, error)
	SetPointer(ctx context.Context, kind Kind, id uint64, p Pointer) error

	// CountInFlight counts records of either kind paused on the workflow,
	// used to block structural edits.
	CountInFlight(ctx context.Context, workflowID uint64) (int64, error)

	// PendingForUser lists records awaiting the user's vote at their current
	// node. Votes superseded or left at departed nodes never surface here.
	PendingForUser(ctx context.Context, kind Kind, userID uint64, limit, offset int) ([]PendingItem, int64, error)
}

type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint64) (*Ticket, error)
	List(ctx context.Context, limit, offset int) ([]Ticket, error)
	Count(ctx context.Context) (int64, error)
}

type ReprintRequestRepository interface {
	Create(ctx context.Context, r *ReprintRequest) error
	GetByID(ctx context.Context, id uint64) (*ReprintRequest, error)
	List(ctx context.Context, limit, offset int) ([]ReprintRequest, error)
	Count(ctx context.Context) (int64, error)
}
