package uow

import (
	"context"

	"ticketflow-backend/internal/domain/subject"
	"ticketflow-backend/internal/domain/vote"
	"ticketflow-backend/internal/domain/workflow"
)

type Repos struct {
	Workflows workflow.Repository
	Votes     vote.Repository
	Subjects  subject.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the subject record row first, then pass its pointer in
	WithinSubjectTx(ctx context.Context, kind subject.Kind, id uint64, fn func(r Repos, p *subject.Pointer) error) error
}
