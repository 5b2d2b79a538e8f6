package uowmock

import (
	"context"
	"errors"

	"ticketflow-backend/internal/domain/subject"
	"ticketflow-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinSubjectTxFn func(ctx context.Context, kind subject.Kind, id uint64, fn func(r uow.Repos, p *subject.Pointer) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs transaction bodies immediately against the given repos,
// handing WithinSubjectTx callbacks the supplied pointer. Pointer mutations
// made by the body are visible to the test afterwards.
func Passthrough(repos uow.Repos, p *subject.Pointer) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
		WithinSubjectTxFn: func(ctx context.Context, kind subject.Kind, id uint64, fn func(r uow.Repos, p *subject.Pointer) error) error {
			return fn(repos, p)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinSubjectTx(ctx context.Context, kind subject.Kind, id uint64, fn func(r uow.Repos, p *subject.Pointer) error) error {
	if m.WithinSubjectTxFn != nil {
		return m.WithinSubjectTxFn(ctx, kind, id, fn)
	}
	return errUnimplemented
}
