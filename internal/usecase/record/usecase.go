package record

import (
	"context"
	"errors"

	"ticketflow-backend/internal/domain/subject"

	"gorm.io/gorm"
)

// Usecase covers the plain CRUD side of tickets and reprint requests; the
// engine handles everything workflow-related.
type Usecase struct {
	tickets  subject.TicketRepository
	reprints subject.ReprintRequestRepository
}

func NewUsecase(tickets subject.TicketRepository, reprints subject.ReprintRequestRepository) *Usecase {
	return &Usecase{tickets: tickets, reprints: reprints}
}

type CreateTicketInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	CreatedBy   *uint64 `json:"-"`
}

type CreateReprintRequestInput struct {
	TicketID    *uint64 `json:"ticket_id"`
	Reason      string  `json:"reason" validate:"required"`
	RequestedBy *uint64 `json:"-"`
}

func (u *Usecase) CreateTicket(ctx context.Context, in CreateTicketInput) (*subject.Ticket, error) {
	t := &subject.Ticket{
		Title:       in.Title,
		Description: in.Description,
		CreatedBy:   in.CreatedBy,
		WorkflowState: subject.WorkflowState{
			ApprovalStatus: subject.StatusNotRequired,
		},
	}
	if err := u.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *Usecase) GetTicket(ctx context.Context, id uint64) (*subject.Ticket, error) {
	t, err := u.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subject.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (u *Usecase) ListTickets(ctx context.Context, limit, offset int) ([]subject.Ticket, int64, error) {
	ts, err := u.tickets.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.tickets.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return ts, total, nil
}

func (u *Usecase) CreateReprintRequest(ctx context.Context, in CreateReprintRequestInput) (*subject.ReprintRequest, error) {
	// a reprint request may reference the ticket it reprints
	if in.TicketID != nil {
		if _, err := u.tickets.GetByID(ctx, *in.TicketID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, subject.ErrNotFound
			}
			return nil, err
		}
	}
	r := &subject.ReprintRequest{
		TicketID:    in.TicketID,
		Reason:      in.Reason,
		RequestedBy: in.RequestedBy,
		WorkflowState: subject.WorkflowState{
			ApprovalStatus: subject.StatusNotRequired,
		},
	}
	if err := u.reprints.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (u *Usecase) GetReprintRequest(ctx context.Context, id uint64) (*subject.ReprintRequest, error) {
	r, err := u.reprints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subject.ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (u *Usecase) ListReprintRequests(ctx context.Context, limit, offset int) ([]subject.ReprintRequest, int64, error) {
	rs, err := u.reprints.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.reprints.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rs, total, nil
}
