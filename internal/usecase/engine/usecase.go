package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketflow-backend/internal/domain/subject"
	"ticketflow-backend/internal/domain/uow"
	"ticketflow-backend/internal/domain/vote"
	"ticketflow-backend/internal/domain/workflow"

	"gorm.io/gorm"
)

var ErrInvalidAction = errors.New("action must be APPROVE or REJECT")

// Usecase routes subject records through their workflow: initialize onto the
// first node, collect votes, evaluate, advance or finalize. All mutation runs
// inside one transaction with the subject row locked.
type Usecase struct {
	workflows workflow.Repository
	votes     vote.Repository
	subjects  subject.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(workflows workflow.Repository, votes vote.Repository, subjects subject.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{workflows: workflows, votes: votes, subjects: subjects, uow: tx}
}

func (u *Usecase) Initialize(ctx context.Context, kind subject.Kind, subjectID, workflowID uint64) (*InitializeResult, error) {
	var out *InitializeResult

	err := u.uow.WithinSubjectTx(ctx, kind, subjectID, func(r uow.Repos, p *subject.Pointer) error {
		if p.ApprovalStatus == subject.StatusPending && p.WorkflowID != nil {
			return subject.ErrWorkflowInProgress
		}

		wf, err := r.Workflows.GetByID(ctx, workflowID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return workflow.ErrNotFound
			}
			return err
		}
		if !wf.IsActive {
			return workflow.ErrInactive
		}

		first, err := r.Workflows.FirstNode(ctx, wf.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return workflow.ErrNoNodes
			}
			return err
		}

		approverIDs, err := r.Workflows.NodeUserIDs(ctx, first.ID)
		if err != nil {
			return err
		}
		// all preconditions checked before the first write
		if len(approverIDs) == 0 {
			return fmt.Errorf("%w: first node %q", workflow.ErrNoApprovers, first.Name)
		}

		p.WorkflowID = &wf.ID
		p.CurrentNodeOrder = first.NodeOrder
		p.ApprovalStatus = subject.StatusPending
		if err := r.Subjects.SetPointer(ctx, kind, subjectID, *p); err != nil {
			return err
		}

		if err := r.Votes.SeedPending(ctx, string(kind), subjectID, first.ID, approverIDs); err != nil {
			return err
		}

		pendingVotes, err := r.Votes.VotesFor(ctx, string(kind), subjectID, first.ID)
		if err != nil {
			return err
		}
		out = &InitializeResult{
			Record:          p,
			CurrentNode:     first,
			PendingApprovals: pendingVotes,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subject.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (u *Usecase) CastVote(ctx context.Context, kind subject.Kind, subjectID uint64, in CastVoteInput) (*CastVoteResult, error) {
	status, err := decisionStatus(in.Action)
	if err != nil {
		return nil, err
	}

	var out *CastVoteResult

	err = u.uow.WithinSubjectTx(ctx, kind, subjectID, func(r uow.Repos, p *subject.Pointer) error {
		if p.WorkflowID == nil {
			return subject.ErrNoWorkflow
		}
		if p.ApprovalStatus != subject.StatusPending {
			return fmt.Errorf("%w: record is already %s", subject.ErrAlreadyDecided, p.ApprovalStatus)
		}

		node, err := r.Workflows.NodeByOrder(ctx, *p.WorkflowID, p.CurrentNodeOrder)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", workflow.ErrDanglingNode, p.CurrentNodeOrder)
			}
			return err
		}
		if in.NodeID != 0 && in.NodeID != node.ID {
			return workflow.ErrStaleNode
		}

		assigned, err := r.Workflows.IsUserAssigned(ctx, node.ID, in.UserID)
		if err != nil {
			return err
		}
		if !assigned {
			return workflow.ErrNotAssigned
		}

		now := time.Now().UTC()
		if err := r.Votes.Decide(ctx, string(kind), subjectID, node.ID, in.UserID, status, in.Comment, now); err != nil {
			return err
		}

		votes, err := r.Votes.VotesFor(ctx, string(kind), subjectID, node.ID)
		if err != nil {
			return err
		}
		ns := Evaluate(votes, node.ApprovalType)

		out = &CastVoteResult{ApprovalRecorded: true, NodeStatus: ns}

		if !ns.IsComplete {
			out.Message = fmt.Sprintf("Approval recorded. Waiting for %d more approval(s)", ns.Pending)
			out.Record = p
			return nil
		}

		if err := r.Votes.SupersedePending(ctx, string(kind), subjectID, node.ID); err != nil {
			return err
		}

		if *ns.NodeStatus == vote.StatusRejected {
			p.ApprovalStatus = subject.StatusRejected
			if err := r.Subjects.SetPointer(ctx, kind, subjectID, *p); err != nil {
				return err
			}
			out.RecordStatus = subject.StatusRejected
			out.Message = "Record has been rejected"
			out.Record = p
			return nil
		}

		next, err := r.Workflows.NextNode(ctx, *p.WorkflowID, node.NodeOrder)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// last node: final approval
				p.ApprovalStatus = subject.StatusApproved
				if err := r.Subjects.SetPointer(ctx, kind, subjectID, *p); err != nil {
					return err
				}
				out.RecordStatus = subject.StatusApproved
				out.Message = "Record has been fully approved"
				out.Record = p
				return nil
			}
			return err
		}

		nextApprovers, err := r.Workflows.NodeUserIDs(ctx, next.ID)
		if err != nil {
			return err
		}
		if len(nextApprovers) == 0 {
			// advancing into a dead end would stall the record forever;
			// fail the whole vote instead
			return fmt.Errorf("%w: next node %q", workflow.ErrNoApprovers, next.Name)
		}

		p.CurrentNodeOrder = next.NodeOrder
		if err := r.Subjects.SetPointer(ctx, kind, subjectID, *p); err != nil {
			return err
		}
		if err := r.Votes.SeedPending(ctx, string(kind), subjectID, next.ID, nextApprovers); err != nil {
			return err
		}

		out.MovedToNextNode = true
		out.NextNode = next
		out.Message = fmt.Sprintf("Moved to next approval stage: %s", next.Name)
		out.Record = p
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subject.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// Approvals assembles the inspection view: pointer, current node with live
// evaluation, and the full ledger.
func (u *Usecase) Approvals(ctx context.Context, kind subject.Kind, subjectID uint64) (*ApprovalsView, error) {
	p, err := u.subjects.GetPointer(ctx, kind, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subject.ErrNotFound
		}
		return nil, err
	}

	view := &ApprovalsView{Record: p}

	history, err := u.votes.HistoryFor(ctx, string(kind), subjectID)
	if err != nil {
		return nil, err
	}
	view.AllApprovals = history
	view.ApprovalHistory = decidedOnly(history)

	if p.WorkflowID != nil && p.ApprovalStatus == subject.StatusPending {
		node, err := u.workflows.NodeByOrder(ctx, *p.WorkflowID, p.CurrentNodeOrder)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		} else {
			votes, err := u.votes.VotesFor(ctx, string(kind), subjectID, node.ID)
			if err != nil {
				return nil, err
			}
			view.CurrentNode = &NodeWithStatus{
				Node:   *node,
				Status: Evaluate(votes, node.ApprovalType),
			}
		}
	}
	return view, nil
}

// PendingForUser is the user's vote queue across both record types.
func (u *Usecase) PendingForUser(ctx context.Context, userID uint64, limit, offset int) ([]subject.PendingItem, int64, error) {
	tickets, ticketTotal, err := u.subjects.PendingForUser(ctx, subject.KindTicket, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	reprints, reprintTotal, err := u.subjects.PendingForUser(ctx, subject.KindReprintRequest, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return append(tickets, reprints...), ticketTotal + reprintTotal, nil
}

// PendingForUserByKind backs the per-record-type dashboard listings.
func (u *Usecase) PendingForUserByKind(ctx context.Context, kind subject.Kind, userID uint64, limit, offset int) ([]subject.PendingItem, int64, error) {
	return u.subjects.PendingForUser(ctx, kind, userID, limit, offset)
}

func decisionStatus(a Action) (vote.Status, error) {
	switch a {
	case ActionApprove:
		return vote.StatusApproved, nil
	case ActionReject:
		return vote.StatusRejected, nil
	}
	return "", ErrInvalidAction
}

func decidedOnly(votes []vote.Vote) []vote.Vote {
	out := make([]vote.Vote, 0, len(votes))
	for _, v := range votes {
		if v.Status == vote.StatusApproved || v.Status == vote.StatusRejected {
			out = append(out, v)
		}
	}
	return out
}
