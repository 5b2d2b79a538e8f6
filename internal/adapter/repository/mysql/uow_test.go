package mysql

import (
	"context"
	"errors"
	"testing"

	subjectDomain "ticketflow-backend/internal/domain/subject"
	"ticketflow-backend/internal/domain/uow"
	voteDomain "ticketflow-backend/internal/domain/vote"
	"ticketflow-backend/internal/usecase/engine"

	"gorm.io/gorm"
)

func TestGormUoW_WithinSubjectTx(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	tk := seedTicket(t, db, "Tx ticket")

	err := u.WithinSubjectTx(ctx, subjectDomain.KindTicket, tk.ID, func(r uow.Repos, p *subjectDomain.Pointer) error {
		if p.ApprovalStatus != subjectDomain.StatusNotRequired {
			t.Fatalf("locked pointer: %+v", p)
		}
		p.ApprovalStatus = subjectDomain.StatusPending
		return r.Subjects.SetPointer(ctx, subjectDomain.KindTicket, tk.ID, *p)
	})
	if err != nil {
		t.Fatalf("WithinSubjectTx: %v", err)
	}

	got, _ := NewSubjectRepository(db).GetPointer(ctx, subjectDomain.KindTicket, tk.ID)
	if got.ApprovalStatus != subjectDomain.StatusPending {
		t.Fatalf("commit not visible: %+v", got)
	}
}

func TestGormUoW_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	tk := seedTicket(t, db, "Rollback ticket")
	boom := errors.New("boom")

	err := u.WithinSubjectTx(ctx, subjectDomain.KindTicket, tk.ID, func(r uow.Repos, p *subjectDomain.Pointer) error {
		p.ApprovalStatus = subjectDomain.StatusPending
		if err := r.Subjects.SetPointer(ctx, subjectDomain.KindTicket, tk.ID, *p); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	got, _ := NewSubjectRepository(db).GetPointer(ctx, subjectDomain.KindTicket, tk.ID)
	if got.ApprovalStatus != subjectDomain.StatusNotRequired {
		t.Fatalf("write should have rolled back: %+v", got)
	}
}

func TestGormUoW_MissingSubject(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)

	err := u.WithinSubjectTx(context.Background(), subjectDomain.KindTicket, 999,
		func(uow.Repos, *subjectDomain.Pointer) error { return nil })
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

// Full run of a two-stage purchase flow against real repositories: ALL node
// with two managers, then ANY node with one finance reviewer.
func TestEngine_EndToEndApproval(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	w, n1, n2 := seedWorkflow(t, db)
	seedUser(t, db, 7, "alice")
	seedUser(t, db, 8, "bob")
	seedUser(t, db, 9, "carol")
	tk := seedTicket(t, db, "New laptops")

	workflows := NewWorkflowRepository(db)
	votes := NewVoteRepository(db)
	subjects := NewSubjectRepository(db)
	uc := engine.NewUsecase(workflows, votes, subjects, NewGormUoW(db))

	initRes, err := uc.Initialize(ctx, subjectDomain.KindTicket, tk.ID, w.ID)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if initRes.CurrentNode.ID != n1.ID || len(initRes.PendingApprovals) != 2 {
		t.Fatalf("initialize result: %+v", initRes)
	}

	// first manager approves; ALL node stays open
	res, err := uc.CastVote(ctx, subjectDomain.KindTicket, tk.ID, engine.CastVoteInput{UserID: 7, Action: engine.ActionApprove, Comment: "ok"})
	if err != nil {
		t.Fatalf("vote 7: %v", err)
	}
	if res.NodeStatus.IsComplete || res.MovedToNextNode {
		t.Fatalf("node 1 should still be open: %+v", res)
	}

	// outsider cannot vote
	if _, err := uc.CastVote(ctx, subjectDomain.KindTicket, tk.ID, engine.CastVoteInput{UserID: 9, Action: engine.ActionApprove}); err == nil {
		t.Fatalf("user 9 is not assigned to node 1, vote must fail")
	}

	// second manager completes the ALL node; record advances to order 5
	res, err = uc.CastVote(ctx, subjectDomain.KindTicket, tk.ID, engine.CastVoteInput{UserID: 8, Action: engine.ActionApprove})
	if err != nil {
		t.Fatalf("vote 8: %v", err)
	}
	if !res.MovedToNextNode || res.NextNode.ID != n2.ID {
		t.Fatalf("should advance to finance node: %+v", res)
	}
	p, _ := subjects.GetPointer(ctx, subjectDomain.KindTicket, tk.ID)
	if p.CurrentNodeOrder != n2.NodeOrder || p.ApprovalStatus != subjectDomain.StatusPending {
		t.Fatalf("pointer after advance: %+v", p)
	}

	// finance reviewer approves the last node; record finalizes
	res, err = uc.CastVote(ctx, subjectDomain.KindTicket, tk.ID, engine.CastVoteInput{UserID: 9, Action: engine.ActionApprove})
	if err != nil {
		t.Fatalf("vote 9: %v", err)
	}
	if res.RecordStatus != subjectDomain.StatusApproved {
		t.Fatalf("final status: %+v", res)
	}
	p, _ = subjects.GetPointer(ctx, subjectDomain.KindTicket, tk.ID)
	if p.ApprovalStatus != subjectDomain.StatusApproved {
		t.Fatalf("pointer after finalize: %+v", p)
	}

	// voting on a finished record is refused
	if _, err := uc.CastVote(ctx, subjectDomain.KindTicket, tk.ID, engine.CastVoteInput{UserID: 9, Action: engine.ActionApprove}); !errors.Is(err, subjectDomain.ErrAlreadyDecided) {
		t.Fatalf("want ErrAlreadyDecided, got %v", err)
	}

	view, err := uc.Approvals(ctx, subjectDomain.KindTicket, tk.ID)
	if err != nil {
		t.Fatalf("Approvals: %v", err)
	}
	if len(view.ApprovalHistory) != 3 {
		t.Fatalf("ledger should show three decisions: %+v", view.ApprovalHistory)
	}
}

func TestEngine_EndToEndRejection(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	w, n1, _ := seedWorkflow(t, db)
	tk := seedTicket(t, db, "Questionable spend")

	workflows := NewWorkflowRepository(db)
	votes := NewVoteRepository(db)
	subjects := NewSubjectRepository(db)
	uc := engine.NewUsecase(workflows, votes, subjects, NewGormUoW(db))

	if _, err := uc.Initialize(ctx, subjectDomain.KindTicket, tk.ID, w.ID); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	// one rejection on an ALL node kills the record immediately
	res, err := uc.CastVote(ctx, subjectDomain.KindTicket, tk.ID, engine.CastVoteInput{UserID: 7, Action: engine.ActionReject, Comment: "over budget"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if res.RecordStatus != subjectDomain.StatusRejected {
		t.Fatalf("record should be rejected: %+v", res)
	}

	// the co-approver's untouched vote is superseded, not pending
	rows, err := votes.VotesFor(ctx, kindTicket, tk.ID, n1.ID)
	if err != nil {
		t.Fatalf("VotesFor: %v", err)
	}
	var superseded int
	for _, v := range rows {
		if v.Status == voteDomain.StatusSuperseded {
			superseded++
		}
	}
	if superseded != 1 {
		t.Fatalf("want 1 superseded vote, got %+v", rows)
	}

	// nobody's queue should still show this record
	items, total, err := subjects.PendingForUser(ctx, subjectDomain.KindTicket, 8, 20, 0)
	if err != nil || total != 0 || len(items) != 0 {
		t.Fatalf("rejected record still queued: total=%d items=%+v (%v)", total, items, err)
	}
}
