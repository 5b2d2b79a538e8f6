package mysql

import (
	"context"
	"testing"

	"ticketflow-backend/internal/domain/subject"
	"ticketflow-backend/internal/domain/user"
	"ticketflow-backend/internal/domain/vote"
	"ticketflow-backend/internal/domain/workflow"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema. The domain
// models carry no MySQL-only column types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&user.User{},
		&workflow.Workflow{},
		&workflow.Node{},
		&workflow.NodeUser{},
		&subject.Ticket{},
		&subject.ReprintRequest{},
		&vote.Vote{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// seedWorkflow creates a two-node workflow: node 1 "Manager Review" (ALL,
// users 7+8) and node 5 "Finance Review" (ANY, user 9). Sparse orders on
// purpose.
func seedWorkflow(t *testing.T, db *gorm.DB) (*workflow.Workflow, *workflow.Node, *workflow.Node) {
	t.Helper()
	ctx := context.Background()
	repo := NewWorkflowRepository(db)

	w := &workflow.Workflow{Name: "Purchase Approval", IsActive: true}
	if err := repo.Create(ctx, w); err != nil {
		t.Fatalf("create workflow: %v", err)
	}
	n1 := &workflow.Node{WorkflowID: w.ID, Name: "Manager Review", NodeOrder: 1, ApprovalType: workflow.ApprovalAll}
	n2 := &workflow.Node{WorkflowID: w.ID, Name: "Finance Review", NodeOrder: 5, ApprovalType: workflow.ApprovalAny}
	for _, n := range []*workflow.Node{n1, n2} {
		if err := repo.CreateNode(ctx, n); err != nil {
			t.Fatalf("create node %s: %v", n.Name, err)
		}
	}
	if err := repo.SetNodeUsers(ctx, n1.ID, []uint64{7, 8}); err != nil {
		t.Fatalf("assign node 1: %v", err)
	}
	if err := repo.SetNodeUsers(ctx, n2.ID, []uint64{9}); err != nil {
		t.Fatalf("assign node 2: %v", err)
	}
	return w, n1, n2
}

func seedTicket(t *testing.T, db *gorm.DB, title string) *subject.Ticket {
	t.Helper()
	tk := &subject.Ticket{
		Title:         title,
		WorkflowState: subject.WorkflowState{ApprovalStatus: subject.StatusNotRequired},
	}
	if err := NewTicketRepository(db).Create(context.Background(), tk); err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return tk
}

func seedUser(t *testing.T, db *gorm.DB, id uint64, username string) *user.User {
	t.Helper()
	u := &user.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		Role:         user.RoleOperator,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}
