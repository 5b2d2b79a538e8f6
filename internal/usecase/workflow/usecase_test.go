package workflow

import (
	"context"
	"errors"
	"testing"

	domain "ticketflow-backend/internal/domain/workflow"
	"ticketflow-backend/internal/testutil/subjectmock"
	"ticketflow-backend/internal/testutil/workflowmock"

	"gorm.io/gorm"
)

func quietSubjects() *subjectmock.Repo {
	return &subjectmock.Repo{
		CountInFlightFn: func(context.Context, uint64) (int64, error) { return 0, nil },
	}
}

func TestUsecase_Create(t *testing.T) {
	ctx := context.Background()

	repo := &workflowmock.Repo{
		CreateFn: func(ctx context.Context, w *domain.Workflow) error {
			w.ID = 10
			return nil
		},
	}
	uc := NewUsecase(repo, quietSubjects())

	w, err := uc.Create(ctx, CreateWorkflowInput{Name: "Purchase Approval"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w.ID != 10 || !w.IsActive {
		t.Fatalf("workflows default to active: %+v", w)
	}

	inactive := false
	w, err = uc.Create(ctx, CreateWorkflowInput{Name: "Draft", IsActive: &inactive})
	if err != nil || w.IsActive {
		t.Fatalf("explicit is_active not honored: %+v (%v)", w, err)
	}
}

func TestUsecase_AddNode(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults order and type", func(t *testing.T) {
		var created *domain.Node
		repo := &workflowmock.Repo{
			GetByIDFn: func(context.Context, uint64) (*domain.Workflow, error) {
				return &domain.Workflow{ID: 10}, nil
			},
			MaxNodeOrderFn: func(context.Context, uint64) (int, error) { return 5, nil },
			CreateNodeFn: func(ctx context.Context, n *domain.Node) error {
				n.ID = 100
				created = n
				return nil
			},
			NodeApproversFn: func(context.Context, uint64) ([]domain.Approver, error) { return nil, nil },
		}
		uc := NewUsecase(repo, quietSubjects())

		n, err := uc.AddNode(ctx, 10, AddNodeInput{Name: "Final Sign-off"})
		if err != nil {
			t.Fatalf("AddNode: %v", err)
		}
		if created.NodeOrder != 6 {
			t.Fatalf("order should default to max+1, got %d", created.NodeOrder)
		}
		if n.ApprovalType != domain.ApprovalAll {
			t.Fatalf("type should default to ALL, got %s", n.ApprovalType)
		}
	})

	t.Run("attaches initial users", func(t *testing.T) {
		var assigned []uint64
		repo := &workflowmock.Repo{
			GetByIDFn: func(context.Context, uint64) (*domain.Workflow, error) {
				return &domain.Workflow{ID: 10}, nil
			},
			CreateNodeFn: func(ctx context.Context, n *domain.Node) error { n.ID = 100; return nil },
			AddNodeUsersFn: func(ctx context.Context, nodeID uint64, userIDs []uint64) error {
				assigned = userIDs
				return nil
			},
			NodeApproversFn: func(context.Context, uint64) ([]domain.Approver, error) {
				return []domain.Approver{{UserID: 7, Username: "alice"}}, nil
			},
		}
		uc := NewUsecase(repo, quietSubjects())

		n, err := uc.AddNode(ctx, 10, AddNodeInput{Name: "Manager Review", NodeOrder: 1, UserIDs: []uint64{7}})
		if err != nil {
			t.Fatalf("AddNode: %v", err)
		}
		if len(assigned) != 1 || assigned[0] != 7 {
			t.Fatalf("users not attached: %v", assigned)
		}
		if len(n.Approvers) != 1 || n.Approvers[0].Username != "alice" {
			t.Fatalf("approvers not loaded: %+v", n.Approvers)
		}
	})

	t.Run("workflow missing", func(t *testing.T) {
		repo := &workflowmock.Repo{
			GetByIDFn: func(context.Context, uint64) (*domain.Workflow, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		uc := NewUsecase(repo, quietSubjects())
		if _, err := uc.AddNode(ctx, 99, AddNodeInput{Name: "X"}); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestUsecase_StructuralEditsBlockedInFlight(t *testing.T) {
	ctx := context.Background()

	busySubjects := &subjectmock.Repo{
		CountInFlightFn: func(context.Context, uint64) (int64, error) { return 3, nil },
	}
	repo := &workflowmock.Repo{
		GetByIDFn: func(context.Context, uint64) (*domain.Workflow, error) {
			return &domain.Workflow{ID: 10}, nil
		},
		GetNodeFn: func(context.Context, uint64) (*domain.Node, error) {
			return &domain.Node{ID: 100, WorkflowID: 10}, nil
		},
	}
	uc := NewUsecase(repo, busySubjects)

	if _, err := uc.AddNode(ctx, 10, AddNodeInput{Name: "X"}); !errors.Is(err, domain.ErrInFlight) {
		t.Fatalf("AddNode: want ErrInFlight, got %v", err)
	}
	name := "Renamed"
	if _, err := uc.UpdateNode(ctx, 100, UpdateNodeInput{Name: &name}); !errors.Is(err, domain.ErrInFlight) {
		t.Fatalf("UpdateNode: want ErrInFlight, got %v", err)
	}
	if err := uc.DeleteNode(ctx, 100); !errors.Is(err, domain.ErrInFlight) {
		t.Fatalf("DeleteNode: want ErrInFlight, got %v", err)
	}
	if _, err := uc.ReorderNodes(ctx, 10, []domain.NodeOrder{{ID: 100, NodeOrder: 2}}); !errors.Is(err, domain.ErrInFlight) {
		t.Fatalf("ReorderNodes: want ErrInFlight, got %v", err)
	}
	if err := uc.Delete(ctx, 10); !errors.Is(err, domain.ErrInFlight) {
		t.Fatalf("Delete: want ErrInFlight, got %v", err)
	}
	// assignment changes count as structural edits: shrinking an ALL
	// node's roster mid-flight would strand its seeded pending votes
	if _, err := uc.SetNodeUsers(ctx, 100, []uint64{7}); !errors.Is(err, domain.ErrInFlight) {
		t.Fatalf("SetNodeUsers: want ErrInFlight, got %v", err)
	}
	if _, err := uc.AddNodeUsers(ctx, 100, []uint64{9}); !errors.Is(err, domain.ErrInFlight) {
		t.Fatalf("AddNodeUsers: want ErrInFlight, got %v", err)
	}
	if err := uc.RemoveNodeUser(ctx, 100, 8); !errors.Is(err, domain.ErrInFlight) {
		t.Fatalf("RemoveNodeUser: want ErrInFlight, got %v", err)
	}
}

func TestUsecase_UpdateAppliesPartialFields(t *testing.T) {
	ctx := context.Background()

	stored := &domain.Workflow{ID: 10, Name: "Old", Description: "old desc", IsActive: true}
	repo := &workflowmock.Repo{
		GetByIDFn: func(context.Context, uint64) (*domain.Workflow, error) { return stored, nil },
		UpdateFn:  func(context.Context, *domain.Workflow) error { return nil },
	}
	uc := NewUsecase(repo, quietSubjects())

	name := "New"
	inactive := false
	w, err := uc.Update(ctx, 10, UpdateWorkflowInput{Name: &name, IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if w.Name != "New" || w.IsActive || w.Description != "old desc" {
		t.Fatalf("partial update: %+v", w)
	}
}

func TestUsecase_NodeUsers(t *testing.T) {
	ctx := context.Background()

	repo := &workflowmock.Repo{
		GetNodeFn: func(context.Context, uint64) (*domain.Node, error) {
			return &domain.Node{ID: 100}, nil
		},
		SetNodeUsersFn: func(ctx context.Context, nodeID uint64, userIDs []uint64) error { return nil },
		NodeApproversFn: func(context.Context, uint64) ([]domain.Approver, error) {
			return []domain.Approver{{UserID: 7}}, nil
		},
	}
	uc := NewUsecase(repo, quietSubjects())

	users, err := uc.SetNodeUsers(ctx, 100, []uint64{7})
	if err != nil || len(users) != 1 {
		t.Fatalf("SetNodeUsers: %+v (%v)", users, err)
	}

	repo.GetNodeFn = func(context.Context, uint64) (*domain.Node, error) {
		return nil, gorm.ErrRecordNotFound
	}
	if _, err := uc.NodeUsers(ctx, 999); !errors.Is(err, domain.ErrNodeNotFound) {
		t.Fatalf("NodeUsers missing node: want ErrNodeNotFound, got %v", err)
	}
}
