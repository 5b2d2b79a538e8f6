package workflowmock

import (
	"context"

	domain "ticketflow-backend/internal/domain/workflow"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled getters return
// context.Canceled so an unexpected call fails loudly.
type Repo struct {
	CreateFn       func(ctx context.Context, w *domain.Workflow) error
	GetByIDFn      func(ctx context.Context, id uint64) (*domain.Workflow, error)
	GetWithNodesFn func(ctx context.Context, id uint64) (*domain.Workflow, error)
	ListFn         func(ctx context.Context, limit, offset int, activeOnly bool) ([]domain.Workflow, error)
	CountFn        func(ctx context.Context) (int64, error)
	UpdateFn       func(ctx context.Context, w *domain.Workflow) error
	DeleteFn       func(ctx context.Context, id uint64) error

	CreateNodeFn      func(ctx context.Context, n *domain.Node) error
	GetNodeFn         func(ctx context.Context, nodeID uint64) (*domain.Node, error)
	NodesByWorkflowFn func(ctx context.Context, workflowID uint64) ([]domain.Node, error)
	NodeByOrderFn     func(ctx context.Context, workflowID uint64, order int) (*domain.Node, error)
	FirstNodeFn       func(ctx context.Context, workflowID uint64) (*domain.Node, error)
	NextNodeFn        func(ctx context.Context, workflowID uint64, after int) (*domain.Node, error)
	MaxNodeOrderFn    func(ctx context.Context, workflowID uint64) (int, error)
	UpdateNodeFn      func(ctx context.Context, n *domain.Node) error
	DeleteNodeFn      func(ctx context.Context, nodeID uint64) error
	ReorderNodesFn    func(ctx context.Context, workflowID uint64, orders []domain.NodeOrder) error

	SetNodeUsersFn   func(ctx context.Context, nodeID uint64, userIDs []uint64) error
	AddNodeUsersFn   func(ctx context.Context, nodeID uint64, userIDs []uint64) error
	RemoveNodeUserFn func(ctx context.Context, nodeID, userID uint64) error
	NodeUserIDsFn    func(ctx context.Context, nodeID uint64) ([]uint64, error)
	IsUserAssignedFn func(ctx context.Context, nodeID, userID uint64) (bool, error)
	NodeApproversFn  func(ctx context.Context, nodeID uint64) ([]domain.Approver, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, w *domain.Workflow) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, w)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Workflow, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) GetWithNodes(ctx context.Context, id uint64) (*domain.Workflow, error) {
	if m.GetWithNodesFn != nil {
		return m.GetWithNodesFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, limit, offset int, activeOnly bool) ([]domain.Workflow, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset, activeOnly)
	}
	return nil, context.Canceled
}
func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}
func (m *Repo) Update(ctx context.Context, w *domain.Workflow) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, w)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) CreateNode(ctx context.Context, n *domain.Node) error {
	if m.CreateNodeFn != nil {
		return m.CreateNodeFn(ctx, n)
	}
	return nil
}
func (m *Repo) GetNode(ctx context.Context, nodeID uint64) (*domain.Node, error) {
	if m.GetNodeFn != nil {
		return m.GetNodeFn(ctx, nodeID)
	}
	return nil, context.Canceled
}
func (m *Repo) NodesByWorkflow(ctx context.Context, workflowID uint64) ([]domain.Node, error) {
	if m.NodesByWorkflowFn != nil {
		return m.NodesByWorkflowFn(ctx, workflowID)
	}
	return nil, context.Canceled
}
func (m *Repo) NodeByOrder(ctx context.Context, workflowID uint64, order int) (*domain.Node, error) {
	if m.NodeByOrderFn != nil {
		return m.NodeByOrderFn(ctx, workflowID, order)
	}
	return nil, context.Canceled
}
func (m *Repo) FirstNode(ctx context.Context, workflowID uint64) (*domain.Node, error) {
	if m.FirstNodeFn != nil {
		return m.FirstNodeFn(ctx, workflowID)
	}
	return nil, context.Canceled
}
func (m *Repo) NextNode(ctx context.Context, workflowID uint64, after int) (*domain.Node, error) {
	if m.NextNodeFn != nil {
		return m.NextNodeFn(ctx, workflowID, after)
	}
	return nil, context.Canceled
}
func (m *Repo) MaxNodeOrder(ctx context.Context, workflowID uint64) (int, error) {
	if m.MaxNodeOrderFn != nil {
		return m.MaxNodeOrderFn(ctx, workflowID)
	}
	return 0, nil
}
func (m *Repo) UpdateNode(ctx context.Context, n *domain.Node) error {
	if m.UpdateNodeFn != nil {
		return m.UpdateNodeFn(ctx, n)
	}
	return nil
}
func (m *Repo) DeleteNode(ctx context.Context, nodeID uint64) error {
	if m.DeleteNodeFn != nil {
		return m.DeleteNodeFn(ctx, nodeID)
	}
	return nil
}
func (m *Repo) ReorderNodes(ctx context.Context, workflowID uint64, orders []domain.NodeOrder) error {
	if m.ReorderNodesFn != nil {
		return m.ReorderNodesFn(ctx, workflowID, orders)
	}
	return nil
}

func (m *Repo) SetNodeUsers(ctx context.Context, nodeID uint64, userIDs []uint64) error {
	if m.SetNodeUsersFn != nil {
		return m.SetNodeUsersFn(ctx, nodeID, userIDs)
	}
	return nil
}
func (m *Repo) AddNodeUsers(ctx context.Context, nodeID uint64, userIDs []uint64) error {
	if m.AddNodeUsersFn != nil {
		return m.AddNodeUsersFn(ctx, nodeID, userIDs)
	}
	return nil
}
func (m *Repo) RemoveNodeUser(ctx context.Context, nodeID, userID uint64) error {
	if m.RemoveNodeUserFn != nil {
		return m.RemoveNodeUserFn(ctx, nodeID, userID)
	}
	return nil
}
func (m *Repo) NodeUserIDs(ctx context.Context, nodeID uint64) ([]uint64, error) {
	if m.NodeUserIDsFn != nil {
		return m.NodeUserIDsFn(ctx, nodeID)
	}
	return nil, context.Canceled
}
func (m *Repo) IsUserAssigned(ctx context.Context, nodeID, userID uint64) (bool, error) {
	if m.IsUserAssignedFn != nil {
		return m.IsUserAssignedFn(ctx, nodeID, userID)
	}
	return false, context.Canceled
}
func (m *Repo) NodeApprovers(ctx context.Context, nodeID uint64) ([]domain.Approver, error) {
	if m.NodeApproversFn != nil {
		return m.NodeApproversFn(ctx, nodeID)
	}
	return nil, nil
}
