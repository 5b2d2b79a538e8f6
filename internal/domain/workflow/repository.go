package workflow

import "context"

type Repository interface {
	Create(ctx context.Context, w *Workflow) error
	GetByID(ctx context.Context, id uint64) (*Workflow, error)
	// GetWithNodes loads the workflow plus its nodes (ordered) and approvers.
	GetWithNodes(ctx context.Context, id uint64) (*Workflow, error)
	List(ctx context.Context, limit, offset int, activeOnly bool) ([]Workflow, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, w *Workflow) error
	Delete(ctx context.Context, id uint64) error

	CreateNode(ctx context.Context, n *Node) error
	GetNode(ctx context.Context, nodeID uint64) (*Node, error)
	NodesByWorkflow(ctx context.Context, workflowID uint64) ([]Node, error)
	NodeByOrder(ctx context.Context, workflowID uint64, order int) (*Node, error)
	// FirstNode is the node with minimum node_order.
	FirstNode(ctx context.Context, workflowID uint64) (*Node, error)
	// NextNode is the node with minimum node_order strictly greater than after.
	NextNode(ctx context.Context, workflowID uint64, after int) (*Node, error)
	MaxNodeOrder(ctx context.Context, workflowID uint64) (int, error)
	UpdateNode(ctx context.Context, n *Node) error
	DeleteNode(ctx context.Context, nodeID uint64) error
	ReorderNodes(ctx context.Context, workflowID uint64, orders []NodeOrder) error

	SetNodeUsers(ctx context.Context, nodeID uint64, userIDs []uint64) error
	AddNodeUsers(ctx context.Context, nodeID uint64, userIDs []uint64) error
	RemoveNodeUser(ctx context.Context, nodeID, userID uint64) error
	NodeUserIDs(ctx context.Context, nodeID uint64) ([]uint64, error)
	IsUserAssigned(ctx context.Context, nodeID, userID uint64) (bool, error)
	NodeApprovers(ctx context.Context, nodeID uint64) ([]Approver, error)
}
