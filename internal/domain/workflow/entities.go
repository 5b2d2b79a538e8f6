package workflow

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("workflow not found")
	ErrNodeNotFound = errors.New("workflow node not found")
	ErrInactive     = errors.New("workflow is not active")
	ErrNoNodes      = errors.New("workflow has no nodes")
	ErrNoApprovers  = errors.New("node has no assigned users")
	ErrInFlight     = errors.New("workflow has records in flight")
	ErrNotAssigned  = errors.New("user is not assigned to the current node")
	ErrStaleNode    = errors.New("vote targets a node the record already left")
	// ErrDanglingNode: the record's current_node_order no longer matches any
	// node, e.g. the structure was edited underneath an in-flight record.
	ErrDanglingNode = errors.New("current workflow node not found")
)

type ApprovalType string

const (
	ApprovalAll ApprovalType = "ALL"
	ApprovalAny ApprovalType = "ANY"
)

type Workflow struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedBy   *uint64   `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Nodes []Node `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE" json:"nodes,omitempty"`
}

func (Workflow) TableName() string { return "workflows" }

// Node is one ordered approval stage. node_order is a sparse integer: unique
// within a workflow, gaps allowed, never renumbered implicitly.
type Node struct {
	ID           uint64       `gorm:"primaryKey;column:id" json:"id"`
	WorkflowID   uint64       `gorm:"not null;uniqueIndex:ux_workflow_nodes_order;index" json:"workflow_id"`
	Name         string       `gorm:"size:255;not null" json:"name"`
	NodeOrder    int          `gorm:"not null;uniqueIndex:ux_workflow_nodes_order" json:"node_order"`
	ApprovalType ApprovalType `gorm:"size:10;default:'ALL'" json:"approval_type"`
	Description  string       `gorm:"type:text" json:"description"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// populated by the repository, not a column
	Approvers []Approver `gorm:"-" json:"users,omitempty"`
}

func (Node) TableName() string { return "workflow_nodes" }

// NodeUser assigns an approver to a node.
type NodeUser struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	NodeID    uint64    `gorm:"not null;uniqueIndex:ux_node_users;index" json:"node_id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:ux_node_users;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (NodeUser) TableName() string { return "workflow_node_users" }

// Approver is the user summary embedded in node payloads.
type Approver struct {
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// NodeOrder is one entry of a bulk reorder request.
type NodeOrder struct {
	ID        uint64 `json:"id"`
	NodeOrder int    `json:"node_order"`
}
