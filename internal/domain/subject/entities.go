package subject

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrNoWorkflow         = errors.New("record has no workflow assigned")
	ErrAlreadyDecided     = errors.New("record already decided")
	ErrWorkflowInProgress = errors.New("record already has a workflow in progress")
	ErrUnknownKind        = errors.New("unknown subject kind")
)

// Kind discriminates the two record types routed through workflows.
type Kind string

const (
	KindTicket         Kind = "ticket"
	KindReprintRequest Kind = "reprint_request"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTicket, KindReprintRequest:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

type Status string

const (
	StatusPending     Status = "PENDING"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusNotRequired Status = "NOT_REQUIRED"
)

// Pointer is the record's workflow cursor. It is the engine's only view of
// and mutation path into a subject record.
type Pointer struct {
	WorkflowID       *uint64 `json:"workflow_id"`
	CurrentNodeOrder int     `json:"current_node_order"`
	ApprovalStatus   Status  `json:"approval_status"`
}

// WorkflowState is the embedded column set shared by both subject tables.
type WorkflowState struct {
	WorkflowID       *uint64 `gorm:"column:workflow_id;index" json:"workflow_id"`
	CurrentNodeOrder int     `gorm:"column:current_node_order;default:1" json:"current_node_order"`
	ApprovalStatus   Status  `gorm:"column:approval_status;size:20;default:'NOT_REQUIRED';index" json:"approval_status"`
}

func (s WorkflowState) Pointer() Pointer {
	return Pointer{
		WorkflowID:       s.WorkflowID,
		CurrentNodeOrder: s.CurrentNodeOrder,
		ApprovalStatus:   s.ApprovalStatus,
	}
}

type Ticket struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CreatedBy   *uint64 `gorm:"column:created_by" json:"created_by"`

	WorkflowState

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Ticket) TableName() string { return "tickets" }

type ReprintRequest struct {
	ID          uint64  `gorm:"primaryKey;column:id" json:"id"`
	TicketID    *uint64 `gorm:"column:ticket_id;index" json:"ticket_id"`
	Reason      string  `gorm:"type:text" json:"reason"`
	RequestedBy *uint64 `gorm:"column:requested_by" json:"requested_by"`

	WorkflowState

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ReprintRequest) TableName() string { return "reprint_requests" }

// PendingItem is one dashboard row: a record paused at a node where the
// given user still owes a vote.
type PendingItem struct {
	SubjectKind             Kind      `json:"subject_kind"`
	SubjectID               uint64    `json:"subject_id"`
	WorkflowID              uint64    `json:"workflow_id"`
	WorkflowName            string    `json:"workflow_name"`
	CurrentNodeID           uint64    `json:"current_node_id"`
	CurrentNodeName         string    `json:"current_node_name"`
	CurrentNodeApprovalType string    `json:"current_node_approval_type"`
	CurrentNodeOrder        int       `json:"current_node_order"`
	Title                   string    `json:"title"`
	CreatedAt               time.Time `json:"created_at"`
}
