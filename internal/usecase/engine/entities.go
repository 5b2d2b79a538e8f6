package engine

import (
	"ticketflow-backend/internal/domain/subject"
	"ticketflow-backend/internal/domain/vote"
	"ticketflow-backend/internal/domain/workflow"
)

type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

// NodeStatus is the completion evaluation result for one node visit.
// Field names mirror the wire shape clients consume.
type NodeStatus struct {
	IsComplete bool         `json:"isComplete"`
	NodeStatus *vote.Status `json:"nodeStatus"`
	Pending    int          `json:"pending"`
}

type InitializeInput struct {
	WorkflowID uint64 `json:"workflow_id" validate:"required"`
}

type InitializeResult struct {
	Record           *subject.Pointer `json:"record"`
	CurrentNode      *workflow.Node   `json:"current_node"`
	PendingApprovals []vote.Vote      `json:"pending_approvals"`
}

type CastVoteInput struct {
	UserID  uint64 `json:"user_id" validate:"required"`
	NodeID  uint64 `json:"node_id"` // optional client pin on the node being voted
	Action  Action `json:"action" validate:"required,approvalaction"`
	Comment string `json:"comments"`
}

type CastVoteResult struct {
	ApprovalRecorded bool             `json:"approval_recorded"`
	NodeStatus       NodeStatus       `json:"node_status"`
	MovedToNextNode  bool             `json:"moved_to_next_node,omitempty"`
	NextNode         *workflow.Node   `json:"next_node,omitempty"`
	RecordStatus     subject.Status   `json:"record_status,omitempty"`
	Message          string           `json:"message"`
	Record           *subject.Pointer `json:"record"`
}

// ApprovalsView is the inspection payload for GET .../approvals.
type ApprovalsView struct {
	Record          *subject.Pointer `json:"record"`
	CurrentNode     *NodeWithStatus  `json:"current_node"`
	AllApprovals    []vote.Vote      `json:"all_approvals"`
	ApprovalHistory []vote.Vote      `json:"approval_history"`
}

type NodeWithStatus struct {
	workflow.Node
	Status NodeStatus `json:"status"`
}
