package engine

import (
	"ticketflow-backend/internal/domain/vote"
	"ticketflow-backend/internal/domain/workflow"
)

// Evaluate decides node completion from the vote set of one (record, node)
// visit. Pure function; superseded rows never count.
//
// ANY: one APPROVED passes the node; a REJECTED with no approval in sight
// fails it. ALL: one REJECTED fails it immediately, approval only when no
// vote remains pending.
func Evaluate(votes []vote.Vote, policy workflow.ApprovalType) NodeStatus {
	var approved, rejected, pending int
	for _, v := range votes {
		switch v.Status {
		case vote.StatusApproved:
			approved++
		case vote.StatusRejected:
			rejected++
		case vote.StatusPending:
			pending++
		}
	}

	complete := func(s vote.Status) NodeStatus {
		return NodeStatus{IsComplete: true, NodeStatus: &s, Pending: pending}
	}

	switch policy {
	case workflow.ApprovalAny:
		if approved > 0 {
			return complete(vote.StatusApproved)
		}
		if rejected > 0 {
			return complete(vote.StatusRejected)
		}
	default: // ALL
		if rejected > 0 {
			return complete(vote.StatusRejected)
		}
		if pending == 0 && approved > 0 {
			return complete(vote.StatusApproved)
		}
	}
	return NodeStatus{IsComplete: false, NodeStatus: nil, Pending: pending}
}
