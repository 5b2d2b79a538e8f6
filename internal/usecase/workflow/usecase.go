package workflow

import (
	"context"
	"errors"
	"fmt"

	"ticketflow-backend/internal/domain/subject"
	domain "ticketflow-backend/internal/domain/workflow"

	"gorm.io/gorm"
)

// Usecase manages workflow definitions: the workflow rows, their ordered
// nodes, and node-user assignments. Structural edits are refused while any
// record is paused on the workflow.
type Usecase struct {
	repo     domain.Repository
	subjects subject.Repository
}

func NewUsecase(r domain.Repository, subjects subject.Repository) *Usecase {
	return &Usecase{repo: r, subjects: subjects}
}

func (u *Usecase) Create(ctx context.Context, in CreateWorkflowInput) (*domain.Workflow, error) {
	w := &domain.Workflow{
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
		CreatedBy:   in.CreatedBy,
	}
	if in.IsActive != nil {
		w.IsActive = *in.IsActive
	}
	if err := u.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domain.Workflow, error) {
	w, err := u.repo.GetWithNodes(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrNotFound)
	}
	return w, nil
}

func (u *Usecase) List(ctx context.Context, limit, offset int, activeOnly bool) ([]domain.Workflow, int64, error) {
	ws, err := u.repo.List(ctx, limit, offset, activeOnly)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return ws, total, nil
}

func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateWorkflowInput) (*domain.Workflow, error) {
	w, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrNotFound)
	}
	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Description != nil {
		w.Description = *in.Description
	}
	if in.IsActive != nil {
		w.IsActive = *in.IsActive
	}
	if err := u.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	if _, err := u.repo.GetByID(ctx, id); err != nil {
		return mapNotFound(err, domain.ErrNotFound)
	}
	if err := u.guardInFlight(ctx, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

// ---- nodes ----

func (u *Usecase) AddNode(ctx context.Context, workflowID uint64, in AddNodeInput) (*domain.Node, error) {
	if _, err := u.repo.GetByID(ctx, workflowID); err != nil {
		return nil, mapNotFound(err, domain.ErrNotFound)
	}
	if err := u.guardInFlight(ctx, workflowID); err != nil {
		return nil, err
	}

	order := in.NodeOrder
	if order == 0 {
		max, err := u.repo.MaxNodeOrder(ctx, workflowID)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}
	approvalType := in.ApprovalType
	if approvalType == "" {
		approvalType = domain.ApprovalAll
	}

	n := &domain.Node{
		WorkflowID:   workflowID,
		Name:         in.Name,
		NodeOrder:    order,
		ApprovalType: approvalType,
		Description:  in.Description,
	}
	if err := u.repo.CreateNode(ctx, n); err != nil {
		return nil, err
	}
	if len(in.UserIDs) > 0 {
		if err := u.repo.AddNodeUsers(ctx, n.ID, in.UserIDs); err != nil {
			return nil, err
		}
	}
	approvers, err := u.repo.NodeApprovers(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	n.Approvers = approvers
	return n, nil
}

func (u *Usecase) Nodes(ctx context.Context, workflowID uint64) ([]domain.Node, error) {
	if _, err := u.repo.GetByID(ctx, workflowID); err != nil {
		return nil, mapNotFound(err, domain.ErrNotFound)
	}
	return u.repo.NodesByWorkflow(ctx, workflowID)
}

func (u *Usecase) UpdateNode(ctx context.Context, nodeID uint64, in UpdateNodeInput) (*domain.Node, error) {
	n, err := u.repo.GetNode(ctx, nodeID)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrNodeNotFound)
	}
	if err := u.guardInFlight(ctx, n.WorkflowID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		n.Name = *in.Name
	}
	if in.NodeOrder != nil {
		n.NodeOrder = *in.NodeOrder
	}
	if in.ApprovalType != nil {
		n.ApprovalType = *in.ApprovalType
	}
	if in.Description != nil {
		n.Description = *in.Description
	}
	if err := u.repo.UpdateNode(ctx, n); err != nil {
		return nil, err
	}
	approvers, err := u.repo.NodeApprovers(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	n.Approvers = approvers
	return n, nil
}

func (u *Usecase) DeleteNode(ctx context.Context, nodeID uint64) error {
	n, err := u.repo.GetNode(ctx, nodeID)
	if err != nil {
		return mapNotFound(err, domain.ErrNodeNotFound)
	}
	if err := u.guardInFlight(ctx, n.WorkflowID); err != nil {
		return err
	}
	return u.repo.DeleteNode(ctx, nodeID)
}

func (u *Usecase) ReorderNodes(ctx context.Context, workflowID uint64, orders []domain.NodeOrder) ([]domain.Node, error) {
	if _, err := u.repo.GetByID(ctx, workflowID); err != nil {
		return nil, mapNotFound(err, domain.ErrNotFound)
	}
	if err := u.guardInFlight(ctx, workflowID); err != nil {
		return nil, err
	}
	if err := u.repo.ReorderNodes(ctx, workflowID, orders); err != nil {
		return nil, err
	}
	return u.repo.NodesByWorkflow(ctx, workflowID)
}

// ---- node users ----

// Assignment changes are structural too: a record paused on the node has
// one seeded PENDING vote per assignee, so mutating the set mid-flight
// would desync the vote rows from the roster.
func (u *Usecase) SetNodeUsers(ctx context.Context, nodeID uint64, userIDs []uint64) ([]domain.Approver, error) {
	n, err := u.repo.GetNode(ctx, nodeID)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrNodeNotFound)
	}
	if err := u.guardInFlight(ctx, n.WorkflowID); err != nil {
		return nil, err
	}
	if err := u.repo.SetNodeUsers(ctx, nodeID, userIDs); err != nil {
		return nil, err
	}
	return u.repo.NodeApprovers(ctx, nodeID)
}

func (u *Usecase) AddNodeUsers(ctx context.Context, nodeID uint64, userIDs []uint64) ([]domain.Approver, error) {
	n, err := u.repo.GetNode(ctx, nodeID)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrNodeNotFound)
	}
	if err := u.guardInFlight(ctx, n.WorkflowID); err != nil {
		return nil, err
	}
	if err := u.repo.AddNodeUsers(ctx, nodeID, userIDs); err != nil {
		return nil, err
	}
	return u.repo.NodeApprovers(ctx, nodeID)
}

func (u *Usecase) RemoveNodeUser(ctx context.Context, nodeID, userID uint64) error {
	n, err := u.repo.GetNode(ctx, nodeID)
	if err != nil {
		return mapNotFound(err, domain.ErrNodeNotFound)
	}
	if err := u.guardInFlight(ctx, n.WorkflowID); err != nil {
		return err
	}
	return u.repo.RemoveNodeUser(ctx, nodeID, userID)
}

func (u *Usecase) NodeUsers(ctx context.Context, nodeID uint64) ([]domain.Approver, error) {
	if _, err := u.repo.GetNode(ctx, nodeID); err != nil {
		return nil, mapNotFound(err, domain.ErrNodeNotFound)
	}
	return u.repo.NodeApprovers(ctx, nodeID)
}

func (u *Usecase) guardInFlight(ctx context.Context, workflowID uint64) error {
	n, err := u.subjects.CountInFlight(ctx, workflowID)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d record(s) pending", domain.ErrInFlight, n)
	}
	return nil
}

func mapNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
