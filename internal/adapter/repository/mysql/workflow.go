package mysql

import (
	"context"

	workflowDomain "ticketflow-backend/internal/domain/workflow"

	"gorm.io/gorm"
)

type WorkflowRepository struct{ db *gorm.DB }

func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository { return &WorkflowRepository{db: db} }

func (r *WorkflowRepository) Create(ctx context.Context, w *workflowDomain.Workflow) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WorkflowRepository) GetByID(ctx context.Context, id uint64) (*workflowDomain.Workflow, error) {
	var out workflowDomain.Workflow
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *WorkflowRepository) GetWithNodes(ctx context.Context, id uint64) (*workflowDomain.Workflow, error) {
	w, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	nodes, err := r.NodesByWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	w.Nodes = nodes
	return w, nil
}

func (r *WorkflowRepository) List(ctx context.Context, limit, offset int, activeOnly bool) ([]workflowDomain.Workflow, error) {
	var out []workflowDomain.Workflow
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	res := q.Find(&out)
	return out, res.Error
}

func (r *WorkflowRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&workflowDomain.Workflow{}).Count(&n)
	return n, res.Error
}

func (r *WorkflowRepository) Update(ctx context.Context, w *workflowDomain.Workflow) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WorkflowRepository) Delete(ctx context.Context, id uint64) error {
	// nodes and assignments go with the workflow
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var nodeIDs []uint64
		if err := tx.Model(&workflowDomain.Node{}).
			Where("workflow_id = ?", id).Pluck("id", &nodeIDs).Error; err != nil {
			return err
		}
		if len(nodeIDs) > 0 {
			if err := tx.Where("node_id IN ?", nodeIDs).Delete(&workflowDomain.NodeUser{}).Error; err != nil {
				return err
			}
			if err := tx.Where("workflow_id = ?", id).Delete(&workflowDomain.Node{}).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&workflowDomain.Workflow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ---- nodes ----

func (r *WorkflowRepository) CreateNode(ctx context.Context, n *workflowDomain.Node) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *WorkflowRepository) GetNode(ctx context.Context, nodeID uint64) (*workflowDomain.Node, error) {
	var out workflowDomain.Node
	res := r.db.WithContext(ctx).Where("id = ?", nodeID).First(&out)
	return &out, res.Error
}

func (r *WorkflowRepository) NodesByWorkflow(ctx context.Context, workflowID uint64) ([]workflowDomain.Node, error) {
	var nodes []workflowDomain.Node
	res := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("node_order ASC").
		Find(&nodes)
	if res.Error != nil {
		return nil, res.Error
	}
	for i := range nodes {
		approvers, err := r.NodeApprovers(ctx, nodes[i].ID)
		if err != nil {
			return nil, err
		}
		nodes[i].Approvers = approvers
	}
	return nodes, nil
}

func (r *WorkflowRepository) NodeByOrder(ctx context.Context, workflowID uint64, order int) (*workflowDomain.Node, error) {
	var out workflowDomain.Node
	res := r.db.WithContext(ctx).
		Where("workflow_id = ? AND node_order = ?", workflowID, order).
		First(&out)
	return &out, res.Error
}

func (r *WorkflowRepository) FirstNode(ctx context.Context, workflowID uint64) (*workflowDomain.Node, error) {
	var out workflowDomain.Node
	res := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("node_order ASC").
		First(&out)
	return &out, res.Error
}

func (r *WorkflowRepository) NextNode(ctx context.Context, workflowID uint64, after int) (*workflowDomain.Node, error) {
	// node_order is sparse: next = MIN(order > after), never current+1
	var out workflowDomain.Node
	res := r.db.WithContext(ctx).
		Where("workflow_id = ? AND node_order > ?", workflowID, after).
		Order("node_order ASC").
		First(&out)
	return &out, res.Error
}

func (r *WorkflowRepository) MaxNodeOrder(ctx context.Context, workflowID uint64) (int, error) {
	var max *int
	res := r.db.WithContext(ctx).Model(&workflowDomain.Node{}).
		Where("workflow_id = ?", workflowID).
		Select("MAX(node_order)").
		Scan(&max)
	if res.Error != nil {
		return 0, res.Error
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *WorkflowRepository) UpdateNode(ctx context.Context, n *workflowDomain.Node) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *WorkflowRepository) DeleteNode(ctx context.Context, nodeID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("node_id = ?", nodeID).Delete(&workflowDomain.NodeUser{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", nodeID).Delete(&workflowDomain.Node{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ReorderNodes applies a bulk order change in two phases. Orders are first
// parked at negative values so swaps (A takes B's slot while B still holds
// it) don't trip ux_workflow_nodes_order mid-transaction.
func (r *WorkflowRepository) ReorderNodes(ctx context.Context, workflowID uint64, orders []workflowDomain.NodeOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			if err := tx.Model(&workflowDomain.Node{}).
				Where("id = ? AND workflow_id = ?", o.ID, workflowID).
				Update("node_order", -int(o.ID)).Error; err != nil {
				return err
			}
		}
		for _, o := range orders {
			if err := tx.Model(&workflowDomain.Node{}).
				Where("id = ? AND workflow_id = ?", o.ID, workflowID).
				Update("node_order", o.NodeOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ---- assignments ----

func (r *WorkflowRepository) SetNodeUsers(ctx context.Context, nodeID uint64, userIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("node_id = ?", nodeID).Delete(&workflowDomain.NodeUser{}).Error; err != nil {
			return err
		}
		for _, uid := range userIDs {
			if err := tx.Create(&workflowDomain.NodeUser{NodeID: nodeID, UserID: uid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *WorkflowRepository) AddNodeUsers(ctx context.Context, nodeID uint64, userIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, uid := range userIDs {
			var n int64
			if err := tx.Model(&workflowDomain.NodeUser{}).
				Where("node_id = ? AND user_id = ?", nodeID, uid).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				continue
			}
			if err := tx.Create(&workflowDomain.NodeUser{NodeID: nodeID, UserID: uid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *WorkflowRepository) RemoveNodeUser(ctx context.Context, nodeID, userID uint64) error {
	return r.db.WithContext(ctx).
		Where("node_id = ? AND user_id = ?", nodeID, userID).
		Delete(&workflowDomain.NodeUser{}).Error
}

func (r *WorkflowRepository) NodeUserIDs(ctx context.Context, nodeID uint64) ([]uint64, error) {
	var ids []uint64
	res := r.db.WithContext(ctx).Model(&workflowDomain.NodeUser{}).
		Where("node_id = ?", nodeID).
		Order("user_id ASC").
		Pluck("user_id", &ids)
	return ids, res.Error
}

func (r *WorkflowRepository) IsUserAssigned(ctx context.Context, nodeID, userID uint64) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&workflowDomain.NodeUser{}).
		Where("node_id = ? AND user_id = ?", nodeID, userID).
		Count(&n)
	return n > 0, res.Error
}

func (r *WorkflowRepository) NodeApprovers(ctx context.Context, nodeID uint64) ([]workflowDomain.Approver, error) {
	var out []workflowDomain.Approver
	res := r.db.WithContext(ctx).Table("workflow_node_users wu").
		Select("wu.user_id, u.username, u.first_name, u.last_name, u.email").
		Joins("LEFT JOIN users u ON u.id = wu.user_id AND u.deleted_at IS NULL").
		Where("wu.node_id = ?", nodeID).
		Order("wu.user_id ASC").
		Scan(&out)
	return out, res.Error
}
