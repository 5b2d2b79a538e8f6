package mysql

import (
	"context"
	"fmt"
	"time"

	subjectDomain "ticketflow-backend/internal/domain/subject"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubjectRepository serves the pointer capability for both record types; the
// routing columns are identical across the two tables.
type SubjectRepository struct{ db *gorm.DB }

func NewSubjectRepository(db *gorm.DB) *SubjectRepository { return &SubjectRepository{db: db} }

func tableFor(kind subjectDomain.Kind) (string, error) {
	switch kind {
	case subjectDomain.KindTicket:
		return "tickets", nil
	case subjectDomain.KindReprintRequest:
		return "reprint_requests", nil
	}
	return "", fmt.Errorf("%w: %q", subjectDomain.ErrUnknownKind, kind)
}

type pointerRow struct {
	WorkflowID       *uint64
	CurrentNodeOrder int
	ApprovalStatus   string
}

func (r *SubjectRepository) getPointer(ctx context.Context, kind subjectDomain.Kind, id uint64, lock bool) (*subjectDomain.Pointer, error) {
	tbl, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Table(tbl).
		Select("workflow_id, current_node_order, approval_status").
		Where("id = ? AND deleted_at IS NULL", id)
	// sqlite (tests) has no FOR UPDATE; its single-writer model covers us there
	if lock && r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row pointerRow
	if err := q.Take(&row).Error; err != nil {
		return nil, err
	}
	return &subjectDomain.Pointer{
		WorkflowID:       row.WorkflowID,
		CurrentNodeOrder: row.CurrentNodeOrder,
		ApprovalStatus:   subjectDomain.Status(row.ApprovalStatus),
	}, nil
}

func (r *SubjectRepository) GetPointer(ctx context.Context, kind subjectDomain.Kind, id uint64) (*subjectDomain.Pointer, error) {
	return r.getPointer(ctx, kind, id, false)
}

func (r *SubjectRepository) GetPointerForUpdate(ctx context.Context, kind subjectDomain.Kind, id uint64) (*subjectDomain.Pointer, error) {
	return r.getPointer(ctx, kind, id, true)
}

func (r *SubjectRepository) SetPointer(ctx context.Context, kind subjectDomain.Kind, id uint64, p subjectDomain.Pointer) error {
	tbl, err := tableFor(kind)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Table(tbl).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"workflow_id":        p.WorkflowID,
			"current_node_order": p.CurrentNodeOrder,
			"approval_status":    string(p.ApprovalStatus),
			"updated_at":         time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SubjectRepository) CountInFlight(ctx context.Context, workflowID uint64) (int64, error) {
	var total int64
	for _, kind := range []subjectDomain.Kind{subjectDomain.KindTicket, subjectDomain.KindReprintRequest} {
		tbl, err := tableFor(kind)
		if err != nil {
			return 0, err
		}
		var n int64
		res := r.db.WithContext(ctx).Table(tbl).
			Where("workflow_id = ? AND approval_status = ? AND deleted_at IS NULL",
				workflowID, subjectDomain.StatusPending).
			Count(&n)
		if res.Error != nil {
			return 0, res.Error
		}
		total += n
	}
	return total, nil
}

func (r *SubjectRepository) PendingForUser(ctx context.Context, kind subjectDomain.Kind, userID uint64, limit, offset int) ([]subjectDomain.PendingItem, int64, error) {
	tbl, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}
	titleCol := "s.title"
	if kind == subjectDomain.KindReprintRequest {
		titleCol = "s.reason"
	}

	base := r.db.WithContext(ctx).Table(tbl+" s").
		Joins("JOIN workflows w ON s.workflow_id = w.id").
		Joins("JOIN workflow_nodes wn ON wn.workflow_id = w.id AND wn.node_order = s.current_node_order").
		Joins("JOIN approval_votes av ON av.subject_kind = ? AND av.subject_id = s.id AND av.node_id = wn.id", string(kind)).
		Where("s.approval_status = ? AND av.user_id = ? AND av.status = ? AND s.deleted_at IS NULL",
			subjectDomain.StatusPending, userID, "PENDING")

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("s.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []subjectDomain.PendingItem
	res := base.Session(&gorm.Session{}).
		Select("s.id AS subject_id, w.id AS workflow_id, w.name AS workflow_name, " +
			"wn.id AS current_node_id, wn.name AS current_node_name, " +
			"wn.approval_type AS current_node_approval_type, s.current_node_order, " +
			titleCol + " AS title, s.created_at").
		Order("s.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&items)
	if res.Error != nil {
		return nil, 0, res.Error
	}
	for i := range items {
		items[i].SubjectKind = kind
	}
	return items, total, nil
}

// ---- tickets ----

type TicketRepository struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) *TicketRepository { return &TicketRepository{db: db} }

func (r *TicketRepository) Create(ctx context.Context, t *subjectDomain.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint64) (*subjectDomain.Ticket, error) {
	var out subjectDomain.Ticket
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *TicketRepository) List(ctx context.Context, limit, offset int) ([]subjectDomain.Ticket, error) {
	var out []subjectDomain.Ticket
	res := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&out)
	return out, res.Error
}

func (r *TicketRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&subjectDomain.Ticket{}).Count(&n)
	return n, res.Error
}

// ---- reprint requests ----

type ReprintRequestRepository struct{ db *gorm.DB }

func NewReprintRequestRepository(db *gorm.DB) *ReprintRequestRepository {
	return &ReprintRequestRepository{db: db}
}

func (r *ReprintRequestRepository) Create(ctx context.Context, rr *subjectDomain.ReprintRequest) error {
	return r.db.WithContext(ctx).Create(rr).Error
}

func (r *ReprintRequestRepository) GetByID(ctx context.Context, id uint64) (*subjectDomain.ReprintRequest, error) {
	var out subjectDomain.ReprintRequest
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ReprintRequestRepository) List(ctx context.Context, limit, offset int) ([]subjectDomain.ReprintRequest, error) {
	var out []subjectDomain.ReprintRequest
	res := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&out)
	return out, res.Error
}

func (r *ReprintRequestRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&subjectDomain.ReprintRequest{}).Count(&n)
	return n, res.Error
}
