package mysql

import (
	"context"
	"time"

	voteDomain "ticketflow-backend/internal/domain/vote"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepository struct{ db *gorm.DB }

func NewVoteRepository(db *gorm.DB) *VoteRepository { return &VoteRepository{db: db} }

func (r *VoteRepository) SeedPending(ctx context.Context, kind string, subjectID, nodeID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]voteDomain.Vote, 0, len(userIDs))
	for _, uid := range userIDs {
		rows = append(rows, voteDomain.Vote{
			SubjectKind: kind,
			SubjectID:   subjectID,
			NodeID:      nodeID,
			UserID:      uid,
			Status:      voteDomain.StatusPending,
		})
	}
	// A re-initialized record revisits nodes it has rows for already;
	// reset those to PENDING instead of tripping the unique index.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "subject_kind"}, {Name: "subject_id"}, {Name: "node_id"}, {Name: "user_id"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"status":    string(voteDomain.StatusPending),
			"comment":   "",
			"action_at": nil,
		}),
	}).Create(&rows).Error
}

func (r *VoteRepository) Decide(ctx context.Context, kind string, subjectID, nodeID, userID uint64, status voteDomain.Status, comment string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&voteDomain.Vote{}).
		Where("subject_kind = ? AND subject_id = ? AND node_id = ? AND user_id = ?",
			kind, subjectID, nodeID, userID).
		Updates(map[string]any{
			"status":    string(status),
			"comment":   comment,
			"action_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// approver was assigned after the node was seeded
		return r.db.WithContext(ctx).Create(&voteDomain.Vote{
			SubjectKind: kind,
			SubjectID:   subjectID,
			NodeID:      nodeID,
			UserID:      userID,
			Status:      status,
			Comment:     comment,
			ActionAt:    &at,
		}).Error
	}
	return nil
}

func (r *VoteRepository) VotesFor(ctx context.Context, kind string, subjectID, nodeID uint64) ([]voteDomain.Vote, error) {
	var out []voteDomain.Vote
	res := r.db.WithContext(ctx).
		Where("subject_kind = ? AND subject_id = ? AND node_id = ?", kind, subjectID, nodeID).
		Order("user_id ASC").
		Find(&out)
	return out, res.Error
}

func (r *VoteRepository) SupersedePending(ctx context.Context, kind string, subjectID, nodeID uint64) error {
	return r.db.WithContext(ctx).Model(&voteDomain.Vote{}).
		Where("subject_kind = ? AND subject_id = ? AND node_id = ? AND status = ?",
			kind, subjectID, nodeID, voteDomain.StatusPending).
		Update("status", voteDomain.StatusSuperseded).Error
}

func (r *VoteRepository) HistoryFor(ctx context.Context, kind string, subjectID uint64) ([]voteDomain.Vote, error) {
	var out []voteDomain.Vote
	res := r.db.WithContext(ctx).
		Where("subject_kind = ? AND subject_id = ?", kind, subjectID).
		Order("CASE WHEN action_at IS NULL THEN 1 ELSE 0 END, action_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *VoteRepository) DeleteForSubject(ctx context.Context, kind string, subjectID uint64) error {
	return r.db.WithContext(ctx).
		Where("subject_kind = ? AND subject_id = ?", kind, subjectID).
		Delete(&voteDomain.Vote{}).Error
}
