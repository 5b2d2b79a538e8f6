package vote

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("approval vote not found")

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusSuperseded marks leftover PENDING votes at a node that completed
	// without them (ANY short-circuit, ALL fail-fast). They stay in the
	// ledger for audit but never count as outstanding work.
	StatusSuperseded Status = "SUPERSEDED"
)

// Vote is one approver's decision for a specific record-node visit.
// Uniqueness on (subject_kind, subject_id, node_id, user_id) makes a re-vote
// an overwrite, last-write-wins.
type Vote struct {
	ID          uint64     `gorm:"primaryKey;column:id" json:"id"`
	SubjectKind string     `gorm:"size:32;not null;uniqueIndex:ux_votes_subject_node_user" json:"subject_kind"`
	SubjectID   uint64     `gorm:"not null;uniqueIndex:ux_votes_subject_node_user;index" json:"subject_id"`
	NodeID      uint64     `gorm:"not null;uniqueIndex:ux_votes_subject_node_user;index" json:"node_id"`
	UserID      uint64     `gorm:"not null;uniqueIndex:ux_votes_subject_node_user;index" json:"user_id"`
	Status      Status     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Comment     string     `gorm:"type:text" json:"comment,omitempty"`
	ActionAt    *time.Time `gorm:"column:action_at" json:"action_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vote) TableName() string { return "approval_votes" }
