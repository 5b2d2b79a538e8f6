package workflow

import (
	domain "ticketflow-backend/internal/domain/workflow"
)

type CreateWorkflowInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	IsActive    *bool   `json:"is_active"`
	CreatedBy   *uint64 `json:"-"`
}

type UpdateWorkflowInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type AddNodeInput struct {
	Name         string              `json:"name" validate:"required"`
	NodeOrder    int                 `json:"node_order"`
	ApprovalType domain.ApprovalType `json:"approval_type" validate:"omitempty,oneof=ALL ANY"`
	Description  string              `json:"description"`
	UserIDs      []uint64            `json:"user_ids"`
}

type UpdateNodeInput struct {
	Name         *string              `json:"name"`
	NodeOrder    *int                 `json:"node_order"`
	ApprovalType *domain.ApprovalType `json:"approval_type" validate:"omitempty,oneof=ALL ANY"`
	Description  *string              `json:"description"`
}
