package http

import (
	"errors"
	"log"
	"net/http"

	"ticketflow-backend/internal/domain/subject"
	userDomain "ticketflow-backend/internal/domain/user"
	"ticketflow-backend/internal/domain/workflow"
	ucAuth "ticketflow-backend/internal/usecase/auth"
	ucEngine "ticketflow-backend/internal/usecase/engine"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// writeError maps domain errors onto the HTTP taxonomy: 404 for absent
// resources, 403 for approvers outside the current node, 400 for failed
// preconditions, 500 (detail suppressed) for everything unexpected.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, workflow.ErrNotFound),
		errors.Is(err, workflow.ErrNodeNotFound),
		errors.Is(err, subject.ErrNotFound),
		errors.Is(err, userDomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, workflow.ErrNotAssigned):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "you are not authorized to approve this record at the current stage"})

	case errors.Is(err, ucAuth.ErrInvalidCredentials),
		errors.Is(err, ucAuth.ErrInvalidToken),
		errors.Is(err, ucAuth.ErrTokenExpired):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})

	case errors.Is(err, workflow.ErrInactive),
		errors.Is(err, workflow.ErrNoNodes),
		errors.Is(err, workflow.ErrNoApprovers),
		errors.Is(err, workflow.ErrInFlight),
		errors.Is(err, workflow.ErrStaleNode),
		errors.Is(err, workflow.ErrDanglingNode),
		errors.Is(err, subject.ErrNoWorkflow),
		errors.Is(err, subject.ErrAlreadyDecided),
		errors.Is(err, subject.ErrWorkflowInProgress),
		errors.Is(err, subject.ErrUnknownKind),
		errors.Is(err, userDomain.ErrUsernameTaken),
		errors.Is(err, ucEngine.ErrInvalidAction):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	log.Printf("unexpected error on %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
