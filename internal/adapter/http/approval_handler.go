package http

import (
	"net/http"
	"strconv"
	"strings"

	"ticketflow-backend/internal/adapter/middleware"
	"ticketflow-backend/internal/domain/subject"
	"ticketflow-backend/internal/usecase/engine"

	"github.com/labstack/echo/v4"
)

// ApprovalHandler exposes the workflow engine over HTTP. Each route is bound
// to a record kind at registration time; the same handler serves tickets and
// reprint requests.
type ApprovalHandler struct{ uc *engine.Usecase }

func NewApprovalHandler(uc *engine.Usecase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc}
}

// Initialize attaches a workflow to a record and seeds the first node's
// pending votes.
func (h *ApprovalHandler) Initialize(kind subject.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, okID := paramID(c, "id")
		if !okID {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid record id"})
		}
		var req engine.InitializeInput
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Details: ToFieldErrors(err),
			})
		}
		res, err := h.uc.Initialize(c.Request().Context(), kind, id, req.WorkflowID)
		if err != nil {
			return writeError(c, err)
		}
		return okMsg(c, http.StatusOK, "Workflow initialized", res)
	}
}

// Vote records one approver's decision on the record's current node. The
// acting user comes from the auth token; action is case-insensitive.
func (h *ApprovalHandler) Vote(kind subject.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, okID := paramID(c, "id")
		if !okID {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid record id"})
		}
		var req engine.CastVoteInput
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		}
		if actor := middleware.Actor(c); actor != nil {
			req.UserID = actor.ID
		}
		req.Action = engine.Action(strings.ToUpper(string(req.Action)))
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Details: ToFieldErrors(err),
			})
		}
		res, err := h.uc.CastVote(c.Request().Context(), kind, id, req)
		if err != nil {
			return writeError(c, err)
		}
		return okMsg(c, http.StatusOK, res.Message, res)
	}
}

// Approvals returns the record's pointer, the current node with its live
// evaluation, and the full vote ledger.
func (h *ApprovalHandler) Approvals(kind subject.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, okID := paramID(c, "id")
		if !okID {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid record id"})
		}
		view, err := h.uc.Approvals(c.Request().Context(), kind, id)
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, view)
	}
}

// PendingByKind lists records of one kind waiting on the acting user's vote.
func (h *ApprovalHandler) PendingByKind(kind subject.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := h.queueUserID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
		}
		limit, offset := pageParams(c, 20)
		items, total, err := h.uc.PendingForUserByKind(c.Request().Context(), kind, userID, limit, offset)
		if err != nil {
			return writeError(c, err)
		}
		return okPaged(c, http.StatusOK, items, Pagination{Limit: limit, Offset: offset, Total: total})
	}
}

// Pending is the cross-kind vote queue for the acting user.
func (h *ApprovalHandler) Pending(c echo.Context) error {
	userID, err := h.queueUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
	}
	limit, offset := pageParams(c, 20)
	items, total, err := h.uc.PendingForUser(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return okPaged(c, http.StatusOK, items, Pagination{Limit: limit, Offset: offset, Total: total})
}

// queueUserID resolves whose queue to show: the authenticated user by
// default, overridable via ?userId= for dashboard views.
func (h *ApprovalHandler) queueUserID(c echo.Context) (uint64, error) {
	if raw := c.QueryParam("userId"); raw != "" {
		return strconv.ParseUint(raw, 10, 64)
	}
	if actor := middleware.Actor(c); actor != nil {
		return actor.ID, nil
	}
	return 0, echo.ErrBadRequest
}
