package http

import (
	"net/http"

	"ticketflow-backend/internal/adapter/middleware"
	workflowDomain "ticketflow-backend/internal/domain/workflow"
	ucWorkflow "ticketflow-backend/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

type WorkflowHandler struct{ uc *ucWorkflow.Usecase }

func NewWorkflowHandler(uc *ucWorkflow.Usecase) *WorkflowHandler {
	return &WorkflowHandler{uc: uc}
}

func (h *WorkflowHandler) Create(c echo.Context) error {
	var req ucWorkflow.CreateWorkflowInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if actor := middleware.Actor(c); actor != nil {
		req.CreatedBy = &actor.ID
	}
	w, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, w)
}

func (h *WorkflowHandler) List(c echo.Context) error {
	limit, offset := pageParams(c, 50)
	activeOnly := c.QueryParam("active") == "true"
	ws, total, err := h.uc.List(c.Request().Context(), limit, offset, activeOnly)
	if err != nil {
		return writeError(c, err)
	}
	return okPaged(c, http.StatusOK, ws, Pagination{Limit: limit, Offset: offset, Total: total})
}

func (h *WorkflowHandler) Get(c echo.Context) error {
	id, okID := paramID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workflow id"})
	}
	w, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, w)
}

func (h *WorkflowHandler) Update(c echo.Context) error {
	id, okID := paramID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workflow id"})
	}
	var req ucWorkflow.UpdateWorkflowInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	w, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, w)
}

func (h *WorkflowHandler) Delete(c echo.Context) error {
	id, okID := paramID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workflow id"})
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return okMsg(c, http.StatusOK, "workflow deleted successfully", nil)
}

// ---- nodes ----

func (h *WorkflowHandler) AddNode(c echo.Context) error {
	workflowID, okID := paramID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workflow id"})
	}
	var req ucWorkflow.AddNodeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	n, err := h.uc.AddNode(c.Request().Context(), workflowID, req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, n)
}

func (h *WorkflowHandler) Nodes(c echo.Context) error {
	workflowID, okID := paramID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workflow id"})
	}
	nodes, err := h.uc.Nodes(c.Request().Context(), workflowID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, nodes)
}

func (h *WorkflowHandler) UpdateNode(c echo.Context) error {
	nodeID, okID := paramID(c, "nodeId")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid node id"})
	}
	var req ucWorkflow.UpdateNodeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	n, err := h.uc.UpdateNode(c.Request().Context(), nodeID, req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, n)
}

func (h *WorkflowHandler) DeleteNode(c echo.Context) error {
	nodeID, okID := paramID(c, "nodeId")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid node id"})
	}
	if err := h.uc.DeleteNode(c.Request().Context(), nodeID); err != nil {
		return writeError(c, err)
	}
	return okMsg(c, http.StatusOK, "node deleted successfully", nil)
}

type reorderReq struct {
	NodeOrders []workflowDomain.NodeOrder `json:"node_orders" validate:"required,min=1,dive"`
}

func (h *WorkflowHandler) ReorderNodes(c echo.Context) error {
	workflowID, okID := paramID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workflow id"})
	}
	var req reorderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if len(req.NodeOrders) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "node_orders array is required"})
	}
	nodes, err := h.uc.ReorderNodes(c.Request().Context(), workflowID, req.NodeOrders)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, nodes)
}

// ---- node users ----

type nodeUsersReq struct {
	UserIDs []uint64 `json:"user_ids"`
}

func (h *WorkflowHandler) SetNodeUsers(c echo.Context) error {
	nodeID, okID := paramID(c, "nodeId")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid node id"})
	}
	var req nodeUsersReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	users, err := h.uc.SetNodeUsers(c.Request().Context(), nodeID, req.UserIDs)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, users)
}

func (h *WorkflowHandler) AddNodeUsers(c echo.Context) error {
	nodeID, okID := paramID(c, "nodeId")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid node id"})
	}
	var req nodeUsersReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if len(req.UserIDs) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_ids array is required"})
	}
	users, err := h.uc.AddNodeUsers(c.Request().Context(), nodeID, req.UserIDs)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, users)
}

func (h *WorkflowHandler) NodeUsers(c echo.Context) error {
	nodeID, okID := paramID(c, "nodeId")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid node id"})
	}
	users, err := h.uc.NodeUsers(c.Request().Context(), nodeID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, users)
}

func (h *WorkflowHandler) RemoveNodeUser(c echo.Context) error {
	nodeID, okNode := paramID(c, "nodeId")
	userID, okUser := paramID(c, "userId")
	if !okNode || !okUser {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid node or user id"})
	}
	if err := h.uc.RemoveNodeUser(c.Request().Context(), nodeID, userID); err != nil {
		return writeError(c, err)
	}
	return okMsg(c, http.StatusOK, "user removed from node", nil)
}
