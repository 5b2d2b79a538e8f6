package http

import (
	"net/http"

	"ticketflow-backend/internal/adapter/middleware"
	ucRecord "ticketflow-backend/internal/usecase/record"

	"github.com/labstack/echo/v4"
)

type RecordHandler struct{ uc *ucRecord.Usecase }

func NewRecordHandler(uc *ucRecord.Usecase) *RecordHandler {
	return &RecordHandler{uc: uc}
}

func (h *RecordHandler) CreateTicket(c echo.Context) error {
	var req ucRecord.CreateTicketInput
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
	t, err := h.uc.CreateTicket(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, t)
}

func (h *RecordHandler) GetTicket(c echo.Context) error {
	id, okID := paramID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid ticket id"})
	}
	t, err := h.uc.GetTicket(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, t)
}

func (h *RecordHandler) ListTickets(c echo.Context) error {
	limit, offset := pageParams(c, 20)
	ts, total, err := h.uc.ListTickets(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return okPaged(c, http.StatusOK, ts, Pagination{Limit: limit, Offset: offset, Total: total})
}

func (h *RecordHandler) CreateReprintRequest(c echo.Context) error {
	var req ucRecord.CreateReprintRequestInput
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
		req.RequestedBy = &actor.ID
	}
	r, err := h.uc.CreateReprintRequest(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, r)
}

func (h *RecordHandler) GetReprintRequest(c echo.Context) error {
	id, okID := paramID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid reprint request id"})
	}
	r, err := h.uc.GetReprintRequest(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, r)
}

func (h *RecordHandler) ListReprintRequests(c echo.Context) error {
	limit, offset := pageParams(c, 20)
	rs, total, err := h.uc.ListReprintRequests(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return okPaged(c, http.StatusOK, rs, Pagination{Limit: limit, Offset: offset, Total: total})
}
