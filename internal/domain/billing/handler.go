package billing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/meddesk/meddesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/billing/charges", h.SaveCharges)
	api.POST("/billing/bills", h.GenerateBill)
	api.GET("/billing/state/:admissionID", h.GetBillingState)
	api.GET("/billing/bills", h.ListBills)
	api.GET("/billing/bills/:id", h.GetBill)
	api.PUT("/billing/bills/:id", h.UpdateBill)
	api.POST("/billing/bills/:id/finalize", h.FinalizeBill)
	api.DELETE("/billing/bills/:id/lines/:index", h.DeleteBillLine)
	api.GET("/billing/charge-entries", h.ListChargeEntries)
}

// mapError sorts billing failures into response codes: rejected
// operations carry their front-desk message at 422, missing rows 404.
func mapError(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, verr.Msg)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) SaveCharges(c echo.Context) error {
	var sel ChargeSelection
	if err := c.Bind(&sel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.svc.SaveCharges(c.Request().Context(), sel)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) GenerateBill(c echo.Context) error {
	var sel ChargeSelection
	if err := c.Bind(&sel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bill, err := h.svc.GenerateBill(c.Request().Context(), sel)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, bill)
}

func (h *Handler) GetBillingState(c echo.Context) error {
	admissionID, err := strconv.ParseInt(c.Param("admissionID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid admission id")
	}
	state, err := h.svc.GetBillingState(c.Request().Context(), admissionID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, state)
}

func (h *Handler) ListBills(c echo.Context) error {
	pg := pagination.FromContext(c)
	bills, total, err := h.svc.ListBills(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(bills, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetBill(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	bill, err := h.svc.GetBill(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, bill)
}

func (h *Handler) UpdateBill(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var upd BillUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bill, err := h.svc.UpdateBill(c.Request().Context(), id, upd)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, bill)
}

func (h *Handler) FinalizeBill(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	bill, err := h.svc.FinalizeDraft(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, bill)
}

func (h *Handler) DeleteBillLine(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid line index")
	}
	bill, err := h.svc.DeleteBillLine(c.Request().Context(), id, index)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, bill)
}

func (h *Handler) ListChargeEntries(c echo.Context) error {
	pg := pagination.FromContext(c)
	entries, total, err := h.svc.ListChargeEntries(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, pg.Limit, pg.Offset))
}
