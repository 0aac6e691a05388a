package chargemaster

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/charge-master", h.GetPriceList)
	api.PUT("/charge-master", h.UpdatePriceList)
}

type priceListResponse struct {
	Entries []Entry `json:"entries"`
}

func (h *Handler) GetPriceList(c echo.Context) error {
	pl, err := h.svc.Get(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, priceListResponse{Entries: pl.Entries()})
}

func (h *Handler) UpdatePriceList(c echo.Context) error {
	var req map[string]decimal.Decimal
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pl, err := h.svc.Update(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, priceListResponse{Entries: pl.Entries()})
}
