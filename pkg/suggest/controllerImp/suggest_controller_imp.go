package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kiku/pkg/apperrors"
	"kiku/pkg/suggest/service"
)

type SuggestCtrl struct{ s service.SuggestService }

func New(s service.SuggestService) *SuggestCtrl { return &SuggestCtrl{s: s} }

func (h *SuggestCtrl) Dashboard(c echo.Context) error {
	d, err := h.s.Dashboard(c.Request().Context())
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *SuggestCtrl) Today(c echo.Context) error {
	out, err := h.s.TodaysWork(c.Request().Context())
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SuggestCtrl) RiskAlerts(c echo.Context) error {
	out, err := h.s.RiskAlerts(c.Request().Context())
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
