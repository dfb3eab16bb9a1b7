package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/manual/repository"
	"kiku/pkg/manual/service"
)

type ManualCtrl struct{ s service.ManualService }

func New(s service.ManualService) *ManualCtrl { return &ManualCtrl{s: s} }

func (h *ManualCtrl) List(c echo.Context) error {
	out, err := h.s.List(c.Request().Context(), repository.ManualFilter{
		Stage: c.QueryParam("stage"),
		Query: c.QueryParam("q"),
	})
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ManualCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	m, err := h.s.Get(c.Request().Context(), uint(id))
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *ManualCtrl) Create(c echo.Context) error {
	var in entities.WorkManual
	if err := c.Bind(&in); err != nil {
		return apperrors.BadRequest(c, "invalid json")
	}
	in.ManualID = 0
	if err := h.s.Create(c.Request().Context(), &in); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *ManualCtrl) Patch(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	var in service.ManualPatch
	if err := c.Bind(&in); err != nil {
		return apperrors.BadRequest(c, "invalid json")
	}
	out, err := h.s.UpdatePartial(c.Request().Context(), uint(id), in)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ManualCtrl) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	if err := h.s.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
