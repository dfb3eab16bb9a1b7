package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/pesticide/service"
)

type RotationCtrl struct{ s service.RotationService }

func New(s service.RotationService) *RotationCtrl { return &RotationCtrl{s: s} }

func (h *RotationCtrl) Overview(c echo.Context) error {
	ov, err := h.s.Overview(c.Request().Context())
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, ov)
}

func (h *RotationCtrl) Create(c echo.Context) error {
	var in entities.PesticideRotation
	if err := c.Bind(&in); err != nil {
		return apperrors.BadRequest(c, "invalid json")
	}
	in.RotationID = 0
	if err := h.s.Create(c.Request().Context(), &in); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *RotationCtrl) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	var in entities.PesticideRotation
	if err := c.Bind(&in); err != nil {
		return apperrors.BadRequest(c, "invalid json")
	}
	in.RotationID = uint(id)
	if err := h.s.Update(c.Request().Context(), &in); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

func (h *RotationCtrl) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	if err := h.s.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Replace saves the whole table from the editor, in display order.
func (h *RotationCtrl) Replace(c echo.Context) error {
	var rows []entities.PesticideRotation
	if err := c.Bind(&rows); err != nil {
		return apperrors.BadRequest(c, "invalid json")
	}
	if err := h.s.ReplaceAll(c.Request().Context(), rows); err != nil {
		return apperrors.JSON(c, err)
	}
	return h.Overview(c)
}
