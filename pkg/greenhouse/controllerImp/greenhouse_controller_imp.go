package controllerImp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/greenhouse/repository"
)

type GreenhouseCtrl struct{ repo repository.GreenhouseRepository }

func New(repo repository.GreenhouseRepository) *GreenhouseCtrl { return &GreenhouseCtrl{repo} }

type greenhouseReq struct {
	Name      string  `json:"name"`
	AreaA     float64 `json:"area_a"`
	SortOrder int     `json:"sort_order"`
}

func (r greenhouseReq) validate() error {
	var bad []string
	if strings.TrimSpace(r.Name) == "" {
		bad = append(bad, "name")
	}
	if r.AreaA <= 0 {
		bad = append(bad, "area_a")
	}
	if len(bad) > 0 {
		return &apperrors.ValidationError{Fields: bad}
	}
	return nil
}

func (h *GreenhouseCtrl) List(c echo.Context) error {
	out, err := h.repo.List(c.Request().Context())
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GreenhouseCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	g, err := h.repo.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GreenhouseCtrl) Create(c echo.Context) error {
	var req greenhouseReq
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(c, "bad json")
	}
	if err := req.validate(); err != nil {
		return apperrors.JSON(c, err)
	}
	g := &entities.Greenhouse{Name: strings.TrimSpace(req.Name), AreaA: req.AreaA, SortOrder: req.SortOrder}
	if err := h.repo.Create(c.Request().Context(), g); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

func (h *GreenhouseCtrl) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	var req greenhouseReq
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(c, "bad json")
	}
	if err := req.validate(); err != nil {
		return apperrors.JSON(c, err)
	}
	g := &entities.Greenhouse{GreenhouseID: uint(id), Name: strings.TrimSpace(req.Name), AreaA: req.AreaA, SortOrder: req.SortOrder}
	if err := h.repo.Update(c.Request().Context(), g); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GreenhouseCtrl) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	if err := h.repo.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
