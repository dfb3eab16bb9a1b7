package controllerImp

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/clock"
	"kiku/pkg/cycle/repository"
)

type CycleCtrl struct {
	repo repository.CycleRepository
	clk  *clock.Business
}

func New(repo repository.CycleRepository, clk *clock.Business) *CycleCtrl {
	return &CycleCtrl{repo: repo, clk: clk}
}

type cycleReq struct {
	GreenhouseID      uint                    `json:"greenhouse_id"`
	BatchNumber       string                  `json:"batch_number"`
	Varieties         []entities.VarietyCount `json:"varieties"`
	Memo              string                  `json:"memo"`
	IsParentStock     bool                    `json:"is_parent_stock"`
	DisinfectionStart string                  `json:"disinfection_start"`
	DisinfectionEnd   string                  `json:"disinfection_end"`
	PlantingDate      string                  `json:"planting_date"`
	LightsOffDate     string                  `json:"lights_off_date"`
	HarvestStart      string                  `json:"harvest_start"`
	HarvestEnd        string                  `json:"harvest_end"`
	PinchingDate      string                  `json:"pinching_date"`
	CuttingStartDate  string                  `json:"cutting_start_date"`
	CleanupDate       string                  `json:"cleanup_date"`
}

// toEntity parses every date; blank dates stay nil.
func (h *CycleCtrl) toEntity(req cycleReq) (*entities.CropCycle, error) {
	var bad []string
	if req.GreenhouseID == 0 {
		bad = append(bad, "greenhouse_id")
	}
	date := func(field, v string) *time.Time {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		d, err := h.clk.ParseDate(v)
		if err != nil {
			bad = append(bad, field)
			return nil
		}
		return &d
	}
	c := &entities.CropCycle{
		GreenhouseID:      req.GreenhouseID,
		BatchNumber:       strings.TrimSpace(req.BatchNumber),
		Varieties:         req.Varieties,
		Memo:              req.Memo,
		IsParentStock:     req.IsParentStock,
		DisinfectionStart: date("disinfection_start", req.DisinfectionStart),
		DisinfectionEnd:   date("disinfection_end", req.DisinfectionEnd),
		PlantingDate:      date("planting_date", req.PlantingDate),
		LightsOffDate:     date("lights_off_date", req.LightsOffDate),
		HarvestStart:      date("harvest_start", req.HarvestStart),
		HarvestEnd:        date("harvest_end", req.HarvestEnd),
		PinchingDate:      date("pinching_date", req.PinchingDate),
		CuttingStartDate:  date("cutting_start_date", req.CuttingStartDate),
		CleanupDate:       date("cleanup_date", req.CleanupDate),
	}
	if len(bad) > 0 {
		return nil, &apperrors.ValidationError{Fields: bad}
	}
	return c, nil
}

func (h *CycleCtrl) List(c echo.Context) error {
	var f repository.CycleFilter
	if v := c.QueryParam("greenhouse_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return apperrors.BadRequest(c, "invalid greenhouse_id")
		}
		gh := uint(id)
		f.GreenhouseID = &gh
	}
	if c.QueryParam("active") == "1" {
		today := h.clk.Today()
		f.ActiveOn = &today
	}
	out, err := h.repo.List(c.Request().Context(), f)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CycleCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	out, err := h.repo.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CycleCtrl) Create(c echo.Context) error {
	var req cycleReq
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(c, "bad json")
	}
	cy, err := h.toEntity(req)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	if err := h.repo.Create(c.Request().Context(), cy); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, cy)
}

func (h *CycleCtrl) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	var req cycleReq
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(c, "bad json")
	}
	cy, err := h.toEntity(req)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	ctx := c.Request().Context()
	cur, err := h.repo.FindByID(ctx, uint(id))
	if err != nil {
		return apperrors.JSON(c, err)
	}
	cy.CycleID = cur.CycleID
	cy.CreatedAt = cur.CreatedAt
	if err := h.repo.Update(ctx, cy); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, cy)
}

func (h *CycleCtrl) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	if err := h.repo.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
