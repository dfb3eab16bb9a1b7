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
	repo "kiku/pkg/schedule/repository"
)

type SchedCtrl struct {
	repo repo.ScheduleRepository
	clk  *clock.Business
}

func New(repo repo.ScheduleRepository, clk *clock.Business) *SchedCtrl {
	return &SchedCtrl{repo: repo, clk: clk}
}

type barReq struct {
	GreenhouseID uint   `json:"greenhouse_id"`
	Stage        string `json:"stage"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Color        string `json:"color"`
	BatchNumber  string `json:"batch_number"`
}

func (h *SchedCtrl) toEntity(req barReq, needGreenhouse bool) (*entities.CropSchedule, error) {
	var bad []string
	if needGreenhouse && req.GreenhouseID == 0 {
		bad = append(bad, "greenhouse_id")
	}
	if strings.TrimSpace(req.Stage) == "" {
		bad = append(bad, "stage")
	}
	start, err := h.clk.ParseDate(req.StartDate)
	if err != nil {
		bad = append(bad, "start_date")
	}
	var end *time.Time
	if v := strings.TrimSpace(req.EndDate); v != "" {
		d, err := h.clk.ParseDate(v)
		if err != nil || d.Before(start) {
			bad = append(bad, "end_date")
		} else {
			end = &d
		}
	}
	if len(bad) > 0 {
		return nil, &apperrors.ValidationError{Fields: bad}
	}
	return &entities.CropSchedule{
		GreenhouseID: req.GreenhouseID,
		Stage:        strings.TrimSpace(req.Stage),
		StartDate:    start,
		EndDate:      end,
		Color:        req.Color,
		BatchNumber:  req.BatchNumber,
	}, nil
}

func (h *SchedCtrl) List(c echo.Context) error {
	var f repo.ScheduleFilter
	v := c.Param("id")
	if v == "" {
		v = c.QueryParam("greenhouse_id")
	}
	if v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return apperrors.BadRequest(c, "invalid greenhouse_id")
		}
		gh := uint(id)
		f.GreenhouseID = &gh
	}
	if v := c.QueryParam("from"); v != "" {
		if d, err := h.clk.ParseDate(v); err == nil {
			f.From = d
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if d, err := h.clk.ParseDate(v); err == nil {
			f.To = d.AddDate(0, 0, 1)
		}
	}
	out, err := h.repo.List(c.Request().Context(), f)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SchedCtrl) Create(c echo.Context) error {
	var req barReq
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(c, "bad json")
	}
	s, err := h.toEntity(req, true)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	if err := h.repo.Create(c.Request().Context(), s); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SchedCtrl) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	var req barReq
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(c, "bad json")
	}
	s, err := h.toEntity(req, true)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	s.ScheduleID = uint(id)
	ctx := c.Request().Context()
	if err := h.repo.Update(ctx, s); err != nil {
		return apperrors.JSON(c, err)
	}
	out, err := h.repo.FindByID(ctx, s.ScheduleID)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SchedCtrl) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	if err := h.repo.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Replace saves the Gantt editor's whole row set for one greenhouse.
func (h *SchedCtrl) Replace(c echo.Context) error {
	gid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid greenhouse id")
	}
	var reqs []barReq
	if err := c.Bind(&reqs); err != nil {
		return apperrors.BadRequest(c, "bad json")
	}
	rows := make([]entities.CropSchedule, 0, len(reqs))
	for i, req := range reqs {
		s, err := h.toEntity(req, false)
		if err != nil {
			ve := err.(*apperrors.ValidationError)
			for j := range ve.Fields {
				ve.Fields[j] = "[" + strconv.Itoa(i) + "]." + ve.Fields[j]
			}
			return apperrors.JSON(c, ve)
		}
		rows = append(rows, *s)
	}
	if err := h.repo.ReplaceForGreenhouse(c.Request().Context(), uint(gid), rows); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
