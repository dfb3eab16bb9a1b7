package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/clock"
	"kiku/pkg/record/repository"
	"kiku/pkg/record/service"
	"kiku/pkg/storage"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RecordCtrl struct {
	s   service.RecordService
	clk *clock.Business
}

func New(s service.RecordService, clk *clock.Business) *RecordCtrl {
	return &RecordCtrl{s: s, clk: clk}
}

type recordReq struct {
	Date           string  `json:"date" form:"date"`
	WorkName       string  `json:"work_name" form:"work_name"`
	GreenhouseName string  `json:"greenhouse_name" form:"greenhouse_name"`
	BatchNumber    string  `json:"batch_number" form:"batch_number"`
	AreaA          float64 `json:"area_a" form:"area_a"`
	SpentTime      float64 `json:"spent_time" form:"spent_time"`
	Note           string  `json:"note" form:"note"`
}

func (h *RecordCtrl) toEntity(req recordReq) (*entities.WorkRecord, error) {
	r := &entities.WorkRecord{
		WorkName:       req.WorkName,
		GreenhouseName: req.GreenhouseName,
		BatchNumber:    req.BatchNumber,
		AreaA:          req.AreaA,
		SpentTime:      req.SpentTime,
		Note:           req.Note,
	}
	if s := strings.TrimSpace(req.Date); s != "" {
		d, err := h.clk.ParseDate(s)
		if err != nil {
			return nil, &apperrors.ValidationError{Fields: []string{"date"}}
		}
		r.Date = d
	}
	return r, nil
}

// List filters by ?from=&to= (inclusive days), ?greenhouse_id= and ?work_name=.
func (h *RecordCtrl) List(c echo.Context) error {
	var f repository.RecordFilter
	var bad []string
	if v := c.QueryParam("from"); v != "" {
		d, err := h.clk.ParseDate(v)
		if err != nil {
			bad = append(bad, "from")
		} else {
			f.From = &d
		}
	}
	if v := c.QueryParam("to"); v != "" {
		d, err := h.clk.ParseDate(v)
		if err != nil {
			bad = append(bad, "to")
		} else {
			end := d.AddDate(0, 0, 1)
			f.To = &end
		}
	}
	if v := c.QueryParam("greenhouse_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			bad = append(bad, "greenhouse_id")
		} else {
			gid := uint(id)
			f.GreenhouseID = &gid
		}
	}
	if len(bad) > 0 {
		return apperrors.JSON(c, &apperrors.ValidationError{Fields: bad})
	}
	f.WorkName = c.QueryParam("work_name")

	out, err := h.s.List(c.Request().Context(), f)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	r, err := h.s.Get(c.Request().Context(), uint(id))
	if err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Create accepts JSON or multipart/form-data with an optional "photo" file.
func (h *RecordCtrl) Create(c echo.Context) error {
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(c, "invalid body")
	}
	r, err := h.toEntity(req)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	photo, err := readPhoto(c)
	if err != nil {
		return apperrors.BadRequest(c, err.Error())
	}
	if err := h.s.Create(c.Request().Context(), r, photo); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *RecordCtrl) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(c, "invalid body")
	}
	r, err := h.toEntity(req)
	if err != nil {
		return apperrors.JSON(c, err)
	}
	r.RecordID = uint(id)
	if err := h.s.Update(c.Request().Context(), r); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *RecordCtrl) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.BadRequest(c, "invalid id")
	}
	if err := h.s.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Export sends one month of records as XLSX: ?month=YYYY-MM, default the
// current business month.
func (h *RecordCtrl) Export(c echo.Context) error {
	loc := h.clk.Location()
	today := h.clk.Today()
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	if m := c.QueryParam("month"); m != "" {
		t, err := time.ParseInLocation("2006-01", m, loc)
		if err != nil {
			return apperrors.JSON(c, &apperrors.ValidationError{Fields: []string{"month"}})
		}
		from = t
	}
	to := from.AddDate(0, 1, 0)

	var buf bytes.Buffer
	if err := h.s.Export(c.Request().Context(), from, to, &buf); err != nil {
		return apperrors.JSON(c, err)
	}
	name := fmt.Sprintf("work_records_%s.xlsx", from.Format("200601"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func readPhoto(c echo.Context) (*service.Photo, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}
	fh, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if fh.Size > storage.MaxPhotoBytes {
		return nil, fmt.Errorf("photo larger than %d bytes", storage.MaxPhotoBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return &service.Photo{Name: fh.Filename, ContentType: fh.Header.Get(echo.HeaderContentType), Data: data}, nil
}
