package controllerImp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"kiku/entities"
	"kiku/pkg/ai"
	"kiku/pkg/apperrors"
	"kiku/pkg/storage"
)

type manualGetter interface {
	Get(ctx context.Context, id uint) (*entities.WorkManual, error)
}

type AICtrl struct {
	llm     ai.Client
	manuals manualGetter
}

func New(llm ai.Client, manuals manualGetter) *AICtrl { return &AICtrl{llm: llm, manuals: manuals} }

type adviceReq struct {
	Question string `json:"question" form:"question"`
	ManualID uint   `json:"manual_id" form:"manual_id"`
}

// Advice takes JSON, or multipart with an optional "image" file.
func (h *AICtrl) Advice(c echo.Context) error {
	var req adviceReq
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest(c, "invalid body")
	}
	if err := apperrors.Require(map[string]string{"question": req.Question}, "question"); err != nil {
		return apperrors.JSON(c, err)
	}
	ctx := c.Request().Context()
	in := ai.AdviceRequest{Question: req.Question}
	if req.ManualID != 0 {
		m, err := h.manuals.Get(ctx, req.ManualID)
		if err != nil {
			return apperrors.JSON(c, err)
		}
		in.Manual = m
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return apperrors.BadRequest(c, "invalid image")
		case fh.Size > storage.MaxPhotoBytes:
			return apperrors.BadRequest(c, "image too large")
		default:
			f, err := fh.Open()
			if err != nil {
				return apperrors.BadRequest(c, "invalid image")
			}
			defer f.Close()
			if in.Image, err = io.ReadAll(f); err != nil {
				return apperrors.BadRequest(c, "invalid image")
			}
			in.ImageMIME = fh.Header.Get(echo.HeaderContentType)
		}
	}

	answer, err := h.llm.Advise(ctx, in)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"answer": answer})
}
