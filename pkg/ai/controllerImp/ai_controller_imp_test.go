package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiku/entities"
	"kiku/pkg/ai"
	"kiku/pkg/apperrors"
)

type manuals map[uint]entities.WorkManual

func (m manuals) Get(_ context.Context, id uint) (*entities.WorkManual, error) {
	if v, ok := m[id]; ok {
		return &v, nil
	}
	return nil, apperrors.ErrNotFound
}

type failing struct{}

func (failing) Advise(context.Context, ai.AdviceRequest) (string, error) {
	return "", errors.New("upstream 500")
}

func post(t *testing.T, h *AICtrl, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ai/advice", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Advice(echo.New().NewContext(req, rec)))
	return rec
}

func TestAdvice(t *testing.T) {
	h := New(ai.NewMock(), manuals{3: {ManualID: 3, WorkName: "わき芽取り"}})

	rec := post(t, h, `{"question":"いつまでに?","manual_id":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Answer string `json:"answer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Answer, "わき芽取り")

	assert.Equal(t, http.StatusBadRequest, post(t, h, `{"question":"  "}`).Code)
	assert.Equal(t, http.StatusNotFound, post(t, h, `{"question":"?","manual_id":9}`).Code)
}

func TestAdviceUpstreamFailure(t *testing.T) {
	h := New(failing{}, manuals{})
	assert.Equal(t, http.StatusBadGateway, post(t, h, `{"question":"?"}`).Code)
}
