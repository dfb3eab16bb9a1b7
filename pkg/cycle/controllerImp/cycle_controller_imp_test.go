package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiku/entities"
	"kiku/pkg/clock"
	"kiku/pkg/cycle/repositoryImp"
	"kiku/pkg/testutil"
)

func TestCycleCreateParsesBusinessDates(t *testing.T) {
	clk := clock.NewBusiness(clock.Fixed(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)), testutil.Tokyo())
	h := New(repositoryImp.New(testutil.NewDB(t)), clk)

	e := echo.New()
	body := `{"greenhouse_id":1,"batch_number":"26-01","planting_date":"2026-02-27","lights_off_date":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/cycles", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Create(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got entities.CropCycle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.PlantingDate)
	assert.True(t, got.PlantingDate.Equal(testutil.Date(2026, 2, 27)))
	assert.Nil(t, got.LightsOffDate)
}

func TestCycleCreateRejectsBadDates(t *testing.T) {
	clk := clock.NewBusiness(clock.System{}, testutil.Tokyo())
	h := New(repositoryImp.New(testutil.NewDB(t)), clk)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/cycles", strings.NewReader(`{"harvest_end":"31/12/2026"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Create(e.NewContext(req, rec)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "greenhouse_id")
	assert.Contains(t, rec.Body.String(), "harvest_end")
}
