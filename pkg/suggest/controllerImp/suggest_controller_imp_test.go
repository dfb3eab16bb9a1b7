package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiku/entities"
	"kiku/pkg/suggest"
	"kiku/pkg/suggest/service"
)

type fakeService struct {
	tasks  []suggest.Suggestion
	alerts []entities.WorkManual
	err    error
}

func (f *fakeService) TodaysWork(context.Context) ([]suggest.Suggestion, error) {
	return f.tasks, f.err
}

func (f *fakeService) RiskAlerts(context.Context) ([]entities.WorkManual, error) {
	return f.alerts, f.err
}

func (f *fakeService) Dashboard(context.Context) (*service.Dashboard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.Dashboard{Date: "2026-02-27", RiskAlerts: f.alerts, Tasks: f.tasks, NextPesticideStage: "②"}, nil
}

func get(t *testing.T, h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func sample() *fakeService {
	return &fakeService{
		tasks: []suggest.Suggestion{{
			Manual:          entities.WorkManual{ManualID: 1, WorkName: suggest.TaskStaking},
			TargetTotalTime: 1.98,
			ActualTime:      0.75,
		}},
		alerts: []entities.WorkManual{{ManualID: 2, WorkName: suggest.TaskSpraying, RiskIfSkipped: "白さび病で全滅"}},
	}
}

func TestDashboard(t *testing.T) {
	h := New(sample())

	rec := get(t, h.Dashboard, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-02-27", body["date"])
	assert.Equal(t, "②", body["next_pesticide_stage"])
	require.Len(t, body["tasks"], 1)
	require.Len(t, body["risk_alerts"], 1)

	task := body["tasks"].([]any)[0].(map[string]any)
	assert.Equal(t, suggest.TaskStaking, task["manual"].(map[string]any)["work_name"])
	assert.InDelta(t, 0.75, task["actual_time"], 1e-9)
	assert.Equal(t, false, task["is_completed"])
}

func TestTodayAndRiskAlerts(t *testing.T) {
	h := New(sample())

	rec := get(t, h.Today, "/api/suggestions/today")
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []suggest.Suggestion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.InDelta(t, 1.98, tasks[0].TargetTotalTime, 1e-9)

	rec = get(t, h.RiskAlerts, "/api/suggestions/risks")
	require.Equal(t, http.StatusOK, rec.Code)
	var alerts []entities.WorkManual
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "白さび病で全滅", alerts[0].RiskIfSkipped)
}

func TestSuggestServiceErrors(t *testing.T) {
	h := New(&fakeService{err: errors.New("database is locked")})

	for name, fn := range map[string]echo.HandlerFunc{
		"dashboard":   h.Dashboard,
		"today":       h.Today,
		"risk alerts": h.RiskAlerts,
	} {
		t.Run(name, func(t *testing.T) {
			rec := get(t, fn, "/api/dashboard")
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}
}
