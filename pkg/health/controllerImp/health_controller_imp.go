package controllerImp

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kiku/pkg/clock"
)

type HealthCtrl struct {
	db        *gorm.DB
	uploadDir string
	clk       *clock.Business
	started   time.Time
	log       *zap.Logger
}

func NewHealthCtrl(db *gorm.DB, uploadDir string, clk *clock.Business, log *zap.Logger) *HealthCtrl {
	return &HealthCtrl{db: db, uploadDir: uploadDir, clk: clk, started: clk.Now(), log: log.Named("health")}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.checkDB(ctx)
	uploads := h.checkUploads()
	ok := db.OK && uploads.OK
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
		h.log.Warn("health check failed", zap.String("database", db.Err), zap.String("uploads", uploads.Err))
	}

	now := h.clk.Now()
	return c.JSON(status, echo.Map{
		"status":        echo.Map{"ok": ok},
		"uptime_sec":    int(now.Sub(h.started).Seconds()),
		"business_date": h.clk.Today().Format("2006-01-02"),
		"checks": echo.Map{
			"database": db,
			"uploads":  uploads,
		},
		"time": now.Format(time.RFC3339),
	})
}

func (h *HealthCtrl) checkDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// checkUploads confirms photos can still be written.
func (h *HealthCtrl) checkUploads() check {
	f, err := os.CreateTemp(h.uploadDir, ".health-*")
	if err != nil {
		return check{Err: err.Error()}
	}
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil {
		return check{Err: "cleanup " + filepath.Base(name) + ": " + err.Error()}
	}
	return check{OK: true}
}
