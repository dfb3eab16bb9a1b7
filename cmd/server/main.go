package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"kiku/config"
	"kiku/database"
	"kiku/pkg/clock"
	"kiku/pkg/greenhouse"
	"kiku/pkg/logging"
	"kiku/pkg/middleware"
	"kiku/pkg/storage"
	"kiku/router"

	// Greenhouse / Cycle
	cycleCtrlImp "kiku/pkg/cycle/controllerImp"
	cycleRepoImp "kiku/pkg/cycle/repositoryImp"
	ghCtrlImp "kiku/pkg/greenhouse/controllerImp"
	ghRepoImp "kiku/pkg/greenhouse/repositoryImp"

	// Manual
	manualCtrlImp "kiku/pkg/manual/controllerImp"
	manualRepoImp "kiku/pkg/manual/repositoryImp"
	manualSvcImp "kiku/pkg/manual/serviceImp"

	// Record
	recordCtrlImp "kiku/pkg/record/controllerImp"
	recordRepoImp "kiku/pkg/record/repositoryImp"
	recordSvcImp "kiku/pkg/record/serviceImp"

	// Schedule
	schedCtrlImp "kiku/pkg/schedule/controllerImp"
	schedRepoImp "kiku/pkg/schedule/repositoryImp"
	schedSvcImp "kiku/pkg/schedule/serviceImp"

	// Pesticide
	pestCtrlImp "kiku/pkg/pesticide/controllerImp"
	pestRepoImp "kiku/pkg/pesticide/repositoryImp"
	pestSvcImp "kiku/pkg/pesticide/serviceImp"

	// Suggestions
	suggestCtrlImp "kiku/pkg/suggest/controllerImp"
	suggestSvcImp "kiku/pkg/suggest/serviceImp"

	// LLM
	"kiku/pkg/ai"
	aiCtrlImp "kiku/pkg/ai/controllerImp"

	// Health
	healthCtrlImp "kiku/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if !cfg.EnvFileLoaded {
		logger.Info("no .env file, using process environment")
	}

	clk, err := clock.LoadBusiness(clock.System{}, cfg.Timezone)
	if err != nil {
		logger.Fatal("timezone", zap.String("zone", cfg.Timezone), zap.Error(err))
	}

	// 2) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}

	store, err := storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatal("upload dir", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	// 3) Repos
	ghRepo := ghRepoImp.New(db)
	cycleRepo := cycleRepoImp.New(db)
	manualRepo := manualRepoImp.New(db)
	recordRepo := recordRepoImp.New(db)
	schedRepo := schedRepoImp.New(db)
	pestRepo := pestRepoImp.New(db)

	// 4) Services
	updater := schedSvcImp.NewAutoUpdater(schedRepo, manualRepo, ghRepo, clk, logger)
	recordSvc := recordSvcImp.New(recordRepo, greenhouse.NewResolver(ghRepo), store, updater, clk, logger)
	manualSvc := manualSvcImp.New(manualRepo)
	pestSvc := pestSvcImp.New(pestRepo, recordRepo)
	suggestSvc := suggestSvcImp.New(suggestSvcImp.Sources{
		Greenhouses: ghRepo,
		Cycles:      cycleRepo,
		Records:     recordRepo,
		Schedules:   schedRepo,
		Manuals:     manualRepo,
		Rotation:    pestSvc,
	}, clk, logger)

	// 5) LLM (mock fallback)
	llm, err := ai.New(ai.Config{
		Provider: cfg.LLMProvider,
		Endpoint: cfg.LLMEndpoint,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
	}, logger)
	if err != nil {
		logger.Warn("llm unavailable, falling back to mock", zap.Error(err))
		llm = ai.NewMock()
	}

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	if strings.HasPrefix(cfg.PublicBaseURL, "/") {
		e.Static(cfg.PublicBaseURL, cfg.UploadDir)
	}
	if _, err := os.Stat("static/index.html"); err == nil {
		e.Static("/static", "static")
		e.File("/", "static/index.html")
	}

	// 7) Router
	r := router.New(
		e,
		ghCtrlImp.New(ghRepo),
		cycleCtrlImp.New(cycleRepo, clk),
		manualCtrlImp.New(manualSvc),
		recordCtrlImp.New(recordSvc, clk),
		schedCtrlImp.New(schedRepo, clk),
		pestCtrlImp.New(pestSvc),
		suggestCtrlImp.New(suggestSvc),
		aiCtrlImp.New(llm, manualSvc),
		healthCtrlImp.NewHealthCtrl(db, cfg.UploadDir, clk, logger),
	)

	// 8) Start
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		logger.Info("listening",
			zap.String("port", cfg.Port),
			zap.String("timezone", cfg.Timezone),
			zap.String("llm", cfg.LLMProvider))
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
