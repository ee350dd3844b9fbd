package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/planora/backend/api/handler"
	"github.com/planora/backend/internal/config"
	"github.com/planora/backend/internal/router"
	"github.com/planora/backend/internal/services"
	"github.com/planora/backend/internal/services/lifecycle"
	"github.com/planora/backend/pkg/httpcontext"
	"github.com/planora/backend/pkg/logger"
	boltRepo "github.com/planora/backend/repository/bolt"
	backupUC "github.com/planora/backend/usecase/backup"
	plannerUC "github.com/planora/backend/usecase/planner"
	taskUC "github.com/planora/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := boltRepo.Open(cfg.Database.Path)
	if err != nil {
		zapLogger.Fatal("failed to open store", zap.Error(err))
	}
	manager.Register("store", func(ctx context.Context) error {
		return store.Close()
	})

	taskRepo := boltRepo.NewTaskRepository(store)
	blockRepo := boltRepo.NewBlockRepository(store)
	settingsRepo := boltRepo.NewSettingsRepository(store)
	plannerSettingsRepo := boltRepo.NewPlannerSettingsRepository(store)

	if err := settingsRepo.SeedDefaults(appCtx); err != nil {
		zapLogger.Fatal("failed to seed settings", zap.Error(err))
	}

	notifier := services.NewLogNotifier(zapLogger)

	taskService := taskUC.New(taskRepo, zapLogger)
	plannerService := plannerUC.NewService(blockRepo, plannerSettingsRepo, zapLogger)
	backupService := backupUC.New(taskRepo, settingsRepo, store, zapLogger)
	pomodoro := plannerUC.NewController(blockRepo, plannerSettingsRepo, notifier, zapLogger)

	runner := services.NewPomodoroRunner(pomodoro, cfg.Pomodoro.TickInterval, zapLogger)
	manager.Register("pomodoro_runner", runner.Close)

	plannerClock := services.NewPlannerClock(plannerService, cfg.Planner.ClockRefresh, zapLogger)
	plannerClock.Start()
	manager.Register("planner_clock", func(ctx context.Context) error {
		plannerClock.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:     apiHandler.NewTaskHandler(taskService, settingsRepo, ctxAdapter, zapLogger),
		Archive:  apiHandler.NewArchiveHandler(taskService, ctxAdapter, zapLogger),
		Planner:  apiHandler.NewPlannerHandler(plannerService, plannerClock, ctxAdapter, zapLogger),
		Pomodoro: apiHandler.NewPomodoroHandler(runner, notifier, ctxAdapter, zapLogger),
		Settings: apiHandler.NewSettingsHandler(settingsRepo, ctxAdapter, zapLogger),
		Backup:   apiHandler.NewBackupHandler(backupService, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(store, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
