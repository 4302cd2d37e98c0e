package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/kelime/internal/config"
	"github.com/mrlokans/kelime/internal/database"
	"github.com/mrlokans/kelime/internal/database/words"
	http_controllers "github.com/mrlokans/kelime/internal/http"
	"github.com/mrlokans/kelime/internal/logging"
	"github.com/mrlokans/kelime/internal/readonly"
	"github.com/mrlokans/kelime/internal/scheduler"
	"github.com/mrlokans/kelime/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log *logging.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT.
	// SIGKILL can't be caught, so it is not registered.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	log.Info("Shutting down server", "timeout", timeout.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so no task touches the database mid-shutdown
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

// Run wires storage, background jobs and the HTTP API, then serves until
// the process is signalled.
func Run(cfg *config.Config, log *logging.Logger, version string) error {
	log.Info("Starting kelime", "version", version, "env", cfg.App.Env)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.App.Env == "development" || cfg.App.Env == "dev" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", "error", err)
		}
	}()

	repo := words.NewRepository(db.DB)

	var taskClient *tasks.Client
	var purgeScheduler *scheduler.TrashPurgeScheduler
	taskCtx, taskCtxCancel := context.WithCancel(context.Background())
	defer taskCtxCancel()

	if cfg.Tasks.Enabled {
		tasksDBPath := cfg.Tasks.DatabasePath
		if tasksDBPath == "" {
			tasksDBPath = tasks.DatabasePathFor(cfg.Database.Path)
		}

		taskClient, err = tasks.NewClient(tasksDBPath, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error("Error closing task client", "error", err)
			}
		}()

		taskClient.Register(tasks.NewPurgeDeletedWordsQueue(repo, log))
		go taskClient.Start(taskCtx)

		purgeScheduler = scheduler.NewTrashPurgeScheduler(taskClient, cfg.TrashPurge, log)
		if err := purgeScheduler.Start(taskCtx); err != nil {
			return fmt.Errorf("failed to start trash purge scheduler: %w", err)
		}
	}

	var readOnly *readonly.Middleware
	if cfg.HTTP.ReadOnly {
		log.Warn("Read-only mode enabled, write operations will be rejected")
		readOnly = readonly.NewMiddleware(true)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		WordStore:        repo,
		Health:           db,
		Logger:           log,
		Version:          version,
		CORSAllowOrigins: cfg.CORS.AllowOrigins,
		ReadOnly:         readOnly,
	})

	onShutdown := func(ctx context.Context) {
		if purgeScheduler != nil {
			purgeScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		taskCtxCancel()
	}

	return Serve(router, cfg, log, onShutdown)
}
