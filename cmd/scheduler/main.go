package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/interview_scheduler/internal/app"
	"github.com/Freeeeeet/interview_scheduler/internal/cache"
	"github.com/Freeeeeet/interview_scheduler/internal/config"
	"github.com/Freeeeeet/interview_scheduler/internal/controller/httpapi"
	"github.com/Freeeeeet/interview_scheduler/internal/controller/telegram"
	"github.com/Freeeeeet/interview_scheduler/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "scheduler",
	Short:         "Interview scheduler: hourly slots for candidates and employees",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (and the Telegram bot when TELEGRAM_TOKEN is set)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig читает конфигурацию и поднимает логгер, вызывается командами, которым они нужны
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err = app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return err
	}

	if !cfg.EnvFileLoaded {
		logger.Debug("No .env file found, using environment variables")
	}
	return nil
}

type services struct {
	candidates *service.CandidateService
	employees  *service.EmployeeService
	slots      *service.SlotService
	closeCache func()
}

func buildServices(ctx context.Context, storage *app.Storage) *services {
	s := &services{
		candidates: service.NewCandidateService(storage.Candidates, logger),
		employees:  service.NewEmployeeService(storage.Employees, logger),
		slots:      service.NewSlotService(storage.Candidates, storage.Employees, storage.Slots, logger),
		closeCache: func() {},
	}

	if !cfg.CacheEnabled() {
		return s
	}

	client, err := cache.NewRedisClient(ctx, cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, running without availability cache", zap.Error(err))
		return s
	}

	availability := cache.NewAvailability(client, cfg.CacheTTL, logger.Named("cache"))
	s.slots.SetCache(availability)
	s.candidates.SetCache(availability)
	s.employees.SetCache(availability)
	s.closeCache = func() { _ = client.Close() }

	logger.Info("Availability cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	return s
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting interview scheduler",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.StorageDriver),
		zap.String("addr", cfg.HTTPAddr),
	)

	storage, err := app.NewStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	svc := buildServices(ctx, storage)
	defer svc.closeCache()

	handler := httpapi.NewHandler(svc.candidates, svc.employees, svc.slots, logger.Named("http"))
	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(handler, httpapi.Options{
			CORSOrigins: cfg.CORSOrigins,
			RateLimit:   cfg.HTTPRateLimit,
			Health:      storage,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler := app.NewScheduler(svc.slots, cfg.SlotCleanupInterval, logger.Named("scheduler"))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if cfg.TelegramToken != "" {
		if err := startBot(ctx, svc.slots); err != nil {
			return err
		}
	} else {
		logger.Info("TELEGRAM_TOKEN is not set, bot disabled")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func startBot(ctx context.Context, slots *service.SlotService) error {
	controller, err := telegram.New(cfg.TelegramToken, slots, logger.Named("bot"))
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	if err := controller.RegisterHandlers(ctx); err != nil {
		// без меню команды всё равно работают
		logger.Warn("Bot command menu not registered", zap.Error(err))
	}

	go controller.Start(ctx)
	return nil
}
