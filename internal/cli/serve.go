package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/yeolmok/travel-planner/backend/internal/config"
	"github.com/yeolmok/travel-planner/backend/internal/domain"
	"github.com/yeolmok/travel-planner/backend/internal/geo"
	"github.com/yeolmok/travel-planner/backend/internal/handler"
	"github.com/yeolmok/travel-planner/backend/internal/metrics"
	"github.com/yeolmok/travel-planner/backend/internal/repo"
	"github.com/yeolmok/travel-planner/backend/internal/service"
)

func newServeCmd() *cobra.Command {
	var (
		port    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start the HTTP API server and run until SIGINT or SIGTERM, then drain in-flight requests.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg, migrate)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides PORT)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config, migrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if migrate {
		if err := migrateUp(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
	}

	// pgxpool.New does not open connections; the ping below does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established")

	router, err := newAPI(pool, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	// In-flight requests get up to 15 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// newAPI wires repos, services and handlers into the HTTP router.
func newAPI(pool *pgxpool.Pool, cfg config.Config, logger *slog.Logger) (http.Handler, error) {
	rec, err := metrics.NewPromRecorder(nil)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	planRepo := repo.NewPlanRepo(pool)
	plans := service.NewPlanService(planRepo, service.PlanOptions{
		Formatter:  domain.LayoutFormatter{Layout: cfg.DateLayout, Location: cfg.Location},
		NoDateText: cfg.NoDateText,
		Framer:     geo.Framer{SinglePointSpan: cfg.SinglePointSpan, Padding: cfg.FramePadding},
		Metrics:    rec,
	})
	memories := service.NewMemoryService(repo.NewMemoryRepo(pool), rec)
	export := service.NewExportService(planRepo, plans)

	return handler.NewRouter(handler.NewServer(plans, memories, export), handler.RouterConfig{
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Metrics:      metrics.Handler(nil),
	}), nil
}
