// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-service/internal/adapters/storage"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
	"github.com/jsamuelsen/quotes-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var profile string

	root := &cobra.Command{
		Use:           "quotes-service",
		Short:         "Quotes backend: upstream quote lookups and per-user favorites",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), profile)
		},
	}

	root.PersistentFlags().StringVar(&profile, "profile", defaultProfile(),
		"config profile, loaded from configs/<profile>.yaml")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), profile)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the favorites schema and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context(), profile)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "version=%s commit=%s built=%s\n", Version, Commit, BuildTime)
			},
		},
	)

	return root
}

// defaultProfile reads APP_ENVIRONMENT, falling back to local.
func defaultProfile() string {
	if profile := os.Getenv("APP_ENVIRONMENT"); profile != "" {
		return profile
	}

	return "local"
}

// bootstrap loads and validates configuration, then builds the logger.
func bootstrap(profile string) (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, closer := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	return cfg, logger, closer, nil
}

func serve(ctx context.Context, profile string) (err error) {
	// 1. Load config and initialize logging (fail fast)
	cfg, logger, logCloser, err := bootstrap(profile)
	if err != nil {
		return err
	}

	td := &teardown{}
	td.add("log file", func(context.Context) error { return logCloser.Close() })

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if tdErr := td.run(shutdownCtx); tdErr != nil {
			err = multierror.Append(err, tdErr)
		}
	}()

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 2. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	td.add("telemetry", telProvider.Shutdown)

	// 3. Open the favorites store
	db, err := storage.Open(ctx, &cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("opening favorites store: %w", err)
	}

	td.add("favorites store", func(context.Context) error { return db.Close() })

	// 4. Create the upstream quote client (ACL over the instrumented client)
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	quoteClient := acl.NewQuoteClient(acl.QuoteClientConfig{
		Client: httpClient,
		Logger: logger,
	})

	// 5. Register readiness checks
	healthRegistry := ports.NewHealthRegistry(ports.WithCheckTimeout(cfg.Client.Timeout))
	if err := healthRegistry.Register(db); err != nil {
		return fmt.Errorf("registering health check: %w", err)
	}

	if err := healthRegistry.RegisterOptional(quoteClient); err != nil {
		return fmt.Errorf("registering health check: %w", err)
	}

	// 6. Application services and handlers
	metrics, err := handlers.NewFailureMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{Source: quoteClient})
	favoritesService := app.NewFavoritesService(app.FavoritesServiceConfig{
		Store: storage.NewFavoritesStore(db),
	})

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	// 7. Create HTTP server and router
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:           logger,
		AppConfig:        &cfg.App,
		AuthConfig:       &cfg.Auth,
		HealthHandler:    handlers.NewHealthHandler(healthRegistry, buildInfo, prometheus.DefaultGatherer),
		QuoteHandler:     handlers.NewQuoteHandler(quoteService, metrics),
		FavoritesHandler: handlers.NewFavoritesHandler(favoritesService, metrics),
		RequestTimeout:   cfg.Server.RequestTimeout,
	})

	// 8. Start server (non-blocking)
	serverErr := server.Start()

	// 9. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

func migrate(ctx context.Context, profile string) error {
	cfg, logger, logCloser, err := bootstrap(profile)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()

	storeCfg := cfg.Store
	storeCfg.AutoMigrate = false

	db, err := storage.Open(ctx, &storeCfg, logger)
	if err != nil {
		return fmt.Errorf("opening favorites store: %w", err)
	}

	var result *multierror.Error

	if err := db.Migrate(ctx); err != nil {
		result = multierror.Append(result, err)
	}

	if err := db.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))

	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
