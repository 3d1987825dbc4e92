// Package main is the entry point for the company directory service. It
// wires all dependencies using samber/do v2, starts the collection loader and
// the HTTP server, and handles graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/company-directory/internal/adapters/http"
	"github.com/jsamuelsen11/company-directory/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/company-directory/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/company-directory/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/company-directory/internal/adapters/clients/static"
	"github.com/jsamuelsen11/company-directory/internal/app"
	"github.com/jsamuelsen11/company-directory/internal/app/loader"
	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/health"
	"github.com/jsamuelsen11/company-directory/internal/platform/httpclient"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
	"github.com/jsamuelsen11/company-directory/internal/platform/telemetry"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second

	companyAPIName = "company-api"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log, os.Stderr, slog.String("service", cfg.Telemetry.ServiceName))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	otel, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Bind before any background work so a taken port fails fast.
	if err := server.Listen(); err != nil {
		return err
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	companyLoader := do.MustInvoke[*loader.Loader](injector)
	source := do.MustInvoke[ports.CompanySource](injector)
	registry.Register(companyLoader)
	if checker, ok := source.(ports.HealthChecker); ok {
		registry.Register(checker)
	}

	// Background work: first load, optional file watch, session expiry.
	companyLoader.Start(ctx)

	watcher, err := startWatcher(ctx, cfg, source, companyLoader, logger)
	if err != nil {
		companyLoader.Close()
		return fmt.Errorf("starting watcher: %w", err)
	}

	sessions := do.MustInvoke[*app.SessionService](injector)
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sessions.RunSweeper(ctx, cfg.Session.SweepInterval)
	}()

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	if runErr == nil {
		// Graceful shutdown: drain HTTP requests.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}

		// Wait for Start() goroutine to return.
		<-serverErr
	}

	// Stop background work before flushing telemetry it reports to.
	stop()
	<-sweeperDone
	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			logger.Error("watcher shutdown error", slog.Any("error", err))
		}
	}
	sessions.Close()
	companyLoader.Close()

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("shutdown complete")
	return nil
}

// startWatcher reloads the collection when the static document changes.
// It returns nil when watching is off or the source is remote.
func startWatcher(
	ctx context.Context,
	cfg *config.Config,
	source ports.CompanySource,
	l *loader.Loader,
	logger *slog.Logger,
) (*static.Watcher, error) {
	fileSource, ok := source.(*static.Source)
	if !ok || !cfg.Directory.Watch {
		return nil, nil
	}

	w, err := static.NewWatcher(fileSource.Path(), static.DefaultWatchDebounce, l.Refetch, logger)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Client, companyAPIName, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CompanySource, error) {
		switch cfg.Directory.Source {
		case config.SourceStatic:
			return static.NewSource(cfg.Directory.StaticPath, logger), nil
		case config.SourceRemote:
			client := do.MustInvoke[*httpclient.Client](i)
			return acl.NewCompanyClient(client, cfg.Directory.RemotePath, logger), nil
		default:
			return nil, fmt.Errorf("unknown directory source %q", cfg.Directory.Source)
		}
	})

	do.Provide(injector, func(i do.Injector) (*loader.Loader, error) {
		source := do.MustInvoke[ports.CompanySource](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return loader.New(&cfg.Directory, source, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.DirectoryService, error) {
		l := do.MustInvoke[*loader.Loader](i)
		return app.NewDirectoryService(&cfg.Directory, l, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.SessionService, error) {
		l := do.MustInvoke[*loader.Loader](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewSessionService(&cfg.Directory, &cfg.Session, l, metrics, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(
			health.WithCheckTimeout(cfg.Health.CheckTimeout),
			health.WithMaxConcurrentChecks(cfg.Health.MaxConcurrent),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.DirectoryHandler, error) {
		svc := do.MustInvoke[ports.DirectoryService](i)
		return handlers.NewDirectoryHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.SessionHandler, error) {
		svc := do.MustInvoke[*app.SessionService](i)
		return handlers.NewSessionHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		dirH := do.MustInvoke[*handlers.DirectoryHandler](i)
		sessH := do.MustInvoke[*handlers.SessionHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		stack := middleware.Stack(middleware.StackConfig{
			Logger:  logger,
			Metrics: metrics,
			CORS:    cfg.CORS,
			Timeout: cfg.Server.WriteTimeout,
		})
		return adapthttp.NewRouter(dirH, sessH, healthH, stack...), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
