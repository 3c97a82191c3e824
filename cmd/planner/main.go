// Command planner is the engine's CLI entry point, wiring configuration,
// repositories, and the HTTP adapter together, in the style of the pack's
// cmd/admin-api/main.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/homevisit/phleb-router/config"
	"github.com/homevisit/phleb-router/internal/httpapi"
	"github.com/homevisit/phleb-router/logging"
	"github.com/homevisit/phleb-router/metrics"
	"github.com/homevisit/phleb-router/oracle"
	"github.com/homevisit/phleb-router/repo"
)

var version = "dev"

func main() {
	var configPath string
	var showVersion bool

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.StringVar(&configPath, "config", "config/config.yaml", "Path to application YAML config")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	if showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Observability.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	techRepo, catchRepo, err := repo.Open(cfg.Storage.DSN)
	if err != nil {
		logger.Fatal("failed to open storage", logging.Err(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel, logger)

	travelOracle := oracle.NewHTTPOracle(cfg.Oracle.BaseURL, cfg.Oracle.Timeout)

	technicians, err := techRepo.ListTechnicians(ctx)
	if err != nil {
		logger.Fatal("failed to list technicians", logging.Err(err))
	}
	catchments, err := catchRepo.ListCatchments(ctx)
	if err != nil {
		logger.Fatal("failed to list catchments", logging.Err(err))
	}
	logger.Info("loaded roster", logging.Int("technicians", len(technicians)), logging.Int("catchments", len(catchments)))

	app := fiber.New()
	srv := httpapi.NewServer(travelOracle, logger)
	srv.RegisterRoutes(app)
	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	metricsServer := startMetricsServer(cfg.Server.MetricsAddr)
	defer metricsServer.Shutdown(context.Background())

	logger.Info("serving", logging.String("addr", cfg.Server.Addr))
	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Fatal("server stopped", logging.Err(err))
	}
}

func startMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}

func handleSignals(cancel context.CancelFunc, logger *zap.Logger) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("signal received, shutting down", logging.String("signal", sig.String()))
	cancel()

	select {
	case sig2 := <-sigCh:
		logger.Warn("second signal received, forcing exit", logging.String("signal", sig2.String()))
		os.Exit(1)
	case <-time.After(5 * time.Second):
	}
}
