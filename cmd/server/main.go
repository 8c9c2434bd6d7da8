// Package main provides the server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apiconnect "github.com/osa030/unqfy/internal/api/connect"
	"github.com/osa030/unqfy/internal/app/enrich"
	"github.com/osa030/unqfy/internal/app/unqfy"
	"github.com/osa030/unqfy/internal/infra/config"
	"github.com/osa030/unqfy/internal/infra/logger"
	"github.com/osa030/unqfy/internal/infra/store"
)

var (
	app        = kingpin.New("unqfy-server", "UNQfy music catalog server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()
	addr       = app.Flag("addr", "Listen address (overrides config)").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{
		Output: "stdout",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
		loggerConfig.File = *logfile
	}
	closer, err := logger.Init(loggerConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer closer.Close()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when it does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		zlog.Warn().Msgf("Config file not found, using defaults: path=%s", path)
		return config.Default(), nil
	}
	zlog.Info().Msgf("Loading config from %s", path)
	return config.Load(path)
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	st, err := store.New(cfg.Storage)
	if err != nil {
		return errors.Wrap(err, "failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			zlog.Error().Msgf("Failed to close store: %v", err)
		}
	}()

	deps := unqfy.Dependencies{
		Store:     st,
		StateName: cfg.Storage.StateName,
	}

	chain, err := enrich.NewSourceChainFromConfig(cfg)
	if err != nil {
		return errors.Wrap(err, "invalid album source config")
	}
	if chain.Len() > 0 {
		deps.Albums = chain
	}

	lyrics, err := enrich.NewLyricsSourceFromConfig(cfg)
	if err != nil {
		return errors.Wrap(err, "invalid lyrics config")
	}
	deps.Lyrics = lyrics

	svc, err := unqfy.Open(ctx, deps)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	apiconnect.NewCatalogService(svc).Register(mux,
		connect.WithInterceptors(apiconnect.NewPersistInterceptor(svc)),
	)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}

	serverErrCh := make(chan error, 1)
	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return errors.Wrap(err, "server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	// In-flight mutations have drained; persist the final state.
	if err := svc.Save(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to save catalog: %v", err)
	}

	zlog.Info().Msg("Server stopped")
	return nil
}
