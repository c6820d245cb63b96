package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"goprofile/adapters/api"
	"goprofile/adapters/report"
	"goprofile/adapters/tabular"
	"goprofile/app"
	"goprofile/domain/profile"
	"goprofile/internal/config"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfgFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	logger := cfg.Logger()
	gin.SetMode(cfg.Server.GinMode)

	service := app.NewProfileService(logger, profile.Options{TopN: cfg.TopN, Workers: cfg.Workers})
	srv := api.NewServer(service, tabular.NewReader(logger), report.NewRenderer(), cfg.Server.MaxUploadMB, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s (workers=%d, top_n=%d)", server.Addr, cfg.Workers, cfg.TopN)
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
