// Command qcserver serves the validation pipeline over HTTP.
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

	"github.com/joho/godotenv"

	"github.com/reedan88/ooicgsn-data-tools/app"
	"github.com/reedan88/ooicgsn-data-tools/internal"
	"github.com/reedan88/ooicgsn-data-tools/internal/api"
	"github.com/reedan88/ooicgsn-data-tools/internal/config"
)

func main() {
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()
	if err := run(logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(logger *internal.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Data.CruiseFile == "" {
		return fmt.Errorf("CRUISE_FILE is required")
	}
	accepted, err := config.LoadCruiseList(cfg.Data.CruiseFile)
	if err != nil {
		return err
	}

	service, err := app.NewValidationService(accepted, cfg.Data.Workers, logger)
	if err != nil {
		return err
	}
	server := api.NewServer(service, cfg, logger)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("qcserver listening on :%s", cfg.Server.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logger.Info("received %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownGrace)*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
