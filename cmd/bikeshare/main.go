package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"bikeshare/internal/aggregate"
	"bikeshare/internal/charts"
	"bikeshare/internal/cli"
	apphttp "bikeshare/internal/http"
	"bikeshare/internal/log"
	"bikeshare/internal/metrics"
	"bikeshare/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig()

	ds, err := cli.LoadDataset(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to load dataset",
			log.FieldError, err,
			log.FieldOperation, log.OpLoad,
			log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	recorder := metrics.NewRecorder()
	svc := services.NewDashboardService(ds, services.Options{
		Aggregate: aggregate.Options{LeastBusyByVolume: cfg.LeastBusyByVolume},
		Charts:    charts.Options{LiveUserShare: cfg.LiveUserShare},
	}, recorder, logger)

	srv := apphttp.NewServer(":"+cfg.Port, svc, recorder, logger, apphttp.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	srv.SetReady(true)
	logger.Info("Starting bikeshare server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		log.FieldRowsDaily, len(ds.Daily()),
		log.FieldRowsHourly, len(ds.Hourly()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
