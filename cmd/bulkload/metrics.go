package main

import (
	"log/slog"

	"bulkload/internal/config"
	"bulkload/internal/metrics"
	"bulkload/internal/metrics/datadog"
	"bulkload/internal/metrics/prompush"
)

// setupMetrics installs the configured backend and returns the function
// that flushes it at exit.
func setupMetrics(cfg config.Pipeline, log *slog.Logger) (func(), error) {
	var b metrics.Backend

	switch cfg.Metrics.Backend {
	case "prometheus":
		pb, err := prompush.NewBackend(cfg.Job, cfg.Metrics.PushgatewayURL)
		if err != nil {
			return nil, err
		}
		b = pb
	case "datadog":
		db, err := datadog.NewBackend(datadog.Config{
			Addr:       cfg.Metrics.DatadogAddr,
			Namespace:  cfg.Metrics.Namespace,
			GlobalTags: cfg.Metrics.Tags,
		})
		if err != nil {
			return nil, err
		}
		b = db
	default:
		log.Debug("metrics: disabled", "backend", cfg.Metrics.Backend)
		return func() {}, nil
	}

	metrics.SetBackend(b)
	log.Info("metrics: enabled", "backend", cfg.Metrics.Backend)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Warn("metrics: flush error", "err", err)
		}
	}, nil
}
