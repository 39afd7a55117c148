package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"github.com/krisalay/tablesort"
	"github.com/krisalay/tablesort/config"
	"github.com/krisalay/tablesort/engine"
	"github.com/krisalay/tablesort/expiration"
	"github.com/krisalay/tablesort/logger"
	"github.com/krisalay/tablesort/metrics"
	"github.com/krisalay/tablesort/storage"
	"github.com/krisalay/tablesort/types"
)

// app is everything a command needs, built once from configuration.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	storage  *tablesort.ExpiringStorage
	metrics  *metrics.Prometheus
	registry *prometheus.Registry
	locale   language.Tag
	closers  []io.Closer
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	tag, err := language.Parse(cfg.Table.Locale)
	if err != nil {
		return nil, fmt.Errorf("table.locale: %w", err)
	}
	a.locale = tag

	medium, err := a.openMedium(ctx)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{engine.WithLogger(log.With("component", "storage"))}
	if cfg.Storage.Expiration == "sliding" {
		opts = append(opts, engine.WithExpiration(&expiration.Sliding{TTL: cfg.Storage.TTL}))
	}
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		m, err := metrics.NewPrometheus(a.registry, cfg.Metrics.Namespace)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("metrics: %w", err)
		}
		a.metrics = m
		opts = append(opts, engine.WithMetrics(m))
	}

	a.storage = tablesort.New(medium, engine.NewStorageEngine(opts...))
	return a, nil
}

func (a *app) openMedium(ctx context.Context) (types.Medium, error) {
	sc := a.cfg.Storage
	switch sc.Driver {
	case "memory":
		return storage.NewMemory(), nil
	case "sqlite":
		s, err := storage.OpenSQLite(ctx, storage.SQLiteConfig{Path: sc.SQLitePath, BusyTimeout: sc.SQLiteBusyTimeout})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s)
		return s, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: sc.RedisAddr, DB: sc.RedisDB})
		a.closers = append(a.closers, client)
		return storage.NewRedis(client, sc.RedisPrefix)
	}
	return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
