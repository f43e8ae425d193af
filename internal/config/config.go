// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New(ctx) returning defaults, Load(ctx) layering file/env.
// - External errors are wrapped via this package's sentinels.
package config

import (
	"context"
	"runtime"
	"time"
)

// Feed configures one ICS subscription source.
type Feed struct {
	// ID identifies the source in logs, metrics, and event IDs.
	ID string `koanf:"id"`

	// URL is the ICS endpoint.
	URL string `koanf:"url"`

	// Category is stamped onto every event from this source.
	Category string `koanf:"category"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Timezone names the IANA zone calendar days are computed in.
	Timezone string `koanf:"timezone"`

	// QueueSize bounds the in-memory ingest queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// DefaultAgendaDays is the horizon for GET /agenda without ?days.
	DefaultAgendaDays int `koanf:"default_agenda_days"`

	// MaxLimit caps client-supplied limit and days parameters.
	MaxLimit int `koanf:"max_limit"`

	// FeedRefreshCron schedules feed re-ingestion, in robfig/cron
	// syntax (e.g. "@every 30m").
	FeedRefreshCron string `koanf:"feed_refresh_cron"`

	// FeedHorizonDays bounds recurrence expansion: occurrences are
	// materialized this many days into the future (and 1/4 as far into
	// the past for still-visible recent events).
	FeedHorizonDays int `koanf:"feed_horizon_days"`

	// Feeds lists the subscribed ICS sources.
	Feeds []Feed `koanf:"feeds"`
}

// New returns the default configuration. Context is accepted first to
// satisfy the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		Timezone:          "Local",
		QueueSize:         10_000,
		WorkerCount:       runtime.NumCPU(),
		DedupeSize:        50_000,
		DefaultAgendaDays: 7,
		MaxLimit:          100,
		FeedRefreshCron:   "@every 30m",
		FeedHorizonDays:   120,
	}
}

// Location resolves the configured timezone, falling back to the host
// zone when the name is empty or "Local".
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
