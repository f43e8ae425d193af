// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/orangehat/meetcal/internal/adapters/feed"
	eventqueue "github.com/orangehat/meetcal/internal/adapters/mq/queue"
	workerpool "github.com/orangehat/meetcal/internal/adapters/mq/worker"
	"github.com/orangehat/meetcal/internal/adapters/repository"
	"github.com/orangehat/meetcal/internal/domain/bucket"
	"github.com/orangehat/meetcal/internal/domain/conflict"
	"github.com/orangehat/meetcal/internal/domain/dedupe"
	"github.com/orangehat/meetcal/internal/domain/filter"
	"github.com/orangehat/meetcal/internal/domain/grid"
	"github.com/orangehat/meetcal/internal/domain/model"
	"github.com/orangehat/meetcal/internal/domain/relevance"
	"github.com/orangehat/meetcal/pkg/logger"
	"github.com/orangehat/meetcal/pkg/metrics"
)

// Shutdown grace period for draining workers.
const stopTimeout = 10 * time.Second

// Service implements the API dependencies for the event directory.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	deduper  dedupe.Deduper
	queue    eventqueue.Queue
	pool     *workerpool.Pool
	fetcher  *feed.Fetcher
	selector *relevance.Selector
	cron     *cron.Cron

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	agendaDays      int
	feedHorizonDays int
	feedRefreshSpec string
	sources         []feed.Source
	location        *time.Location
	clock           func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the ingest queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithAgendaDays sets the default horizon for the agenda view.
func WithAgendaDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.agendaDays = days
		}
	}
}

// WithFeeds sets the ICS sources to ingest.
func WithFeeds(sources []feed.Source) Option {
	return func(s *Service) {
		s.sources = sources
	}
}

// WithFeedRefreshSpec sets the cron schedule for feed re-ingestion.
func WithFeedRefreshSpec(spec string) Option {
	return func(s *Service) {
		if spec != "" {
			s.feedRefreshSpec = spec
		}
	}
}

// WithFeedHorizonDays bounds how far recurrence expansion reaches.
func WithFeedHorizonDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.feedHorizonDays = days
		}
	}
}

// WithLocation sets the timezone calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock replaces the wall clock for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     4,
		queueSize:       10_000,
		dedupeSize:      50_000,
		agendaDays:      7,
		feedHorizonDays: 120,
		feedRefreshSpec: "@every 30m",
		location:        time.Local,
		clock:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting event directory service...")

	s.store = repository.NewCalStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.selector = relevance.NewSelector(
		relevance.WithClock(s.clock),
		relevance.WithDefaultWindow(s.agendaDays),
	)
	s.pool = workerpool.NewPool(s.queue, s.store, s.workerCount,
		workerpool.WithLogger(s.logger.Named("ingest")),
	)
	s.pool.Start(ctx)

	if len(s.sources) > 0 {
		s.fetcher = feed.NewFetcher(
			feed.WithFetchLogger(s.logger.Named("feed")),
		)
		s.cron = cron.New()
		if _, err := s.cron.AddFunc(s.feedRefreshSpec, func() {
			s.RefreshFeeds(context.Background())
		}); err != nil {
			return err
		}
		s.cron.Start()

		// First ingest happens off the startup path so a slow feed
		// cannot delay serving.
		go s.RefreshFeeds(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "event directory service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("feeds", len(s.sources)),
		logger.String("timezone", s.location.String()),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping event directory service...")

	if s.cron != nil {
		s.cron.Stop()
	}

	// Closing the queue lets the workers drain what is left.
	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		waitCtx, cancel := context.WithTimeout(ctx, stopTimeout)
		defer cancel()
		if err := s.pool.Wait(waitCtx); err != nil {
			s.logger.Warn(ctx, "ingest workers did not drain in time", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "event directory service stopped")
}

// SeenAndRecord atomically checks whether an event id was seen and
// records it if not.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordEventDuplicate()
	}
	return seen
}

// Unrecord removes an event ID from the seen list so it can be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the number of IDs in the idempotency cache.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Submit pushes an event into the ingest pipeline. Returns false on
// backpressure.
func (s *Service) Submit(ctx context.Context, e model.Event) bool {
	ok := s.queue.Enqueue(ctx, e)
	if !ok {
		s.logger.Warn(ctx, "event rejected by queue",
			logger.String("eventID", e.ID),
			logger.Int("queueLength", s.queue.Len(ctx)),
		)
	}
	return ok
}

// Calendar runs the filter -> window -> grid -> bucket pipeline for one
// view. A zero anchor means "around today".
func (s *Service) Calendar(ctx context.Context, view model.View, anchor time.Time, crit filter.Criteria) ([]model.CalendarDay, error) {
	started := time.Now()
	defer func() {
		metrics.RecordCalendarBuildDuration(float64(time.Since(started).Milliseconds()))
	}()
	metrics.RecordCalendarBuild(string(view))

	now := s.clock().In(s.location)
	if anchor.IsZero() {
		anchor = now
	} else {
		// Re-anchor the parsed date into the service timezone so day
		// boundaries line up with the configured zone.
		anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, s.location)
	}

	var dates []time.Time
	switch view {
	case model.ViewWeek:
		dates = grid.WeekGrid(anchor)
	case model.ViewThreeWeek:
		dates = grid.ThreeWeekGrid(anchor)
	case model.ViewWeekend:
		dates = grid.WeekendGrid(anchor)
	default:
		dates = grid.MonthGrid(anchor)
	}
	if len(dates) == 0 {
		return []model.CalendarDay{}, nil
	}

	events, err := s.store.Window(ctx, grid.DayStart(dates[0]), grid.DayEnd(dates[len(dates)-1]))
	if err != nil {
		return nil, err
	}
	return bucket.Build(dates, filter.Apply(events, crit), now), nil
}

// Events returns the filtered flat event list in start order.
func (s *Service) Events(ctx context.Context, crit filter.Criteria) ([]model.Event, error) {
	events, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(events, crit), nil
}

// Upcoming returns events starting within days of now; days <= 0 uses
// the configured agenda window.
func (s *Service) Upcoming(ctx context.Context, days int) ([]model.Event, error) {
	events, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.selector.Upcoming(events, days), nil
}

// Popular ranks events by attendance ratio.
func (s *Service) Popular(ctx context.Context, limit int) ([]model.Event, error) {
	events, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return relevance.PopularByAttendance(events, limit), nil
}

// Conflicts returns all pairwise overlapping events.
func (s *Service) Conflicts(ctx context.Context) ([]conflict.Pair, error) {
	events, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return conflict.AllConflicts(events), nil
}

// FilterChoices returns the distinct categories and locations observed
// across the stored events, in first-seen (start) order.
func (s *Service) FilterChoices(ctx context.Context) ([]string, []string, error) {
	events, err := s.store.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	return filter.UniqueCategories(events), filter.UniqueLocations(events), nil
}

// RefreshFeeds ingests every configured ICS source. Per-source failures
// are logged and skipped so one broken feed cannot block the rest.
func (s *Service) RefreshFeeds(ctx context.Context) {
	if s.fetcher == nil || len(s.sources) == 0 {
		return
	}

	now := s.clock().In(s.location)
	win := feed.ExpandWindow{
		// Keep a quarter of the horizon behind now so recently finished
		// events stay browsable.
		Start:    now.AddDate(0, 0, -s.feedHorizonDays/4),
		End:      now.AddDate(0, 0, s.feedHorizonDays),
		Location: s.location,
	}

	for _, src := range s.sources {
		body, cached, err := s.fetcher.Fetch(ctx, src)
		if err != nil {
			s.logger.Error(ctx, "feed fetch failed", logger.String("id", src.ID), logger.Error(err))
			continue
		}

		raws, skipped, err := feed.Parse(body)
		if err != nil {
			s.logger.Error(ctx, "feed parse failed", logger.String("id", src.ID), logger.Error(err))
			continue
		}
		if skipped > 0 {
			s.logger.Warn(ctx, "feed entries skipped", logger.String("id", src.ID), logger.Int("skipped", skipped))
		}

		events := feed.Expand(src, raws, win)
		accepted := 0
		for _, e := range events {
			if s.queue.Enqueue(ctx, e) {
				accepted++
			}
		}
		s.logger.Info(ctx, "feed ingested",
			logger.String("id", src.ID),
			logger.Int("events", accepted),
			logger.Any("fromCache", cached),
		)
	}
	metrics.RecordFeedRefresh()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"feeds":       len(s.sources),
		"timezone":    s.location.String(),
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["totalEvents"] = s.store.Count(ctx)
		stats["dedupeEntries"] = s.deduper.Size()
	}
	return stats
}
