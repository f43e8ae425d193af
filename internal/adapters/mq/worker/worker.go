// Package worker drains the ingest queue, normalizes submitted events,
// and writes them into the event store.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/orangehat/meetcal/internal/domain/model"
	"github.com/orangehat/meetcal/pkg/logger"
	"github.com/orangehat/meetcal/pkg/metrics"
)

// Event is what workers read off the queue.
type Event = model.Event

// Sink receives normalized events.
type Sink interface {
	Put(ctx context.Context, e Event) error
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Pool runs a fixed set of ingest workers over one queue.
type Pool struct {
	queue Queue
	sink  Sink
	count int

	done chan struct{}

	logger logger.Logger
}

// NewPool creates a worker pool with configuration options.
func NewPool(q Queue, sink Sink, count int, opts ...Option) *Pool {
	p := &Pool{
		queue: q,
		sink:  sink,
		count: count,
		done:  make(chan struct{}),
	}
	if p.count <= 0 {
		p.count = defaultWorkerCount
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("ingest")
	}
	return p
}

// Start launches the workers. They exit when ctx is canceled or the
// queue's channel closes; Wait blocks until then.
func (p *Pool) Start(ctx context.Context) {
	events := p.queue.Dequeue(ctx)
	remaining := make(chan struct{}, p.count)

	for i := 0; i < p.count; i++ {
		name := "worker-" + strconv.Itoa(i)
		go func() {
			defer func() { remaining <- struct{}{} }()
			p.run(ctx, name, events)
		}()
	}

	go func() {
		for i := 0; i < p.count; i++ {
			<-remaining
		}
		close(p.done)
	}()

	metrics.UpdateWorkerCount(p.count)
	p.logger.Info(ctx, "ingest workers started", logger.Int("count", p.count))
}

// Wait blocks until every worker has exited or ctx expires.
func (p *Pool) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker shutdown timed out: %w", ctx.Err())
	}
}

func (p *Pool) run(ctx context.Context, name string, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := p.ingest(ctx, e); err != nil {
				metrics.RecordIngestError()
				p.logger.Error(ctx, "event ingest failed",
					logger.String("worker", name),
					logger.String("eventID", e.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// ingest normalizes one event and stores it.
func (p *Pool) ingest(ctx context.Context, e Event) error {
	start := time.Now()
	defer func() {
		metrics.RecordIngestLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := p.sink.Put(ctx, Normalize(e)); err != nil {
		return fmt.Errorf("store put failed for event %s: %w", e.ID, err)
	}
	metrics.RecordEventIngested()
	return nil
}

// Normalize trims text fields, drops blank speaker names, maps the
// status onto a recognized value, and collapses a missing or inverted
// end onto the start so downstream code only sees well-formed records.
func Normalize(e Event) Event {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Category = strings.TrimSpace(e.Category)
	e.Location = strings.TrimSpace(e.Location)
	e.Status = model.ParseStatus(string(e.Status))

	speakers := make([]string, 0, len(e.Speakers))
	for _, s := range e.Speakers {
		if s = strings.TrimSpace(s); s != "" {
			speakers = append(speakers, s)
		}
	}
	e.Speakers = speakers

	e.End = e.EffectiveEnd()

	if e.Attendees < 0 {
		e.Attendees = 0
	}
	if e.Capacity < 0 {
		e.Capacity = 0
	}
	return e
}
