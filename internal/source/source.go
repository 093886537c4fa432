// Package source turns a city name into a non-empty listing of events.
//
// Live strategies are consulted in order; when none yields a usable event the
// lookup resolves to the demo listing from Fallback instead of an error.
package source

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pfrederiksen/city-events/internal/event"
	"github.com/pfrederiksen/city-events/internal/logger"
	"github.com/pfrederiksen/city-events/internal/metrics"
	"github.com/pfrederiksen/city-events/internal/scraper"
)

// Name is the Source recorded on fallback events
const Name = "fallback"

const (
	DefaultCity      = "Detroit"
	DefaultMaxEvents = 10
	DefaultMinLive   = 5
)

// ErrNoEvents is recorded on a fallback Result when every strategy succeeded
// but none produced a usable listing.
var ErrNoEvents = errors.New("no usable events found")

// Options configures an EventSource. Zero values pick the defaults above.
type Options struct {
	DefaultCity string
	MaxEvents   int
	// MinLive stops consulting further strategies once this many unique events are found
	MinLive int
	Now     func() time.Time
	Metrics *metrics.Recorder
}

// Result is either a live listing or the fallback listing for City.
// Err is only set when Fallback is true and explains why live lookup gave up.
type Result struct {
	City     string
	Events   []event.Event
	Fallback bool
	Err      error
}

// EventSource looks up events for a city
type EventSource struct {
	strategies []scraper.Strategy
	opts       Options
}

// New creates an EventSource over strategies, consulted in order
func New(strategies []scraper.Strategy, opts Options) *EventSource {
	if strings.TrimSpace(opts.DefaultCity) == "" {
		opts.DefaultCity = DefaultCity
	}
	if opts.MaxEvents <= 0 {
		opts.MaxEvents = DefaultMaxEvents
	}
	if opts.MinLive <= 0 {
		opts.MinLive = DefaultMinLive
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &EventSource{strategies: strategies, opts: opts}
}

// City returns the city a lookup for city would use
func (s *EventSource) City(city string) string {
	city = strings.Join(strings.Fields(city), " ")
	if city == "" {
		return s.opts.DefaultCity
	}
	return city
}

// Lookup fetches live events for city, falling back to demo events.
// Each strategy is tried at most once and errors are never retried.
func (s *EventSource) Lookup(ctx context.Context, city string) Result {
	city = s.City(city)
	now := s.opts.Now()

	var (
		found   []event.Event
		lastErr error
	)
	for _, strategy := range s.strategies {
		if len(found) >= s.opts.MinLive {
			break
		}

		events, err := s.fetch(ctx, strategy, city)
		if err != nil {
			lastErr = err
			continue
		}
		found = event.Dedupe(append(found, events...))
	}

	if len(found) > s.opts.MaxEvents {
		found = found[:s.opts.MaxEvents]
	}

	if len(found) == 0 {
		if lastErr == nil {
			lastErr = ErrNoEvents
		}
		s.opts.Metrics.IncrFallback()
		logger.Warn("Using demo events", logger.Fields{"city": city}, lastErr)
		return Result{City: city, Events: Fallback(city, now), Fallback: true, Err: lastErr}
	}

	logger.Info("Found live events", logger.Fields{"city": city, "count": len(found)})
	return Result{City: city, Events: found}
}

// Fetch returns the events for city. It never fails and never returns an empty slice.
func (s *EventSource) Fetch(ctx context.Context, city string) []event.Event {
	return s.Lookup(ctx, city).Events
}

// fetch runs one strategy and keeps only events with a title
func (s *EventSource) fetch(ctx context.Context, strategy scraper.Strategy, city string) ([]event.Event, error) {
	start := time.Now()
	events, err := strategy.Fetch(ctx, city)
	elapsed := time.Since(start)

	fields := logger.Fields{"source": strategy.Name(), "city": city, "duration_ms": elapsed.Milliseconds()}
	if err != nil {
		s.opts.Metrics.ObserveSource(strategy.Name(), metrics.StatusError, elapsed)
		logger.Warn("Source lookup failed", fields, err)
		return nil, err
	}

	valid := make([]event.Event, 0, len(events))
	for _, evt := range events {
		if evt.Valid() {
			valid = append(valid, evt)
		}
	}

	status := metrics.StatusOK
	if len(valid) == 0 {
		status = metrics.StatusEmpty
	}
	s.opts.Metrics.ObserveSource(strategy.Name(), status, elapsed)

	fields["count"] = len(valid)
	logger.Debug("Source lookup finished", fields)
	return valid, nil
}
