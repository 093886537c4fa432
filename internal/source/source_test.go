package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/city-events/internal/event"
	"github.com/pfrederiksen/city-events/internal/metrics"
	"github.com/pfrederiksen/city-events/internal/scraper"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// stubStrategy returns canned events and records the cities it was asked about
type stubStrategy struct {
	name   string
	events []event.Event
	err    error
	cities []string
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Fetch(_ context.Context, city string) ([]event.Event, error) {
	s.cities = append(s.cities, city)
	return s.events, s.err
}

func titled(titles ...string) []event.Event {
	events := make([]event.Event, 0, len(titles))
	for _, t := range titles {
		events = append(events, event.Event{Title: t, When: "Sat"})
	}
	return events
}

func newSource(strategies ...scraper.Strategy) *EventSource {
	return New(strategies, Options{Now: func() time.Time { return fixedNow }})
}

func TestLookup_Live(t *testing.T) {
	stub := &stubStrategy{name: "stub", events: titled("Motown Jazz Night", "", "Riverwalk 5K")}

	res := newSource(stub).Lookup(context.Background(), "  Detroit ")

	assert.False(t, res.Fallback)
	assert.NoError(t, res.Err)
	assert.Equal(t, "Detroit", res.City)
	assert.Equal(t, []string{"Detroit"}, stub.cities)
	require.Len(t, res.Events, 2, "events without a title are dropped")
	assert.Equal(t, "Motown Jazz Night", res.Events[0].Title)
	assert.Equal(t, "Riverwalk 5K", res.Events[1].Title)
}

func TestLookup_EmptyCityUsesDefault(t *testing.T) {
	for _, city := range []string{"", "   ", "\t\n"} {
		stub := &stubStrategy{name: "stub", events: titled("Something")}
		src := New([]scraper.Strategy{stub}, Options{DefaultCity: "Chicago"})

		res := src.Lookup(context.Background(), city)
		assert.Equal(t, "Chicago", res.City)
		assert.Equal(t, []string{"Chicago"}, stub.cities)
	}
}

func TestLookup_FallbackOnError(t *testing.T) {
	boom := errors.New("connection refused")
	stub := &stubStrategy{name: "stub", err: boom}

	res := newSource(stub).Lookup(context.Background(), "Nowhereville")

	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, Fallback("Nowhereville", fixedNow), res.Events)
}

func TestLookup_FallbackOnEmpty(t *testing.T) {
	stub := &stubStrategy{name: "stub", events: titled("", "  ")}

	res := newSource(stub).Lookup(context.Background(), "Nowhereville")

	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.Err, ErrNoEvents)
	assert.Equal(t, Fallback("Nowhereville", fixedNow), res.Events)
}

func TestLookup_NoStrategies(t *testing.T) {
	res := newSource().Lookup(context.Background(), "Detroit")
	assert.True(t, res.Fallback)
	assert.Len(t, res.Events, 5)
}

func TestFetch_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachable := server.URL
	server.Close()

	src := New([]scraper.Strategy{scraper.NewEventbrite(unreachable, 500*time.Millisecond)}, Options{
		Now: func() time.Time { return fixedNow },
	})

	events := src.Fetch(context.Background(), "Nowhereville")
	assert.Equal(t, Fallback("Nowhereville", fixedNow), events)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	src := New([]scraper.Strategy{scraper.NewEventbrite(server.URL, time.Second)}, Options{
		Now: func() time.Time { return fixedNow },
	})

	res := src.Lookup(context.Background(), "Detroit")
	assert.True(t, res.Fallback)
	assert.Equal(t, 1, requests, "a failed GET is not retried")
	assert.Contains(t, res.Err.Error(), "503")
}

func TestFetch_NeverEmpty(t *testing.T) {
	cities := []string{"", "Detroit", "New York!", "São Paulo", "a/b?c=d&e", "   "}
	src := newSource(&stubStrategy{name: "stub", err: errors.New("down")})

	for _, city := range cities {
		events := src.Fetch(context.Background(), city)
		require.NotEmpty(t, events, "city %q", city)
		for _, evt := range events {
			assert.True(t, evt.Valid(), "city %q produced an event without a title", city)
		}
	}
}

func TestLookup_DedupeAndCap(t *testing.T) {
	var titles []string
	for i := 0; i < 8; i++ {
		titles = append(titles, fmt.Sprintf("Show %d", i))
	}
	first := &stubStrategy{name: "first", events: titled(titles[:4]...)}
	second := &stubStrategy{name: "second", events: titled(append([]string{"show 0", "SHOW 1"}, titles[4:]...)...)}

	src := New([]scraper.Strategy{first, second}, Options{MaxEvents: 6, MinLive: 5})
	res := src.Lookup(context.Background(), "Detroit")

	require.Len(t, res.Events, 6)
	for i, evt := range res.Events {
		assert.Equal(t, fmt.Sprintf("Show %d", i), evt.Title)
	}
}

func TestLookup_StopsAtMinLive(t *testing.T) {
	first := &stubStrategy{name: "first", events: titled("A", "B", "C", "D", "E")}
	second := &stubStrategy{name: "second", events: titled("F")}

	res := newSource(first, second).Lookup(context.Background(), "Detroit")

	assert.Len(t, res.Events, 5)
	assert.Empty(t, second.cities, "second strategy must not be consulted once MinLive is reached")
}

func TestLookup_ConsultsNextStrategyWhenShort(t *testing.T) {
	first := &stubStrategy{name: "first", err: errors.New("down")}
	second := &stubStrategy{name: "second", events: titled("F")}

	res := newSource(first, second).Lookup(context.Background(), "Detroit")

	assert.False(t, res.Fallback)
	assert.NoError(t, res.Err)
	assert.Equal(t, []string{"Detroit"}, second.cities)
	assert.Equal(t, "F", res.Events[0].Title)
}

func TestLookup_Metrics(t *testing.T) {
	rec := metrics.New()
	src := New([]scraper.Strategy{
		&stubStrategy{name: "broken", err: errors.New("down")},
		&stubStrategy{name: "empty"},
	}, Options{Metrics: rec})

	src.Lookup(context.Background(), "Detroit")

	expected := `
# HELP city_events_fallback_total Number of lookups answered with demo events
# TYPE city_events_fallback_total counter
city_events_fallback_total 1
`
	require.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "city_events_fallback_total"))
	count, err := testutil.GatherAndCount(rec.Registry(), "city_events_source_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFallback(t *testing.T) {
	events := Fallback("New York", fixedNow)
	require.Len(t, events, 5)

	categories := make(map[string]bool)
	for _, evt := range events {
		assert.Contains(t, evt.Title, " - New York")
		assert.NotEmpty(t, evt.When)
		assert.NotEmpty(t, evt.Location)
		assert.NotEmpty(t, evt.Description)
		assert.Equal(t, "fallback", evt.Source)
		require.NotNil(t, evt.StartsAt)
		assert.True(t, evt.StartsAt.After(fixedNow))

		parsed, ok := event.ParseWhen(evt.When, fixedNow)
		require.True(t, ok, "When %q must be parseable", evt.When)
		assert.True(t, parsed.Equal(*evt.StartsAt))

		categories[evt.Category] = true
	}
	for _, c := range []string{event.CategoryMusic, event.CategoryFood, event.CategoryArts, event.CategoryOutdoors} {
		assert.True(t, categories[c], "missing category %s", c)
	}

	art := events[0]
	assert.Equal(t, "Community Art Festival - New York", art.Title)
	assert.Equal(t, "Wednesday, June 3, 2026 at 2:00 PM", art.When)
	assert.Equal(t, "Downtown New York", art.Location)
	assert.Equal(t, "https://www.eventbrite.com/d/new-york/events/", art.URL)
	assert.Equal(t, "https://www.meetup.com/find/?keywords=tech&location=New+York", events[4].URL)
}

func TestFallback_Deterministic(t *testing.T) {
	later := fixedNow.Add(6 * time.Hour)
	assert.Equal(t, Fallback("Detroit", fixedNow), Fallback("Detroit", later), "same calendar day gives the same listing")
	assert.NotEqual(t, Fallback("Detroit", fixedNow), Fallback("Toledo", fixedNow))
}
