package scraper

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/city-events/internal/event"
)

const (
	EventbriteURL  = "https://www.eventbrite.com"
	eventbriteName = "eventbrite"
	eventbriteMax  = 8
)

var (
	eventbriteCards = []string{
		`article[data-testid="event-card"]`,
		`div[data-testid="event-card"]`,
		".search-event-card",
		".event-card",
		"[data-event-id]",
	}
	eventbriteTitles = []string{
		"h3 a",
		"h2 a",
		"h1 a",
		".event-title a",
		`[data-testid="event-title"]`,
		`a[data-testid="event-title-link"]`,
	}
	eventbriteDates = []string{
		"time",
		`[data-testid="event-datetime"]`,
		".event-date",
		".date-time",
		`span[data-testid="event-start-date"]`,
	}
	eventbriteLocations = []string{
		`[data-testid="event-location"]`,
		".event-location",
		".venue-name",
		`span[data-testid="event-venue"]`,
	}
	eventbriteDescriptions = []string{
		".event-description",
		".summary",
		"p",
		`[data-testid="event-summary"]`,
	}
)

// Eventbrite scrapes the city discovery page of eventbrite.com
type Eventbrite struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// NewEventbrite creates an Eventbrite strategy. An empty baseURL uses EventbriteURL.
func NewEventbrite(baseURL string, timeout time.Duration) *Eventbrite {
	if baseURL == "" {
		baseURL = EventbriteURL
	}
	return &Eventbrite{
		client:  newClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Name identifies the strategy in logs, metrics and event sources
func (s *Eventbrite) Name() string {
	return eventbriteName
}

// URL returns the discovery page for city, e.g. /d/new-york/events/
func (s *Eventbrite) URL(city string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(city)), "-")
	return s.baseURL + "/d/" + url.PathEscape(slug) + "/events/"
}

// Fetch downloads and parses the discovery page for city
func (s *Eventbrite) Fetch(ctx context.Context, city string) ([]event.Event, error) {
	body, err := fetchPage(ctx, s.client, s.URL(city))
	if err != nil {
		return nil, err
	}
	defer body.Close() // nolint:errcheck

	return s.parseEvents(body, city)
}

// parseEvents extracts events from a discovery page.
// The first card selector that matches anything wins; cards without a title are skipped.
func (s *Eventbrite) parseEvents(r io.Reader, city string) ([]event.Event, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, err
	}

	var cards *goquery.Selection
	for _, sel := range eventbriteCards {
		if found := doc.Find(sel); found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return []event.Event{}, nil
	}

	now := s.now()
	events := make([]event.Event, 0, eventbriteMax)
	for i := 0; i < cards.Length() && i < eventbriteMax; i++ {
		card := cards.Eq(i)

		titleSel := first(card, eventbriteTitles)
		if titleSel == nil {
			continue
		}
		title := text(titleSel)
		if title == "" {
			continue
		}

		when := firstText(card, eventbriteDates, func(t string) bool {
			return !strings.EqualFold(t, "Date/Time TBA")
		})
		location := event.NormalizeLocation(firstText(card, eventbriteLocations, anyText), city)
		desc := description(firstText(card, eventbriteDescriptions, longEnough))

		events = append(events, event.New(title, when, location, desc, link(titleSel, s.baseURL), eventbriteName, now))
	}

	return events, nil
}
