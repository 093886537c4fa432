package scraper

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pfrederiksen/city-events/internal/event"
)

const (
	MeetupURL  = "https://www.meetup.com"
	meetupName = "meetup"
	meetupMax  = 6
)

var (
	meetupCardClass     = regexp.MustCompile(`event|card`)
	meetupTitleClass    = regexp.MustCompile(`title|name|event`)
	meetupDateClass     = regexp.MustCompile(`date|time`)
	meetupLocationClass = regexp.MustCompile(`location|venue|address`)
	meetupDescClass     = regexp.MustCompile(`description|summary|excerpt`)
)

// Meetup scrapes the meetup.com find page, matching blocks by class name
type Meetup struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// NewMeetup creates a Meetup strategy. An empty baseURL uses MeetupURL.
func NewMeetup(baseURL string, timeout time.Duration) *Meetup {
	if baseURL == "" {
		baseURL = MeetupURL
	}
	return &Meetup{
		client:  newClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Name identifies the strategy in logs, metrics and event sources
func (s *Meetup) Name() string {
	return meetupName
}

// URL returns the search page for city
func (s *Meetup) URL(city string) string {
	return s.baseURL + "/find/?keywords=&location=" + url.QueryEscape(city)
}

// Fetch downloads and parses the search page for city
func (s *Meetup) Fetch(ctx context.Context, city string) ([]event.Event, error) {
	body, err := fetchPage(ctx, s.client, s.URL(city))
	if err != nil {
		return nil, err
	}
	defer body.Close() // nolint:errcheck

	return s.parseEvents(body, city)
}

// parseEvents extracts events from any div/article whose class mentions an event or card.
// Wrappers and nested blocks repeat a card's title, so duplicates are dropped before
// the per-page limit is applied.
func (s *Meetup) parseEvents(r io.Reader, city string) ([]event.Event, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, err
	}

	now := s.now()
	seen := make(map[string]bool)
	events := make([]event.Event, 0, meetupMax)

	cards := withClass(doc.Find("div, article"), meetupCardClass)
	for i := 0; i < cards.Length() && len(events) < meetupMax; i++ {
		card := cards.Eq(i)

		titleSel := withClass(card.Find("h1, h2, h3, h4, a"), meetupTitleClass).First()
		if titleSel.Length() == 0 {
			titleSel = card.Find("a").First()
		}
		if titleSel.Length() == 0 {
			continue
		}
		title := text(titleSel)
		key := strings.ToLower(title)
		if title == "" || seen[key] {
			continue
		}
		seen[key] = true

		when := text(withClass(card.Find("time, span, div"), meetupDateClass).First())
		location := event.NormalizeLocation(text(withClass(card.Find("span, div"), meetupLocationClass).First()), city)

		desc := text(withClass(card.Find("p, div"), meetupDescClass).First())
		if !longEnough(desc) {
			desc = ""
		}

		events = append(events, event.New(title, when, location, description(desc), link(titleSel, s.baseURL), meetupName, now))
	}

	return events, nil
}
