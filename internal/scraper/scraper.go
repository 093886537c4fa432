package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/city-events/internal/event"
)

const (
	UserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultTimeout = 10 * time.Second

	maxBodySize = 5 << 20
)

// Strategy fetches listings for a city from one site
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, city string) ([]event.Event, error)
}

// newClient returns an HTTP client bounded by timeout
func newClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// fetchPage performs the single GET for a strategy and returns the body for parsing.
// The caller must close the returned reader.
func fetchPage(ctx context.Context, client *http.Client, pageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close() // nolint:errcheck
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, maxBodySize), resp.Body}, nil
}

// parseDocument wraps goquery so strategies share one error message
func parseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// text returns the selection's text with runs of whitespace collapsed
func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// first returns the first element matched by any selector, trying selectors in order
func first(sel *goquery.Selection, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		if found := sel.Find(s).First(); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// firstText returns the first non-empty text accepted by keep, trying selectors in order
func firstText(sel *goquery.Selection, selectors []string, keep func(string) bool) string {
	for _, s := range selectors {
		found := sel.Find(s).First()
		if found.Length() == 0 {
			continue
		}
		if t := text(found); t != "" && keep(t) {
			return t
		}
	}
	return ""
}

// withClass keeps the elements whose class attribute matches re
func withClass(sel *goquery.Selection, re *regexp.Regexp) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return re.MatchString(class)
	})
}

// link returns the href of sel (or of its first descendant anchor) resolved against base
func link(sel *goquery.Selection, base string) string {
	href, ok := sel.Attr("href")
	if !ok || goquery.NodeName(sel) != "a" {
		href, ok = sel.Find("a[href]").First().Attr("href")
	}
	if !ok || strings.TrimSpace(href) == "" {
		return ""
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref.String()
	}
	return b.ResolveReference(ref).String()
}

// description applies the shared "long enough to be real" rule and truncation
func description(s string) string {
	return event.Truncate(s, event.MaxDescriptionLength)
}

func longEnough(s string) bool {
	return len([]rune(s)) > 20
}

func anyText(string) bool { return true }
