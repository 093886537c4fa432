package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventbrite_Fetch(t *testing.T) {
	html := loadFixture(t, "eventbrite_detroit.html")

	tests := []struct {
		name       string
		statusCode int
		wantErr    string
		wantCount  int
	}{
		{name: "successful fetch", statusCode: http.StatusOK, wantCount: 3},
		{name: "404 not found", statusCode: http.StatusNotFound, wantErr: "unexpected status code: 404"},
		{name: "500 server error", statusCode: http.StatusInternalServerError, wantErr: "unexpected status code: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				assert.Equal(t, "/d/detroit/events/", r.URL.Path)
				assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
				w.WriteHeader(tt.statusCode)
				if tt.statusCode == http.StatusOK {
					w.Write([]byte(html)) // nolint:errcheck
				}
			}))
			defer server.Close()

			s := NewEventbrite(server.URL, time.Second)
			events, err := s.Fetch(context.Background(), "Detroit")

			assert.Equal(t, 1, requests, "exactly one GET per fetch, no retries")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, events, tt.wantCount)
			assert.Equal(t, server.URL+"/e/motown-jazz-night-tickets-101", events[0].URL)
		})
	}
}

func TestEventbrite_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	s := NewEventbrite(server.URL, 50*time.Millisecond)
	_, err := s.Fetch(context.Background(), "Detroit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching page")
}

func TestEventbrite_Fetch_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEventbrite(server.URL, time.Second).Fetch(ctx, "Detroit")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeetup_Fetch(t *testing.T) {
	html := loadFixture(t, "meetup_detroit.html")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/find/", r.URL.Path)
		assert.Equal(t, "Detroit", r.URL.Query().Get("location"))
		w.Write([]byte(html)) // nolint:errcheck
	}))
	defer server.Close()

	events, err := NewMeetup(server.URL, time.Second).Fetch(context.Background(), "Detroit")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Detroit Go Hack Night", events[0].Title)
}
