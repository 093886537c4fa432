package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pfrederiksen/city-events/internal/calendar"
	"github.com/pfrederiksen/city-events/internal/event"
	"github.com/pfrederiksen/city-events/internal/filter"
	"github.com/pfrederiksen/city-events/internal/logger"
	"github.com/pfrederiksen/city-events/internal/report"
)

const (
	mimePDF      = "application/pdf"
	mimeCalendar = "text/calendar; charset=utf-8"
)

type searchRequest struct {
	City string `json:"city" form:"city" query:"city"`
}

type searchResponse struct {
	City        string        `json:"city"`
	Events      []event.Event `json:"events"`
	Digest      string        `json:"digest"`
	TotalEvents int           `json:"total_events"`
	Fallback    bool          `json:"fallback"`
}

// documentRequest carries a listing the browser already has; when Events is
// empty the city is looked up instead.
type documentRequest struct {
	City   string        `json:"city" form:"city" query:"city"`
	Events []event.Event `json:"events"`
	Digest string        `json:"digest"`
}

type filterRequest struct {
	Events  []event.Event   `json:"events"`
	Filters filter.Criteria `json:"filters"`
}

type filterResponse struct {
	Events []event.Event `json:"events"`
	Total  int           `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	res := s.source.Lookup(c.Request().Context(), req.City)
	return c.JSON(http.StatusOK, searchResponse{
		City:        res.City,
		Events:      res.Events,
		Digest:      report.Summarize(res.Events, s.digestSize),
		TotalEvents: len(res.Events),
		Fallback:    res.Fallback,
	})
}

// listing resolves the city, events and digest for a document download
func (s *Server) listing(c echo.Context) (string, []event.Event, string, error) {
	var req documentRequest
	if err := c.Bind(&req); err != nil {
		return "", nil, "", err
	}

	city := s.source.City(req.City)
	events := req.Events
	if len(events) == 0 && c.Request().Method == http.MethodGet {
		res := s.source.Lookup(c.Request().Context(), city)
		city, events = res.City, res.Events
	}

	digest := req.Digest
	if digest == "" {
		digest = report.Summarize(events, s.digestSize)
	}
	return city, events, digest, nil
}

func (s *Server) downloadPDF(c echo.Context) error {
	city, events, digest, err := s.listing(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	pdf, err := s.builder.Render(city, events, digest)
	s.metrics.ObserveDocument("pdf", err)
	if err != nil {
		s.log.Error("Failed to generate document", logger.Fields{"city": city, "events": len(events)}, err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to generate document"})
	}

	attach(c, report.Filename(city, s.now(), "pdf"))
	return c.Blob(http.StatusOK, mimePDF, pdf)
}

func (s *Server) downloadICS(c echo.Context) error {
	city, events, _, err := s.listing(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if len(events) == 0 {
		s.metrics.ObserveDocument("ics", fmt.Errorf("no events"))
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "no events to export"})
	}

	ics := calendar.GenerateBulkICS(events, "Local Events in "+city, s.now())
	s.metrics.ObserveDocument("ics", nil)

	attach(c, report.Filename(city, s.now(), "ics"))
	return c.Blob(http.StatusOK, mimeCalendar, []byte(ics))
}

func (s *Server) filterEvents(c echo.Context) error {
	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	f, err := req.Filters.Filter(s.now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	events := f.Apply(req.Events)
	s.log.Debug("Filtered events", logger.Fields{"filter": f.String(), "events": len(req.Events), "matched": len(events)})
	return c.JSON(http.StatusOK, filterResponse{Events: events, Total: len(events)})
}

func attach(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}
