// Package server exposes event search, filtering and document downloads over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pfrederiksen/city-events/internal/logger"
	"github.com/pfrederiksen/city-events/internal/metrics"
	"github.com/pfrederiksen/city-events/internal/report"
	"github.com/pfrederiksen/city-events/internal/source"
	"github.com/sirupsen/logrus"
)

const (
	bodyLimit       = "2M"
	shutdownTimeout = 10 * time.Second
)

// EventLookup is the part of source.EventSource the handlers depend on
type EventLookup interface {
	City(city string) string
	Lookup(ctx context.Context, city string) source.Result
}

// Options configures a Server. All fields are optional.
type Options struct {
	DigestSize int
	Builder    report.Builder
	Metrics    *metrics.Recorder
	Logger     *logger.Logger
	Now        func() time.Time
}

// Server owns the echo instance and the handler dependencies
type Server struct {
	e          *echo.Echo
	source     EventLookup
	builder    report.Builder
	metrics    *metrics.Recorder
	log        *logger.Logger
	digestSize int
	now        func() time.Time
}

// New creates a Server with every route registered
func New(src EventLookup, opts Options) *Server {
	s := &Server{
		source:     src,
		builder:    opts.Builder,
		metrics:    opts.Metrics,
		log:        opts.Logger,
		digestSize: opts.DigestSize,
		now:        opts.Now,
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.builder.Now == nil {
		s.builder.Now = s.now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(requestLogger(s.log.Logrus()))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/metrics" },
	}))

	s.register(e)
	s.e = e
	return s
}

func (s *Server) register(e *echo.Echo) {
	e.GET("/search", s.search)
	e.POST("/search", s.search)
	e.GET("/download-pdf", s.downloadPDF)
	e.POST("/download-pdf", s.downloadPDF)
	e.GET("/download-ics", s.downloadICS)
	e.POST("/download-ics", s.downloadICS)
	e.POST("/filter-events", s.filterEvents)
	e.GET("/healthz", healthz)
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.e
}

// Run serves on addr until ctx is done, then shuts down gracefully.
// A bind failure is returned before anything is served.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.e.Listener = ln
	s.log.Info("Server listening", logger.Fields{"addr": ln.Addr().String()})

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("Shutting down server", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.e.Shutdown(shutdownCtx)
	}
}

func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
