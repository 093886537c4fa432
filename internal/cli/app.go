package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/city-events/internal/config"
	"github.com/pfrederiksen/city-events/internal/logger"
	"github.com/pfrederiksen/city-events/internal/metrics"
	"github.com/pfrederiksen/city-events/internal/report"
	"github.com/pfrederiksen/city-events/internal/scraper"
	"github.com/pfrederiksen/city-events/internal/source"
)

// app bundles what every subcommand needs
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Recorder
	source  *source.EventSource
	font    *report.Font
}

// newApp loads configuration and wires logging, metrics and the event source.
// Logs go to logOut so stdout stays reserved for command output.
func newApp(configPath string, verbose bool, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, logOut)
	logger.SetDefault(log)

	var font *report.Font
	if cfg.PDFFont != "" {
		f, err := report.LoadFont(cfg.PDFFont)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		font = &f
	}

	rec := metrics.New()
	strategies, err := newStrategies(cfg)
	if err != nil {
		return nil, err
	}

	src := source.New(strategies, source.Options{
		DefaultCity: cfg.DefaultCity,
		MaxEvents:   cfg.MaxEvents,
		Metrics:     rec,
	})

	log.Debug("Configuration loaded", logger.Fields{
		"default_city": cfg.DefaultCity,
		"sources":      cfg.Sources,
		"timeout":      cfg.RequestTimeout.String(),
	})

	return &app{cfg: cfg, log: log, metrics: rec, source: src, font: font}, nil
}

// builder returns a report builder using the configured font. A nil now uses the clock.
func (a *app) builder(now func() time.Time, compress bool) report.Builder {
	return report.Builder{Now: now, Compress: compress, Font: a.font}
}

// newStrategies builds the enabled scraping strategies in configured order
func newStrategies(cfg *config.Config) ([]scraper.Strategy, error) {
	strategies := make([]scraper.Strategy, 0, len(cfg.Sources))
	for _, name := range cfg.Sources {
		switch name {
		case config.SourceEventbrite:
			strategies = append(strategies, scraper.NewEventbrite(cfg.EventbriteBaseURL, cfg.RequestTimeout))
		case config.SourceMeetup:
			strategies = append(strategies, scraper.NewMeetup(cfg.MeetupBaseURL, cfg.RequestTimeout))
		default:
			return nil, fmt.Errorf("unknown event source: %s", name)
		}
	}
	return strategies, nil
}
