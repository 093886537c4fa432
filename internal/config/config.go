// Package config loads city-events settings.
//
// Settings are layered: built-in defaults, then an optional YAML file, then a .env
// file in the working directory (if present), then process environment variables.
// Later layers win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Known scraping strategy names
const (
	SourceEventbrite = "eventbrite"
	SourceMeetup     = "meetup"
)

// Config holds every recognized option
type Config struct {
	DefaultCity       string        `yaml:"default_city"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	DigestSize        int           `yaml:"digest_size"`
	MaxEvents         int           `yaml:"max_events"`
	ListenAddr        string        `yaml:"listen_addr"`
	LogLevel          string        `yaml:"log_level"`
	Sources           []string      `yaml:"sources"`
	EventbriteBaseURL string        `yaml:"eventbrite_base_url"`
	MeetupBaseURL     string        `yaml:"meetup_base_url"`
	PDFFont           string        `yaml:"pdf_font"` // TrueType file for reports; empty uses the Go fonts
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		DefaultCity:       "Detroit",
		RequestTimeout:    10 * time.Second,
		DigestSize:        3,
		MaxEvents:         10,
		ListenAddr:        ":5000",
		LogLevel:          "info",
		Sources:           []string{SourceEventbrite},
		EventbriteBaseURL: "https://www.eventbrite.com",
		MeetupBaseURL:     "https://www.meetup.com",
	}
}

// Load builds the configuration. path may be empty to skip the YAML layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.DefaultCity = getEnvOrDefault("DEFAULT_CITY", c.DefaultCity)
	c.ListenAddr = getEnvOrDefault("LISTEN_ADDR", c.ListenAddr)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.EventbriteBaseURL = getEnvOrDefault("EVENTBRITE_BASE_URL", c.EventbriteBaseURL)
	c.MeetupBaseURL = getEnvOrDefault("MEETUP_BASE_URL", c.MeetupBaseURL)
	c.PDFFont = getEnvOrDefault("PDF_FONT_FILE", c.PDFFont)

	if v := getEnvOrDefault("REQUEST_TIMEOUT_SECONDS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS: %w", err)
		}
		c.RequestTimeout = time.Duration(n) * time.Second
	}

	if v := getEnvOrDefault("DIGEST_SIZE", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DIGEST_SIZE: %w", err)
		}
		c.DigestSize = n
	}

	if v := getEnvOrDefault("MAX_EVENTS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_EVENTS: %w", err)
		}
		c.MaxEvents = n
	}

	if v := getEnvOrDefault("EVENT_SOURCES", ""); v != "" {
		var sources []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				sources = append(sources, s)
			}
		}
		c.Sources = sources
	}

	return nil
}

// Validate checks option ranges and source names
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DefaultCity) == "" {
		return fmt.Errorf("default city must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than zero")
	}
	if c.DigestSize <= 0 {
		return fmt.Errorf("digest size must be greater than zero")
	}
	if c.MaxEvents <= 0 {
		return fmt.Errorf("max events must be greater than zero")
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one event source is required")
	}
	for _, s := range c.Sources {
		if s != SourceEventbrite && s != SourceMeetup {
			return fmt.Errorf("unknown event source: %s", s)
		}
	}
	return nil
}

// getEnvOrDefault returns the trimmed environment value, or defaultValue when unset or blank
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
