package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultSourceURL    = "https://sliekerfilm.nl/programma/"
	DefaultCalendarName = "Slieker"
	DefaultTimezone     = "Europe/Amsterdam"
	DefaultUserAgent    = "slieker-ics/1.0 (github.com/pfrederiksen/slieker-ics)"

	RendererHTTP   = "http"
	RendererChrome = "chrome"
)

// Config holds all runtime configuration
type Config struct {
	SourceURL    string
	CalendarName string
	Timezone     string
	Renderer     string
	UserAgent    string
	Workers      int

	PageTimeout   time.Duration
	DetailTimeout time.Duration

	LogLevel string
	LogFile  string
	Format   string
}

// Default returns a Config populated with defaults, ignoring the environment
func Default() Config {
	return Config{
		SourceURL:     DefaultSourceURL,
		CalendarName:  DefaultCalendarName,
		Timezone:      DefaultTimezone,
		Renderer:      RendererHTTP,
		UserAgent:     DefaultUserAgent,
		Workers:       8,
		PageTimeout:   60 * time.Second,
		DetailTimeout: 30 * time.Second,
		LogLevel:      "INFO",
		Format:        "text",
	}
}

// Load reads .env (if present) and overlays SLIEKER_* environment variables on the defaults
func Load() (Config, error) {
	// A missing .env is normal
	_ = godotenv.Load()

	def := Default()
	cfg := Config{
		SourceURL:     getEnv("SLIEKER_SOURCE_URL", def.SourceURL),
		CalendarName:  getEnv("SLIEKER_CALENDAR_NAME", def.CalendarName),
		Timezone:      getEnv("SLIEKER_TIMEZONE", def.Timezone),
		Renderer:      strings.ToLower(getEnv("SLIEKER_RENDERER", def.Renderer)),
		UserAgent:     getEnv("SLIEKER_USER_AGENT", def.UserAgent),
		Workers:       getEnvInt("SLIEKER_WORKERS", def.Workers),
		PageTimeout:   getEnvDuration("SLIEKER_PAGE_TIMEOUT", def.PageTimeout),
		DetailTimeout: getEnvDuration("SLIEKER_DETAIL_TIMEOUT", def.DetailTimeout),
		LogLevel:      strings.ToUpper(getEnv("SLIEKER_LOG_LEVEL", def.LogLevel)),
		LogFile:       getEnv("SLIEKER_LOG_FILE", def.LogFile),
		Format:        strings.ToLower(getEnv("SLIEKER_FORMAT", def.Format)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot fall back silently
func (c Config) Validate() error {
	if c.Renderer != RendererHTTP && c.Renderer != RendererChrome {
		return fmt.Errorf("invalid renderer: %s (must be '%s' or '%s')", c.Renderer, RendererHTTP, RendererChrome)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", c.Format)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the venue time zone
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key string, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
