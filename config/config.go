// Package config loads runtime configuration from environment variables,
// optionally seeded from a .env file.
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
	defaultPort           = 3080
	defaultIntervalHours  = 2
	defaultListingURL     = "https://powerplants.vattenfall.com/#/view=map/sort=name"
	defaultBaseURL        = "https://powerplants.vattenfall.com/"
	defaultRequestTimeout = 30 * time.Second
)

// Config holds runtime configuration for the scraper daemon.
type Config struct {
	Port           int
	IntervalHours  int
	ListingURL     string
	BaseURL        string
	RequestTimeout time.Duration
	UserAgent      string
	DebugMode      bool
	RunOnStart     bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		Port:           defaultPort,
		IntervalHours:  defaultIntervalHours,
		ListingURL:     defaultListingURL,
		BaseURL:        defaultBaseURL,
		RequestTimeout: defaultRequestTimeout,
		RunOnStart:     true,
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return cfg, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}

	if v := strings.TrimSpace(os.Getenv("SCRAPING_INTERVAL")); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 || hours > 23 {
			return cfg, fmt.Errorf("invalid SCRAPING_INTERVAL (whole hours): %q", v)
		}
		cfg.IntervalHours = hours
	}

	if v := strings.TrimSpace(os.Getenv("LISTING_URL")); v != "" {
		cfg.ListingURL = v
	}

	if v := strings.TrimSpace(os.Getenv("BASE_URL")); v != "" {
		cfg.BaseURL = v
	}

	if v := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid REQUEST_TIMEOUT: %q", v)
		}
		cfg.RequestTimeout = d
	}

	// Empty means the fetcher's built-in User-Agent.
	cfg.UserAgent = strings.TrimSpace(os.Getenv("USER_AGENT"))

	cfg.DebugMode = boolEnv("DEBUG_MODE")

	if v := strings.TrimSpace(os.Getenv("RUN_ON_START")); v != "" {
		cfg.RunOnStart = v == "1" || strings.EqualFold(v, "true")
	}

	return cfg, nil
}

// ListenAddr renders the HTTP listen address.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CronSpec renders the scraping schedule ("0 */N * * *").
func (c Config) CronSpec() string {
	return fmt.Sprintf("0 */%d * * *", c.IntervalHours)
}

func boolEnv(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return v == "1" || strings.EqualFold(v, "true")
}
