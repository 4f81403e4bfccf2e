package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	PageSize int    `mapstructure:"page_size"`
}

type APIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	FallbackFileURL string        `mapstructure:"fallback_file_url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

type SessionConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config purely from environment variables, for
// installs that ship no config file.
func LoadConfigFromEnv() *Config {
	timeout := 15 * time.Second
	if raw := os.Getenv("HR_API_REQUEST_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			timeout = d
		}
	}

	return &Config{
		App: AppConfig{
			Env:      getEnv("APP_ENV", "development"),
			PageSize: getEnvAsInt("HR_PAGE_SIZE", DefaultPageSize),
		},
		API: APIConfig{
			BaseURL:         getEnv("HR_API_URL", ""),
			FallbackFileURL: getEnv("HR_FALLBACK_FILE_URL", DefaultFallbackFileURL),
			RequestTimeout:  timeout,
		},
		Session: SessionConfig{
			DBPath: getEnv("HR_SESSION_DB", DefaultSessionDBPath),
		},
		Logging: LoggingConfig{
			Level: getEnv("HR_LOG_LEVEL", "info"),
		},
	}
}

const (
	DefaultPageSize = 10

	// The backend currently serves the same sample document for every receipt
	// on the binary fallback path; the URL is configurable so production can
	// repoint it without a rebuild.
	DefaultFallbackFileURL = "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf"

	DefaultSessionDBPath = "hr-client.db"
)

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("api config: %v", err))
	}

	if err := c.App.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("app config: %v", err))
	}

	if err := c.Session.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("session config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
	}
	if c.FallbackFileURL != "" {
		if _, err := url.ParseRequestURI(c.FallbackFileURL); err != nil {
			return fmt.Errorf("invalid fallback_file_url %s: %w", c.FallbackFileURL, err)
		}
	}
	return nil
}

func (c *AppConfig) Validate() error {
	if c.PageSize <= 0 {
		return errors.New("page_size must be positive")
	}
	return nil
}

func (c *SessionConfig) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	return nil
}

// NormalizedBaseURL returns the API base without a trailing slash so path
// joining stays predictable.
func (c *APIConfig) NormalizedBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}
