// Package config reads CLI settings from CASEFORM_* environment variables so
// main stays lean. Flags override whatever is read here.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config captures everything cmd/caseform needs.
type Config struct {
	CaseType    string
	LayoutDir   string
	MessagesDir string
	Store       string
	DraftDir    string
	Debounce    time.Duration
	LogLevel    slog.Level
	MetricsFile string
	Redis       RedisConfig
}

// RedisConfig configures the shared draft store.
type RedisConfig struct {
	URL          string
	Namespace    string
	TTL          time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from the environment. Malformed values are errors
// rather than silently replaced by defaults. Cross-field constraints are left
// to Validate so callers can apply flag overrides first.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	env := envReader{lookup: lookup}

	cfg := Config{
		CaseType:    env.str("CASEFORM_CASE_TYPE", "general"),
		LayoutDir:   env.str("CASEFORM_LAYOUT_DIR", ""),
		MessagesDir: env.str("CASEFORM_MESSAGES_DIR", ""),
		Store:       strings.ToLower(env.str("CASEFORM_STORE", StoreFile)),
		DraftDir:    env.str("CASEFORM_DRAFT_DIR", defaultDraftDir()),
		Debounce:    env.duration("CASEFORM_DEBOUNCE", 800*time.Millisecond),
		MetricsFile: env.str("CASEFORM_METRICS_FILE", ""),
		Redis: RedisConfig{
			URL:          env.str("CASEFORM_REDIS_URL", ""),
			Namespace:    env.str("CASEFORM_REDIS_NAMESPACE", ""),
			TTL:          env.duration("CASEFORM_REDIS_TTL", 0),
			PoolSize:     env.integer("CASEFORM_REDIS_POOL_SIZE", 10),
			MinIdleConns: env.integer("CASEFORM_REDIS_MIN_IDLE_CONNS", 0),
			DialTimeout:  env.duration("CASEFORM_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  env.duration("CASEFORM_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: env.duration("CASEFORM_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
	level, err := ParseLevel(env.str("CASEFORM_LOG_LEVEL", "info"))
	if err != nil {
		env.errs = append(env.errs, err)
	}
	cfg.LogLevel = level

	if len(env.errs) > 0 {
		return Config{}, env.errs[0]
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreFile:
		if strings.TrimSpace(c.DraftDir) == "" {
			return fmt.Errorf("config: file store needs a draft directory")
		}
	case StoreRedis:
		if strings.TrimSpace(c.Redis.URL) == "" {
			return fmt.Errorf("config: redis store needs a URL")
		}
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("config: debounce must be positive, got %s", c.Debounce)
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", raw, err)
	}
	return level, nil
}

func defaultDraftDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "caseform", "drafts")
	}
	return ".caseform-drafts"
}

type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) str(key, fallback string) string {
	if v, ok := e.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("config: %s: %w", key, err))
		return fallback
	}
	return d
}

func (e *envReader) integer(key string, fallback int) int {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("config: %s: %w", key, err))
		return fallback
	}
	return n
}
