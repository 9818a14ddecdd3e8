package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(nil))
	require.NoError(t, err)
	require.Equal(t, "general", cfg.CaseType)
	require.Equal(t, StoreFile, cfg.Store)
	require.NotEmpty(t, cfg.DraftDir)
	require.Equal(t, 800*time.Millisecond, cfg.Debounce)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"CASEFORM_CASE_TYPE":       "emergency",
		"CASEFORM_STORE":           "Redis",
		"CASEFORM_REDIS_URL":       "redis://localhost:6379/0",
		"CASEFORM_REDIS_TTL":       "72h",
		"CASEFORM_REDIS_POOL_SIZE": "4",
		"CASEFORM_DEBOUNCE":        "250ms",
		"CASEFORM_LOG_LEVEL":       "debug",
	}))
	require.NoError(t, err)
	require.Equal(t, "emergency", cfg.CaseType)
	require.Equal(t, StoreRedis, cfg.Store)
	require.Equal(t, 72*time.Hour, cfg.Redis.TTL)
	require.Equal(t, 4, cfg.Redis.PoolSize)
	require.Equal(t, 250*time.Millisecond, cfg.Debounce)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromLookup_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration": {"CASEFORM_DEBOUNCE": "soon"},
		"bad integer":  {"CASEFORM_REDIS_POOL_SIZE": "many"},
		"bad level":    {"CASEFORM_LOG_LEVEL": "loud"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fromLookup(lookupFrom(env))
			require.Error(t, err)
			require.True(t, strings.HasPrefix(err.Error(), "config:"), err.Error())
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":       {"CASEFORM_STORE": "sqlite"},
		"redis without url":   {"CASEFORM_STORE": "redis"},
		"non positive window": {"CASEFORM_DEBOUNCE": "0s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := fromLookup(lookupFrom(env))
			require.NoError(t, err)
			err = cfg.Validate()
			require.Error(t, err)
			require.True(t, strings.HasPrefix(err.Error(), "config:"), err.Error())
		})
	}
}

func TestFromLookup_RedisURLCanComeLater(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{"CASEFORM_STORE": "redis"}))
	require.NoError(t, err)
	require.Error(t, cfg.Validate())

	cfg.Redis.URL = "redis://localhost:6379/0"
	require.NoError(t, cfg.Validate())
}
