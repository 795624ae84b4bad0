package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:                 "8081",
		ShutdownTimeout:      10 * time.Second,
		LogLevel:             "info",
		SessionTTL:           8 * time.Hour,
		SessionMax:           1000,
		CacheCleanupInterval: 5 * time.Minute,
		RateLimitPerMinute:   240,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "chatty" },
			wantErr:     true,
			errorString: "invalid log level 'chatty'",
		},
		{
			name:        "session ttl too short",
			mutate:      func(c *Config) { c.SessionTTL = 30 * time.Second },
			wantErr:     true,
			errorString: "invalid session ttl 30s: must be at least 1 minute",
		},
		{
			name:        "session ttl too long",
			mutate:      func(c *Config) { c.SessionTTL = 200 * time.Hour },
			wantErr:     true,
			errorString: "invalid session ttl 200h0m0s: must be at most 168 hours",
		},
		{
			name:        "no sessions allowed",
			mutate:      func(c *Config) { c.SessionMax = 0 },
			wantErr:     true,
			errorString: "invalid session max 0: must be at least 1",
		},
		{
			name:        "cleanup interval longer than ttl",
			mutate:      func(c *Config) { c.SessionTTL = 10 * time.Minute; c.CacheCleanupInterval = time.Hour },
			wantErr:     true,
			errorString: "must not exceed session ttl 10m0s",
		},
		{
			name:        "rate limit disabled",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0",
		},
		{
			name:        "shutdown timeout too short",
			mutate:      func(c *Config) { c.ShutdownTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid shutdown timeout 100ms: must be at least 1 second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.SessionMax = -1
	cfg.RateLimitPerMinute = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("expected 3 problems reported, got %d in %q", got, err.Error())
	}
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "LOG_LEVEL", "SESSION_TTL", "SESSION_MAX",
		"CACHE_CLEANUP_INTERVAL", "RATE_LIMIT_PER_MINUTE", "SHUTDOWN_TIMEOUT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Load() LogLevel = %v, want info", cfg.LogLevel)
		}
		if cfg.SessionTTL != 8*time.Hour {
			t.Errorf("Load() SessionTTL = %v, want 8h", cfg.SessionTTL)
		}
		if cfg.SessionMax != 1000 {
			t.Errorf("Load() SessionMax = %v, want 1000", cfg.SessionMax)
		}
		if cfg.Addr() != ":8081" {
			t.Errorf("Addr() = %v, want :8081", cfg.Addr())
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("SESSION_TTL", "30m")
		t.Setenv("SESSION_MAX", "50")
		t.Setenv("CACHE_CLEANUP_INTERVAL", "1m")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "60")
		t.Setenv("SHUTDOWN_TIMEOUT", "3s")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
		if cfg.SessionTTL != 30*time.Minute {
			t.Errorf("Load() SessionTTL = %v, want 30m", cfg.SessionTTL)
		}
		if cfg.SessionMax != 50 {
			t.Errorf("Load() SessionMax = %v, want 50", cfg.SessionMax)
		}
		if cfg.CacheCleanupInterval != time.Minute {
			t.Errorf("Load() CacheCleanupInterval = %v, want 1m", cfg.CacheCleanupInterval)
		}
		if cfg.RateLimitPerMinute != 60 {
			t.Errorf("Load() RateLimitPerMinute = %v, want 60", cfg.RateLimitPerMinute)
		}
		if cfg.ShutdownTimeout != 3*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 3s", cfg.ShutdownTimeout)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("SESSION_MAX", "lots")
		t.Setenv("SESSION_TTL", "forever")

		cfg := Load()

		if cfg.SessionMax != 1000 {
			t.Errorf("Load() SessionMax = %v, want 1000 (default for invalid input)", cfg.SessionMax)
		}
		if cfg.SessionTTL != 8*time.Hour {
			t.Errorf("Load() SessionTTL = %v, want 8h (default for invalid input)", cfg.SessionTTL)
		}
	})
}
