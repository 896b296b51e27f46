// Package config reads settings from the environment. Command-line flags
// override individual fields after Load.
//
// Environment variables:
//
//	GROOVE_STORAGE          sqlite, redis or memory (default: sqlite)
//	GROOVE_DB_PATH          SQLite file (default: ./data/groovematch.db)
//	GROOVE_REDIS_ADDR       Redis address (default: localhost:6379)
//	GROOVE_REDIS_PASSWORD   Redis password
//	GROOVE_PASSPHRASE       encrypts stored values when set
//	GROOVE_STRICT_SAVES     discard mutations whose save fails (default: false)
//	GROOVE_SESSION_SECRET   signs session tokens as JWTs when set
//	GROOVE_SESSION_TTL      JWT lifetime, 0 for none (default: 0)
//	GROOVE_REMOTE_URL       server to use instead of the local store
//	GROOVE_LATENCY_MIN      simulated latency floor (default: 300ms)
//	GROOVE_LATENCY_MAX      simulated latency ceiling (default: 800ms)
//	                        the server simulates latency only when a bound is set
//	GROOVE_AUTH_ERROR_RATE  injected failure rate for auth calls (default: 0)
//	GROOVE_FAVE_ERROR_RATE  injected failure rate for favorite toggles (default: 0)
//	GROOVE_ADDR             server listen address (default: :8080)
//	GROOVE_DEMO_NAME        demo account name
//	GROOVE_DEMO_EMAIL       demo account email
//	LOG_LEVEL               debug, info, warn, error (default: info)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/groovematch/internal/auth"
	"github.com/mmynk/groovematch/internal/netsim"
)

// Storage backends for the device KV.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds every setting for the CLI and the server.
type Config struct {
	Storage       string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	Passphrase    string
	StrictSaves   bool

	SessionSecret string
	SessionTTL    time.Duration

	RemoteURL string

	LatencyMin        time.Duration
	LatencyMax        time.Duration
	// LatencyExplicit is set when either latency bound came from the
	// environment rather than Default.
	LatencyExplicit   bool
	AuthErrorRate     float64
	FavoriteErrorRate float64

	Addr     string
	LogLevel string

	DemoName  string
	DemoEmail string
}

// Default returns the settings used when nothing is set.
func Default() Config {
	return Config{
		Storage:    StorageSQLite,
		DBPath:     "./data/groovematch.db",
		RedisAddr:  "localhost:6379",
		LatencyMin: netsim.DefaultMinLatency,
		LatencyMax: netsim.DefaultMaxLatency,
		Addr:       ":8080",
		LogLevel:   "info",
		DemoName:   auth.DefaultDemoName,
		DemoEmail:  auth.DefaultDemoEmail,
	}
}

// Load reads the process environment.
func Load() (Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv reads settings through getenv, starting from Default.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	env := envReader{getenv: getenv}

	cfg.Storage = strings.ToLower(env.str("GROOVE_STORAGE", cfg.Storage))
	cfg.DBPath = env.str("GROOVE_DB_PATH", cfg.DBPath)
	cfg.RedisAddr = env.str("GROOVE_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = env.str("GROOVE_REDIS_PASSWORD", "")
	cfg.Passphrase = env.str("GROOVE_PASSPHRASE", "")
	cfg.StrictSaves = env.boolean("GROOVE_STRICT_SAVES", false)
	cfg.SessionSecret = env.str("GROOVE_SESSION_SECRET", "")
	cfg.SessionTTL = env.duration("GROOVE_SESSION_TTL", 0)
	cfg.RemoteURL = env.str("GROOVE_REMOTE_URL", "")
	cfg.LatencyMin = env.duration("GROOVE_LATENCY_MIN", cfg.LatencyMin)
	cfg.LatencyMax = env.duration("GROOVE_LATENCY_MAX", cfg.LatencyMax)
	cfg.LatencyExplicit = env.isSet("GROOVE_LATENCY_MIN") || env.isSet("GROOVE_LATENCY_MAX")
	cfg.AuthErrorRate = env.float("GROOVE_AUTH_ERROR_RATE", 0)
	cfg.FavoriteErrorRate = env.float("GROOVE_FAVE_ERROR_RATE", 0)
	cfg.Addr = env.str("GROOVE_ADDR", cfg.Addr)
	cfg.LogLevel = env.str("LOG_LEVEL", cfg.LogLevel)
	cfg.DemoName = env.str("GROOVE_DEMO_NAME", cfg.DemoName)
	cfg.DemoEmail = env.str("GROOVE_DEMO_EMAIL", cfg.DemoEmail)

	if env.err != nil {
		return Config{}, env.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ForServer adapts c for the server process: the store is always local, and
// simulated latency is off unless the environment asked for it.
func (c Config) ForServer() Config {
	c.RemoteURL = ""
	if !c.LatencyExplicit {
		c.LatencyMin, c.LatencyMax = 0, 0
	}
	return c
}

// Validate checks ranges and enums.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("invalid storage %q: want sqlite, redis or memory", c.Storage)
	}
	if c.LatencyMin < 0 || c.LatencyMax < c.LatencyMin {
		return fmt.Errorf("invalid latency window [%s, %s]", c.LatencyMin, c.LatencyMax)
	}
	for name, rate := range map[string]float64{
		"auth error rate":     c.AuthErrorRate,
		"favorite error rate": c.FavoriteErrorRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, rate)
		}
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl must not be negative, got %s", c.SessionTTL)
	}
	return nil
}

// envReader keeps the first parse error so Load can report it once.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) str(key, fallback string) string {
	if value := e.getenv(key); value != "" {
		return value
	}
	return fallback
}

func (e *envReader) isSet(key string) bool {
	return e.getenv(key) != ""
}

func (e *envReader) fail(key, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("failed to parse %s=%q: %w", key, value, err)
	}
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	value := e.getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.fail(key, value, err)
		return fallback
	}
	return d
}

func (e *envReader) float(key string, fallback float64) float64 {
	value := e.getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		e.fail(key, value, err)
		return fallback
	}
	return f
}

func (e *envReader) boolean(key string, fallback bool) bool {
	value := e.getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		e.fail(key, value, err)
		return fallback
	}
	return b
}
