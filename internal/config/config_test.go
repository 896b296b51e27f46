package config

import (
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("expected sqlite storage, got %q", cfg.Storage)
	}
	if cfg.LatencyMin != 300*time.Millisecond || cfg.LatencyMax != 800*time.Millisecond {
		t.Errorf("unexpected latency window [%s, %s]", cfg.LatencyMin, cfg.LatencyMax)
	}
	if cfg.AuthErrorRate != 0 || cfg.FavoriteErrorRate != 0 {
		t.Error("failure injection must be off by default")
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Addr)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"GROOVE_STORAGE":         "Redis",
		"GROOVE_REDIS_ADDR":      "cache:6380",
		"GROOVE_LATENCY_MIN":     "0s",
		"GROOVE_LATENCY_MAX":     "50ms",
		"GROOVE_FAVE_ERROR_RATE": "0.25",
		"GROOVE_STRICT_SAVES":    "true",
		"GROOVE_SESSION_TTL":     "24h",
	}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Storage != StorageRedis || cfg.RedisAddr != "cache:6380" {
		t.Errorf("unexpected redis settings: %q %q", cfg.Storage, cfg.RedisAddr)
	}
	if cfg.LatencyMin != 0 || cfg.LatencyMax != 50*time.Millisecond {
		t.Errorf("unexpected latency window [%s, %s]", cfg.LatencyMin, cfg.LatencyMax)
	}
	if cfg.FavoriteErrorRate != 0.25 {
		t.Errorf("expected 0.25, got %v", cfg.FavoriteErrorRate)
	}
	if !cfg.StrictSaves || cfg.SessionTTL != 24*time.Hour {
		t.Errorf("unexpected session settings: %v %s", cfg.StrictSaves, cfg.SessionTTL)
	}
}

func TestForServer(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMin time.Duration
		wantMax time.Duration
	}{
		{"latency off by default", nil, 0, 0},
		{"explicit ceiling kept", map[string]string{"GROOVE_LATENCY_MAX": "900ms"}, 300 * time.Millisecond, 900 * time.Millisecond},
		{"explicit floor kept", map[string]string{"GROOVE_LATENCY_MIN": "100ms"}, 100 * time.Millisecond, 800 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{"GROOVE_REMOTE_URL": "http://elsewhere:8080"}
			for k, v := range tt.env {
				env[k] = v
			}
			cfg, err := FromEnv(envMap(env))
			if err != nil {
				t.Fatalf("FromEnv failed: %v", err)
			}
			srv := cfg.ForServer()
			if srv.LatencyMin != tt.wantMin || srv.LatencyMax != tt.wantMax {
				t.Errorf("latency window = [%s, %s], want [%s, %s]", srv.LatencyMin, srv.LatencyMax, tt.wantMin, tt.wantMax)
			}
			if srv.RemoteURL != "" {
				t.Errorf("server must use the local store, got remote %q", srv.RemoteURL)
			}
		})
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad duration", map[string]string{"GROOVE_LATENCY_MAX": "soon"}, "GROOVE_LATENCY_MAX"},
		{"bad rate", map[string]string{"GROOVE_AUTH_ERROR_RATE": "lots"}, "GROOVE_AUTH_ERROR_RATE"},
		{"rate out of range", map[string]string{"GROOVE_AUTH_ERROR_RATE": "1.5"}, "auth error rate"},
		{"inverted window", map[string]string{"GROOVE_LATENCY_MIN": "1s", "GROOVE_LATENCY_MAX": "10ms"}, "latency window"},
		{"unknown storage", map[string]string{"GROOVE_STORAGE": "floppy"}, "invalid storage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envMap(tt.env))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
