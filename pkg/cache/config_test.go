package cache_test

import (
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/palette/pkg/cache"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := cache.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Enabled() {
		t.Error("cache should be disabled without an address")
	}
	if cfg.Prefix != "palette" {
		t.Errorf("prefix: got %s, want palette", cfg.Prefix)
	}
	if d := cfg.TTLDuration(); d != 24*time.Hour {
		t.Errorf("ttl: got %v, want 24h", d)
	}
	if d := cfg.DialTimeoutDuration(); d != 5*time.Second {
		t.Errorf("dial_timeout: got %v, want 5s", d)
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_CACHE_ADDR", "redis:6379")
	t.Setenv("TEST_CACHE_DB", "3")
	t.Setenv("TEST_CACHE_TTL", "1h")

	env := &cache.Env{
		Addr: "TEST_CACHE_ADDR",
		DB:   "TEST_CACHE_DB",
		TTL:  "TEST_CACHE_TTL",
	}

	cfg := cache.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !cfg.Enabled() {
		t.Error("cache should be enabled with an address")
	}
	if cfg.Addr != "redis:6379" {
		t.Errorf("addr: got %s, want redis:6379", cfg.Addr)
	}
	if cfg.DB != 3 {
		t.Errorf("db: got %d, want 3", cfg.DB)
	}
	if cfg.TTL != "1h" {
		t.Errorf("ttl: got %s, want 1h", cfg.TTL)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     cache.Config
		wantErr string
	}{
		{"negative db", cache.Config{DB: -1}, "invalid db"},
		{"bad ttl", cache.Config{TTL: "forever"}, "invalid ttl"},
		{"zero ttl", cache.Config{TTL: "0s"}, "invalid ttl"},
		{"bad dial timeout", cache.Config{DialTimeout: "soon"}, "invalid dial_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := cache.Config{Addr: "localhost:6379", Prefix: "palette", TTL: "24h"}
	overlay := cache.Config{Addr: "redis:6379"}

	base.Merge(&overlay)

	if base.Addr != "redis:6379" {
		t.Errorf("addr: got %s, want redis:6379", base.Addr)
	}
	if base.Prefix != "palette" {
		t.Errorf("prefix should remain palette, got %s", base.Prefix)
	}
	if base.TTL != "24h" {
		t.Errorf("ttl should remain 24h, got %s", base.TTL)
	}
}
