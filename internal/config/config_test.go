package config

import (
	"testing"
	"time"
)

func TestLoadDatabaseDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/foodgram")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.URL != "postgres://localhost:5432/foodgram" {
		t.Fatalf("unexpected database URL: %q", cfg.Database.URL)
	}
	if cfg.Database.PingTimeout != 5*time.Second {
		t.Fatalf("unexpected ping timeout: %v", cfg.Database.PingTimeout)
	}
	if cfg.Database.ConnectWait != 30*time.Second {
		t.Fatalf("unexpected connect wait: %v", cfg.Database.ConnectWait)
	}
}

func TestLoadDatabaseOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/foodgram")
	t.Setenv("DB_PING_TIMEOUT", "2s")
	t.Setenv("DB_CONNECT_WAIT", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.PingTimeout != 2*time.Second {
		t.Fatalf("unexpected ping timeout: %v", cfg.Database.PingTimeout)
	}
	if cfg.Database.ConnectWait != time.Minute {
		t.Fatalf("unexpected connect wait: %v", cfg.Database.ConnectWait)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/foodgram")
	t.Setenv("DB_PING_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed DB_PING_TIMEOUT")
	}
}

func TestLoadRejectsNonPositiveConnectWait(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/foodgram")
	t.Setenv("DB_CONNECT_WAIT", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero DB_CONNECT_WAIT")
	}
}
