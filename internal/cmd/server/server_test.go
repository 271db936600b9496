package server

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "taskdeck.db" {
		t.Fatalf("db path = %q, want taskdeck.db", cfg.DBPath)
	}
	if cfg.LoginURL != "/login" {
		t.Fatalf("login url = %q, want /login", cfg.LoginURL)
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9000", "-db-path", "/tmp/tasks.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("port = %d, want 9000", cfg.Port)
	}
	if cfg.DBPath != "/tmp/tasks.db" {
		t.Fatalf("db path = %q, want /tmp/tasks.db", cfg.DBPath)
	}
}

func TestParseConfigEnvDefaults(t *testing.T) {
	t.Setenv("TASKDECK_PORT", "7070")
	t.Setenv("TASKDECK_INTROSPECT_URL", "https://id.example.com/introspect")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 7070 {
		t.Fatalf("port = %d, want 7070", cfg.Port)
	}
	if cfg.IntrospectURL != "https://id.example.com/introspect" {
		t.Fatalf("introspect url = %q", cfg.IntrospectURL)
	}
}

func TestNewIntrospectorPrefersRemoteEndpoint(t *testing.T) {
	introspector, err := newIntrospector(Config{IntrospectURL: "https://id.example.com/introspect"})
	if err != nil {
		t.Fatalf("new introspector: %v", err)
	}
	if introspector == nil {
		t.Fatal("expected introspector")
	}
}

func TestNewIntrospectorRequiresSomeConfiguration(t *testing.T) {
	t.Setenv("TASKDECK_SESSION_ISSUER", "")
	if _, err := newIntrospector(Config{}); err == nil {
		t.Fatal("expected error without session configuration")
	}
}
