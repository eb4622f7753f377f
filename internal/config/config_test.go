package config

import (
	"fmt"
	"log"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")

	cfg := Load()
	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want %q", cfg.Env, "dev")
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_PORT", "8080")

	cfg := Load()
	if cfg.Env != "prod" {
		t.Errorf("Env = %q, want %q", cfg.Env, "prod")
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	defer func() { fatalf = log.Fatalf }()

	cases := []struct {
		desc string
		port string
	}{
		{"not a number", "http"},
		{"zero", "0"},
		{"negative", "-1"},
		{"out of range", "70000"},
		{"trailing junk", "3000x"},
	}

	for _, c := range cases {
		t.Setenv("APP_PORT", c.port)

		var msg string
		fatalf = func(format string, v ...interface{}) {
			msg = fmt.Sprintf(format, v...)
		}
		Load()
		if msg == "" {
			t.Errorf("%s: APP_PORT=%q did not fail fast", c.desc, c.port)
		}
	}
}

func TestLoadValidPortNotFatal(t *testing.T) {
	defer func() { fatalf = log.Fatalf }()
	t.Setenv("APP_PORT", "65535")

	called := false
	fatalf = func(format string, v ...interface{}) { called = true }
	cfg := Load()
	if called {
		t.Fatal("fatalf called for a valid port")
	}
	if cfg.Port != "65535" {
		t.Errorf("Port = %q, want %q", cfg.Port, "65535")
	}
}
