package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formwizard.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FORMWIZARD_CONFIG", "")
	t.Chdir(t.TempDir())

	got, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.Submit.Headers = map[string]string{}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileEnvAndOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
submit:
  target: log,http
  url: https://intake.example.com/forms
  format: form
  timeout: 5s
  headers:
    authorization: Bearer abc
theme:
  variant: dark
log:
  level: debug
`)
	t.Setenv("FORMWIZARD_LOG_FORMAT", "json")

	got, err := Load(path, WithOverride("server.addr", ":7000"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Server.Addr != ":7000" {
		t.Fatalf("expected override to win, got %q", got.Server.Addr)
	}
	if diff := cmp.Diff([]string{"log", "http"}, got.Submit.Targets()); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
	if got.Submit.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", got.Submit.Timeout)
	}
	if got.Submit.Headers["authorization"] != "Bearer abc" {
		t.Fatalf("expected header from file, got %v", got.Submit.Headers)
	}
	if got.Theme.Name != "formwizard" || got.Theme.Variant != "dark" {
		t.Fatalf("unexpected theme %+v", got.Theme)
	}
	if got.Log.Level != "debug" || got.Log.Format != "json" {
		t.Fatalf("unexpected log config %+v", got.Log)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Submit.Target = "http,carrier-pigeon"
	cfg.Submit.Format = "xml"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "yaml"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{"submit.url is required", `unknown submit target "carrier-pigeon"`, "submit.format", "log.level", `unknown log.format "yaml"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}
