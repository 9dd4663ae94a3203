package config

import (
	"os"
	"testing"
)

const sampleConfig = `
endpoint:
  url: https://chatbot.example.com/api/chat
  response_nesting: data
  timeout_seconds: 30
session:
  announce_page_queries: true
viewer:
  document_path_prefix: /api/files/
log:
  level: debug
`

// TestLoad verifies that Load unmarshals a full config file.
func TestLoad(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(sampleConfig); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	t.Setenv("CONFIG_PATH", tmp.Name())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint.URL != "https://chatbot.example.com/api/chat" {
		t.Fatalf("unexpected endpoint url: %s", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.ResponseNesting != "data" {
		t.Fatalf("unexpected nesting: %s", cfg.Endpoint.ResponseNesting)
	}
	if cfg.Endpoint.TimeoutSeconds != 30 {
		t.Fatalf("unexpected timeout: %d", cfg.Endpoint.TimeoutSeconds)
	}
	if !cfg.Session.AnnouncePageQueries {
		t.Fatalf("expected announce_page_queries true")
	}
	if cfg.Viewer.DocumentPathPrefix != "/api/files/" {
		t.Fatalf("unexpected prefix: %s", cfg.Viewer.DocumentPathPrefix)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
}

// TestLoad_MissingFile verifies that a missing config file yields defaults.
func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint.URL != DefaultEndpointURL {
		t.Fatalf("expected default url, got %s", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.ResponseNesting != "auto" {
		t.Fatalf("expected auto nesting, got %s", cfg.Endpoint.ResponseNesting)
	}
	if cfg.Session.AnnouncePageQueries {
		t.Fatalf("expected announce_page_queries false by default")
	}
	if cfg.Viewer.DocumentPathPrefix != DefaultDocumentPathPrefix {
		t.Fatalf("unexpected prefix: %s", cfg.Viewer.DocumentPathPrefix)
	}
}
