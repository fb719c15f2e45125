package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunModels_ListsAgainstDiscoveryEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "object": "list",
  "data": [
    {"id": "gpt-4o", "object": "model", "display_name": "GPT-4o"},
    {"id": "claude-3-sonnet", "object": "model"}
  ]
}`))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	err := runModels(rootArgs{}, []string{"-base-url", srv.URL, "-api-key", "k"}, &out)
	if err != nil {
		t.Fatalf("runModels: %v", err)
	}
	if gotPath != "/openai/models" {
		t.Fatalf("discovery path = %q, want %q", gotPath, "/openai/models")
	}
	got := out.String()
	if !strings.Contains(got, "gpt-4o\tGPT-4o") {
		t.Fatalf("output missing display name row:\n%s", got)
	}
	if !strings.Contains(got, "claude-3-sonnet") {
		t.Fatalf("output missing plain id row:\n%s", got)
	}
}

func TestRunModels_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "list", "data": []}`))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	err := runModels(rootArgs{}, []string{"-base-url", srv.URL + "/openai/v1", "-api-key", "k"}, &out)
	if err != nil {
		t.Fatalf("runModels: %v", err)
	}
	if !strings.Contains(out.String(), "no models") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunModels_MissingKey(t *testing.T) {
	t.Setenv("DIAL_BASE_URL", "")
	t.Setenv("DIAL_API_KEY", "")
	t.Setenv("DIAL_MODEL", "")

	var out bytes.Buffer
	err := runModels(rootArgs{}, []string{"-base-url", "https://h", "-config", t.TempDir() + "/config.toml"}, &out)
	if err == nil {
		t.Fatalf("runModels without key expected error")
	}
}
