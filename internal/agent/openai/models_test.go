package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const modelListBody = `{
  "object": "list",
  "data": [
    {"id": "gpt-4o", "object": "model", "display_name": "GPT-4o"},
    {"id": "claude-3-sonnet", "object": "model"}
  ]
}`

func TestListModels_AzureMode_HitsOpenAIDiscoveryPath(t *testing.T) {
	var gotPath, gotAPIKey, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("Api-Key")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(modelListBody))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	models, err := ListModels(ctx, srv.URL, "k")
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if gotPath != "/openai/models" {
		t.Fatalf("discovery path = %q, want %q", gotPath, "/openai/models")
	}
	if gotAPIKey != "k" {
		t.Fatalf("Api-Key = %q, want %q", gotAPIKey, "k")
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-Id header missing")
	}
	if len(models) != 2 {
		t.Fatalf("got %d models, want 2", len(models))
	}
	if models[0].Name() != "GPT-4o" {
		t.Fatalf("models[0].Name() = %q, want display name", models[0].Name())
	}
	if models[1].Name() != "claude-3-sonnet" {
		t.Fatalf("models[1].Name() = %q, want id fallback", models[1].Name())
	}
}

func TestListModels_DirectMode_HitsV1Path(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(modelListBody))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	if _, err := ListModels(ctx, srv.URL+"/openai/v1", "k"); err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if gotPath != "/openai/v1/models" {
		t.Fatalf("discovery path = %q, want %q", gotPath, "/openai/v1/models")
	}
	if gotAuth != "Bearer k" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestListModels_ErrorStatusSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	_, err := ListModels(ctx, srv.URL, "k")
	if err == nil {
		t.Fatalf("ListModels expected error")
	}
	if !strings.Contains(err.Error(), "http_403") || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("ListModels error = %q", err.Error())
	}
}

func TestListModels_MissingKey(t *testing.T) {
	ctx := context.Background()
	if _, err := ListModels(ctx, "https://h", "  "); err == nil {
		t.Fatalf("ListModels without key expected error")
	}
}
