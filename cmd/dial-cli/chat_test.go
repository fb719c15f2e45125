package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunChat_OneShot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 0,
  "model": "gpt-4o",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "hello there"}, "finish_reason": "stop"}]
}`))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	err := runChat(rootArgs{}, []string{
		"-base-url", srv.URL + "/openai/v1",
		"-api-key", "k",
		"-model", "gpt-4o",
		"hi",
	}, &out)
	if err != nil {
		t.Fatalf("runChat: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "hello there" {
		t.Fatalf("output = %q, want %q", got, "hello there")
	}
}

func TestRunChat_Stream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\"hel\"}}]}\n\n")
		_, _ = io.WriteString(w, "data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\"lo\"}}]}\n\n")
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	err := runChat(rootArgs{}, []string{
		"-base-url", srv.URL + "/openai/v1",
		"-api-key", "k",
		"-model", "gpt-4o",
		"-stream",
		"hi",
	}, &out)
	if err != nil {
		t.Fatalf("runChat: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "hello" {
		t.Fatalf("streamed output = %q, want %q", got, "hello")
	}
}

func TestRunChat_MissingPrompt(t *testing.T) {
	var out bytes.Buffer
	err := runChat(rootArgs{}, []string{"-api-key", "k", "-model", "m"}, &out)
	if err == nil || !strings.Contains(err.Error(), "missing prompt") {
		t.Fatalf("runChat error = %v, want missing prompt", err)
	}
}
