package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestPlainFormatter_FieldOrderingAndSkipping(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	cases := []struct {
		name    string
		data    logrus.Fields
		message string
		want    string
	}{
		{
			name: "component_and_fields",
			data: logrus.Fields{
				"component": "models",
				"caller":    "x.go:1",
				"count":     3,
				"base":      "https://h",
			},
			message: "listed models",
			want:    "x.go:1 [2025-01-02T03:04:05Z] [INFO] [models] listed models base=https://h count=3\n",
		},
		{
			name:    "no_component",
			data:    logrus.Fields{"caller": "x.go:1"},
			message: "hello",
			want:    "x.go:1 [2025-01-02T03:04:05Z] [INFO] hello\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := &logrus.Entry{
				Time:    ts,
				Level:   logrus.InfoLevel,
				Message: tc.message,
				Data:    tc.data,
			}
			out, err := (PlainFormatter{}).Format(entry)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if string(out) != tc.want {
				t.Fatalf("Format = %q, want %q", string(out), tc.want)
			}
		})
	}
}

func TestSetRoot_ReplacesAndResets(t *testing.T) {
	prev := Root()
	t.Cleanup(func() {
		SetRoot(prev)
	})

	custom := logrus.New()
	SetRoot(custom)
	if Root() != custom {
		t.Fatalf("Root() did not return the logger passed to SetRoot")
	}

	SetRoot(nil)
	if Root() == custom {
		t.Fatalf("SetRoot(nil) did not reset the root logger")
	}
}

func TestNamed_AttachesComponent(t *testing.T) {
	entry := Named("gateway")
	if got, ok := entry.Data["component"].(string); !ok || got != "gateway" {
		t.Fatalf("Named entry component = %v", entry.Data["component"])
	}
}

func TestShortenFilePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/home/u/dial-cli/internal/gateway/endpoint.go", "internal/gateway/endpoint.go"},
		{"/home/u/dial-cli/cmd/dial-cli/main.go", "cmd/dial-cli/main.go"},
		{"/somewhere/else/file.go", "file.go"},
	}
	for _, tc := range cases {
		if got := shortenFilePath(tc.in); got != tc.want {
			t.Fatalf("shortenFilePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_EscapesNewlines(t *testing.T) {
	got := sanitize("a\nb\rc")
	if strings.ContainsAny(got, "\n\r") {
		t.Fatalf("sanitize left raw control characters: %q", got)
	}
	if got != `a\nb\rc` {
		t.Fatalf("sanitize = %q", got)
	}
}
