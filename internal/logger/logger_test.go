package logger

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := RequestIDFromContext(ctx); ok {
		t.Error("expected no request ID on a fresh context")
	}

	id := GenerateRequestID()
	if id == "" {
		t.Fatal("expected a non-empty request ID")
	}

	ctx = WithRequestID(ctx, id)
	got, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("expected request ID to be present")
	}
	if got != id {
		t.Errorf("expected %q, got %q", id, got)
	}
}

func TestFromContextWithoutRequestID(t *testing.T) {
	log := FromContext(context.Background())
	if log == nil {
		t.Fatal("expected the default logger")
	}
}

func TestLogLevelParsing(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"bogus", "INFO"},
	}

	for _, tt := range tests {
		cfg := Config{Level: tt.level}
		if got := cfg.LogLevel().String(); got != tt.want {
			t.Errorf("LogLevel(%q) = %s, want %s", tt.level, got, tt.want)
		}
	}
}
