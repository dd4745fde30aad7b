package logging

import (
	"context"
	"strings"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	id := NewRequestID()
	if len(id) != 8 {
		t.Fatalf("id length = %d, want 8", len(id))
	}
	if id == NewRequestID() {
		t.Fatal("consecutive IDs should differ")
	}

	ctx := context.Background()
	if got := RequestID(ctx); got != "" {
		t.Fatalf("empty context should yield no id, got %q", got)
	}
	ctx = WithRequestID(ctx, id)
	if got := RequestID(ctx); got != id {
		t.Fatalf("got %q, want %q", got, id)
	}
}

func TestTruncatePayload(t *testing.T) {
	short := []byte("tiny")
	if got := TruncatePayload(short); got != "tiny" {
		t.Fatalf("short payload changed: %q", got)
	}

	long := []byte(strings.Repeat("x", 5000))
	got := TruncatePayload(long)
	if len(got) >= len(long) {
		t.Fatal("long payload was not truncated")
	}
	if !strings.Contains(got, "5000 bytes total") {
		t.Fatalf("expected byte count marker, got tail %q", got[len(got)-40:])
	}
}
