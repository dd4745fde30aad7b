// Package logging carries per-request correlation IDs through contexts and
// keeps logged payloads bounded.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

type contextKey struct{}

// maxLoggedPayload bounds payload excerpts in log lines (1KB).
const maxLoggedPayload = 1024

// NewRequestID returns an 8-character hex correlation ID.
func NewRequestID() string {
	b := make([]byte, 4)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// WithRequestID attaches a correlation ID to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// RequestID returns the correlation ID attached to ctx, empty if none.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// TruncatePayload shortens a request or response body for logging.
func TruncatePayload(b []byte) string {
	if len(b) <= maxLoggedPayload {
		return string(b)
	}
	return string(b[:maxLoggedPayload]) + fmt.Sprintf("... [truncated, %d bytes total]", len(b))
}
