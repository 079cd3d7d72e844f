package shared

import (
	"context"
	"encoding/hex"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ContextKey is the type of context keys set by the API layer.
type ContextKey string

// TraceIDKey holds the request trace ID.
const TraceIDKey ContextKey = "traceID"

// Inbound X-Trace-ID values longer than this are replaced.
const maxInboundTraceIDLength = 64

// SetTraceID stores a freshly generated trace ID in ctx.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// WithTraceID stores traceID in ctx when it is a short printable ASCII token,
// and a generated ID otherwise.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if !validTraceID(traceID) {
		return SetTraceID(ctx)
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID in ctx or "".
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxInboundTraceIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}
	return true
}

// newTraceID returns 32 hex characters from a random UUID.
func newTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		slog.Error("trace id generation failed, using clock", slog.Any("error", err))
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(id[:])
}
