// Package telemetry attaches request trace ids to contexts.
package telemetry

import (
	"context"

	"github.com/google/uuid"
)

type telKey int

const (
	traceIDKey telKey = iota + 1
)

// NoTraceID is reported for contexts that never went through SetTraceID.
const NoTraceID = "00000000-0000-0000-0000-000000000000"

// Telemetry generates and reads trace ids. The zero value is ready to use.
type Telemetry struct{}

// NewTelemetry creates a new telemetry instance.
func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID stores a fresh random trace id in ctx.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, uuid.NewString())
}

// GetTraceID returns the trace id stored in ctx, or NoTraceID.
func (t Telemetry) GetTraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return NoTraceID
	}
	return v
}
