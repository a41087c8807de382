package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskmanagement/sdk/logger"
)

type ctxKey struct{}

func TestTraceIDIsAttached(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(
		logger.WithOutput(&buf),
		logger.WithService("TASKS"),
		logger.WithTraceIDFn(func(ctx context.Context) string {
			v, _ := ctx.Value(ctxKey{}).(string)
			return v
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "trace-123")
	log.InfoContext(ctx, "request started", "path", "/api/task")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "request started", record["msg"])
	assert.Equal(t, "trace-123", record["trace_id"])
	assert.Equal(t, "TASKS", record["service"])
	assert.Equal(t, "/api/task", record["path"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithLevel("warn"))

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithFormat("text"))

	log.InfoContextf(context.Background(), "listening on %s", ":3000")
	assert.Contains(t, buf.String(), `msg="listening on :3000"`)
}
