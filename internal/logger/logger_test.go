package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_AddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "production", "info")

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), 42)
	CtxInfo(ctx, "category created", "category_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "category created", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.EqualValues(t, 42, entry["user_id"])
	assert.EqualValues(t, 7, entry["category_id"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "production", "warn")

	Info("hidden")
	assert.Empty(t, buf.String())

	CtxWithError(context.Background(), "failed", errors.New("boom"))
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestWorkerLog_ErrorIncludesWorkerName(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "production", "debug")

	WorkerLog("cleanup", "purge_sessions", errors.New("db down"), "deleted", 0)

	assert.Contains(t, buf.String(), `"worker":"cleanup"`)
	assert.Contains(t, buf.String(), `"error":"db down"`)
}
