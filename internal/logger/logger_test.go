package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_AddsRoleField(t *testing.T) {
	log := NewLogger("test-role")
	require.NotNil(t, log)

	var buf bytes.Buffer
	l := Logger{log.Output(&buf)}
	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
	assert.Equal(t, "hello", entry["message"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)

	// must not panic and must be disabled
	log.Error().Msg("ignored")
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "parent").Logger()}

	child := parent.GetChildLogger()
	child.Info().Msg("from child")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parent", entry["role"])
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	attached := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()
	ctx := attached.WithContext(context.Background())

	log := FromContext(ctx)
	log.Info().Msg("traced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["trace_id"])
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	attached := zerolog.New(&buf).With().Str("trace_id", "req-1").Logger()

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(attached.WithContext(r.Context()))

	log := FromRequest(r)
	log.Info().Msg("traced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["trace_id"])
}
