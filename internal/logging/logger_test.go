package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(FormatText, "warn", &buf)
	require.NoError(t, err)

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown", "attempt", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "attempt=2")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(FormatJSON, "info", &buf)
	require.NoError(t, err)

	log.Info(context.Background(), "saved", "email", "u@test.com")

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "saved", m["msg"])
	assert.Equal(t, "u@test.com", m["email"])
}

func TestNew_Zap(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(FormatZap, "debug", &buf)
	require.NoError(t, err)

	log.With("component", "ai").Debug(context.Background(), "attempt", "n", 1)

	out := buf.String()
	assert.True(t, strings.Contains(out, `"msg":"attempt"`), out)
	assert.Contains(t, out, `"component":"ai"`)
	assert.Contains(t, out, `"n":1`)
}

func TestNew_Errors(t *testing.T) {
	_, err := New("xml", "info", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(FormatText, "loud", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	ctx := context.TODO()
	l.Debug(ctx, "x")
	l.Info(ctx, "x")
	l.Warn(ctx, "x")
	l.Error(ctx, "x")
	l.With("k", "v").Info(ctx, "y")
}
