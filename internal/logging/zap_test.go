package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewZapLogger(zap.New(core))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.With("component", "progression").Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "dbg", entries[0].Message)
	assert.Equal(t, zap.InfoLevel, entries[1].Level)
	assert.Equal(t, "progression", entries[2].ContextMap()["component"])
	assert.EqualValues(t, 3, entries[2].ContextMap()["c"])
	assert.Equal(t, zap.ErrorLevel, entries[3].Level)
}

func TestNewNop_DiscardsSilently(t *testing.T) {
	log := NewNop()
	log.Info(context.Background(), "ignored", "k", "v")
	log.With("x", 1).Error(context.Background(), "ignored")
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: FormatText, want: "msg=hello"},
		{format: FormatJSON, want: `"msg":"hello"`},
		{format: FormatZap, want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(tt.format, "info", &buf)
			require.NoError(t, err)

			log.Debug(context.Background(), "hidden")
			log.Info(context.Background(), "hello", "k", "v")

			out := buf.String()
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "hidden")
		})
	}
}

func TestNew_RejectsUnknownFormatAndLevel(t *testing.T) {
	_, err := New("xml", "info", &bytes.Buffer{})
	require.Error(t, err)

	_, err = New(FormatText, "loud", &bytes.Buffer{})
	require.Error(t, err)
}

func TestSync_FlushesZapAndIgnoresOthers(t *testing.T) {
	var buf bytes.Buffer

	zl, err := New(FormatZap, "info", &buf)
	require.NoError(t, err)
	zl.Info(context.Background(), "flushed")
	require.NoError(t, Sync(zl))
	assert.Contains(t, buf.String(), "flushed")

	sl, err := New(FormatText, "info", &buf)
	require.NoError(t, err)
	assert.NoError(t, Sync(sl))
}
