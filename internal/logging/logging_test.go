package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		in      string
		want    VerbosityLevel
		wantErr bool
	}{
		{in: "Verbose", want: Verbose},
		{in: "info", want: Info},
		{in: "WARNING", want: Warning},
		{in: "error", want: Error},
		{in: " off ", want: Off},
		{in: "debug", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVerbosity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()), "String round-trips through ParseVerbosity")
		})
	}
}

func mustParse(t *testing.T, s string) VerbosityLevel {
	t.Helper()
	v, err := ParseVerbosity(s)
	require.NoError(t, err)
	return v
}

func TestNewLogger(t *testing.T) {
	t.Run("FiltersBelowLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, Warning)
		logger.Info("counted root", "root", "basic")
		logger.Warn("something odd", "root", "sefe")

		out := buf.String()
		assert.NotContains(t, out, "counted root")
		assert.Contains(t, out, "something odd")
		assert.Contains(t, out, "root=sefe")
	})

	t.Run("VerboseEmitsDebug", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, Verbose).Debug("counted file", "lines", 3)
		assert.Contains(t, buf.String(), "lines=3")
	})

	t.Run("OffDiscardsEverything", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, Off)
		logger.Error("boom")
		assert.Zero(t, buf.Len())
		assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	})
}
