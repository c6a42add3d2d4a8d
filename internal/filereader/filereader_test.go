package filereader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/IgorBayerl/linecount/internal/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"
)

func TestCountLines(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantSkip    int
		wantReplace int
	}{
		{name: "empty", content: "", wantSkip: 0, wantReplace: 0},
		{name: "single unterminated line", content: "a", wantSkip: 1, wantReplace: 1},
		{name: "single terminated line", content: "a\n", wantSkip: 1, wantReplace: 1},
		{name: "unterminated last line", content: "a\nb", wantSkip: 2, wantReplace: 2},
		{name: "blank lines", content: "a\n\n", wantSkip: 2, wantReplace: 2},
		{name: "lone newline", content: "\n", wantSkip: 1, wantReplace: 1},
		{name: "crlf", content: "a\r\nb\r\n", wantSkip: 2, wantReplace: 2},
		{name: "lone cr", content: "a\rb\r", wantSkip: 2, wantReplace: 2},
		{name: "cr before crlf", content: "a\r\r\n", wantSkip: 2, wantReplace: 2},
		{name: "lf cr is two terminators", content: "a\n\rb", wantSkip: 3, wantReplace: 3},
		{name: "three and five", content: "1\n2\n3\n", wantSkip: 3, wantReplace: 3},
		{name: "invalid bytes between lines", content: "ok\n\xff\xfe\nend\n", wantSkip: 3, wantReplace: 3},
		{name: "invalid bytes inside a line", content: "a\xffb\nc\x80\n", wantSkip: 2, wantReplace: 2},
		{name: "only invalid bytes", content: "\xff", wantSkip: 0, wantReplace: 1},
		{name: "invalid trailing fragment", content: "abc\n\xff\xfe", wantSkip: 1, wantReplace: 2},
		{name: "literal replacement character", content: "\uFFFD", wantSkip: 1, wantReplace: 1},
		{name: "multibyte text", content: "héllo\nwörld\n日本\n", wantSkip: 3, wantReplace: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountLines(strings.NewReader(tt.content), DecodeSkip)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSkip, got, "skip")

			got, err = CountLines(strings.NewReader(tt.content), DecodeReplace)
			require.NoError(t, err)
			assert.Equal(t, tt.wantReplace, got, "replace")

			// Feeding one byte at a time splits "\r\n" pairs and multibyte
			// sequences across reads; the count must not change.
			got, err = CountLines(iotest.OneByteReader(strings.NewReader(tt.content)), DecodeSkip)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSkip, got, "skip, one byte at a time")
		})
	}
}

func TestCountLines_LongLine(t *testing.T) {
	content := strings.Repeat("x", 1<<20) + "\n" + strings.Repeat("y", 1<<20)
	got, err := CountLines(strings.NewReader(content), DecodeSkip)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestCountLines_ReadError(t *testing.T) {
	readErr := errors.New("disk on fire")
	_, err := CountLines(iotest.ErrReader(readErr), DecodeSkip)
	require.ErrorIs(t, err, readErr)
}

func TestNewDecoder(t *testing.T) {
	input := "a\xffb\xc3\xa9\xe2\x82"

	skipped, _, err := transform.String(NewDecoder(DecodeSkip), input)
	require.NoError(t, err)
	assert.Equal(t, "abé", skipped)

	replaced, _, err := transform.String(NewDecoder(DecodeReplace), input)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(replaced, "a\uFFFDbé"), "got %q", replaced)
	assert.NotContains(t, replaced, "\xff")
}

func TestParseDecodePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    DecodePolicy
		wantErr bool
	}{
		{in: "skip", want: DecodeSkip},
		{in: "Ignore", want: DecodeSkip},
		{in: " REPLACE ", want: DecodeReplace},
		{in: "strict", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDecodePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "skip", DecodeSkip.String())
	assert.Equal(t, "replace", DecodeReplace.String())
}

func TestCountLinesInFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("ExistingFile", func(t *testing.T) {
		path := filepath.Join(dir, "twelve.txt")
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("line\n", 12)), 0o644))

		got, err := CountLinesInFile(filesystem.DefaultFS{}, path, DecodeSkip)
		require.NoError(t, err)
		assert.Equal(t, 12, got)
	})

	t.Run("ZeroByteFile", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		got, err := CountLinesInFile(filesystem.DefaultFS{}, path, DecodeSkip)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := CountLinesInFile(filesystem.DefaultFS{}, filepath.Join(dir, "missing.txt"), DecodeSkip)
		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}
