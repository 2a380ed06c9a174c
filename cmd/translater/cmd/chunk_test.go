package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runChunk(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"chunk"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestChunkCommand(t *testing.T) {
	input := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("first paragraph\n\nsecond paragraph"), 0o600))

	out, err := runChunk(t, input)
	require.NoError(t, err)

	assert.Contains(t, out, "chunk 1/1")
	assert.Contains(t, out, "first paragraph")
	assert.Contains(t, out, "second paragraph")
}

func TestChunkCommand_SplitsOnSize(t *testing.T) {
	input := filepath.Join(t.TempDir(), "input.txt")
	text := strings.Repeat("a", 30) + "\n\n" + strings.Repeat("b", 30)
	require.NoError(t, os.WriteFile(input, []byte(text), 0o600))

	out, err := runChunk(t, input, "--max-chunk-size", "40")
	require.NoError(t, err)

	assert.Contains(t, out, "chunk 1/2")
	assert.Contains(t, out, "chunk 2/2")
}

func TestChunkCommand_JSONFormat(t *testing.T) {
	input := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("hello world"), 0o600))

	out, err := runChunk(t, input, "--format", "json")
	require.NoError(t, err)

	var chunks []string
	require.NoError(t, json.Unmarshal([]byte(out), &chunks))
	assert.Equal(t, []string{"hello world"}, chunks)
}

func TestChunkCommand_AppliesCorrections(t *testing.T) {
	input := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("ﷲ"), 0o600))

	out, err := runChunk(t, input)
	require.NoError(t, err)

	// The Allah ligature is expanded to its letter form.
	assert.Contains(t, out, "الله")
}

func TestChunkCommand_MissingFile(t *testing.T) {
	_, err := runChunk(t, filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
