package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()

	chunkPath := writeChunk(t, dir, 1, []string{"sat", "at"})
	format, err := DetectFormat(chunkPath)
	require.NoError(t, err)
	assert.Equal(t, FormatChunk, format)

	textPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("sat\nat\n"), 0644))
	format, err = DetectFormat(textPath)
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	_, err = DetectFormat(filepath.Join(dir, "something.dat"))
	assert.Error(t, err)
}

func TestValidateFormat(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, ValidateFormat(filepath.Join(dir, "missing.txt"), FormatText))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	assert.Error(t, ValidateFormat(empty, FormatText), "below minimum size")

	wrongExt := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(wrongExt, []byte("sat\n"), 0644))
	assert.Error(t, ValidateFormat(wrongExt, FormatText))

	ok := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(ok, []byte("sat\n"), 0644))
	assert.NoError(t, ValidateFormat(ok, FormatText))
}

func TestValidateChunkHeader(t *testing.T) {
	dir := t.TempDir()

	good := writeChunk(t, dir, 1, []string{"sat"})
	assert.NoError(t, ValidateFormat(good, FormatChunk))

	// Negative count in the header must be rejected.
	bad := filepath.Join(dir, "chain_0002.bin")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xff, 0xff, 0xff}, 0644))
	assert.Error(t, ValidateFormat(bad, FormatChunk))
}
