package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWordList(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeChunk writes a chain_NNNN.bin file in the loader's binary layout.
func writeChunk(t *testing.T, dir string, chunkID int, words []string) string {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("chain_%04d.bin", chunkID))
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	require.NoError(t, binary.Write(file, binary.LittleEndian, int32(len(words))))
	for i, word := range words {
		require.NoError(t, binary.Write(file, binary.LittleEndian, uint16(len(word))))
		_, err := file.Write([]byte(word))
		require.NoError(t, err)
		require.NoError(t, binary.Write(file, binary.LittleEndian, uint16(i+1)))
	}
	return path
}

func TestLoadTextFile(t *testing.T) {
	path := writeWordList(t, "Starting", "  stating ", "", "statin", "sat")

	set, err := LoadTextFile(path, true)
	require.NoError(t, err)

	assert.Equal(t, 4, set.WordCount())
	assert.True(t, set.Contains("starting"), "entries are lowercased")
	assert.True(t, set.Contains("stating"), "entries are trimmed")
	assert.False(t, set.Contains("Starting"))
}

func TestLoadTextFileFilters(t *testing.T) {
	path := writeWordList(t, "sat", "1234", "w@rd", "aaaa")

	filtered, err := LoadTextFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.WordCount())

	raw, err := LoadTextFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, 4, raw.WordCount())
	assert.True(t, raw.Contains("1234"))
}

func TestLoadTextFileMissing(t *testing.T) {
	_, err := LoadTextFile(filepath.Join(t.TempDir(), "nope.txt"), true)
	assert.Error(t, err)
}

func TestLoaderGetAvailable(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, 2, []string{"at"})
	writeChunk(t, dir, 1, []string{"sat", "sati"})

	loader := NewLoader(dir, 10, 0)
	chunks, err := loader.GetAvailable()
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].ChunkID, "chunks sorted by ID")
	assert.Equal(t, 2, chunks[0].WordCount)
	assert.Equal(t, 2, chunks[1].ChunkID)
}

func TestLoaderLoadChunk(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, 1, []string{"sat", "at", "a"})

	loader := NewLoader(dir, 10, 0)
	require.NoError(t, loader.loadChunk(1))

	set := loader.Set()
	assert.True(t, set.Contains("sat"))
	assert.True(t, set.Contains("a"))
	assert.Equal(t, 3, set.WordCount())
	assert.Equal(t, []int{1}, loader.LoadedChunkIDs())

	// Loading the same chunk twice is a no-op.
	require.NoError(t, loader.loadChunk(1))
	assert.Equal(t, 3, set.WordCount())
}

func TestLoaderStartLoadsInBackground(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, 1, []string{"sat", "at"})

	loader := NewLoader(dir, 10, 0)
	require.NoError(t, loader.Start())
	defer loader.Stop()

	require.Eventually(t, func() bool {
		return loader.Set().Contains("sat")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoaderStartEmptyDir(t *testing.T) {
	loader := NewLoader(t.TempDir(), 10, 0)
	assert.Error(t, loader.Start())
}

func TestLoaderUnloadRebuilds(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, 1, []string{"sat", "at"})
	writeChunk(t, dir, 2, []string{"bat", "bt"})

	loader := NewLoader(dir, 10, 0)
	require.NoError(t, loader.loadChunk(1))
	require.NoError(t, loader.loadChunk(2))
	require.True(t, loader.Set().Contains("bat"))

	require.NoError(t, loader.Unload(2))
	assert.False(t, loader.Set().Contains("bat"))
	assert.True(t, loader.Set().Contains("sat"))
	assert.Equal(t, []int{1}, loader.LoadedChunkIDs())

	assert.Error(t, loader.Unload(2), "unloading a non-resident chunk fails")
}

func TestLoaderSetChunkCount(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, 1, []string{"sat"})
	writeChunk(t, dir, 2, []string{"at"})
	writeChunk(t, dir, 3, []string{"a"})

	loader := NewLoader(dir, 10, 0)
	require.NoError(t, loader.SetChunkCount(2))
	assert.Equal(t, []int{1, 2}, loader.LoadedChunkIDs())

	require.NoError(t, loader.SetChunkCount(1))
	assert.Equal(t, []int{1}, loader.LoadedChunkIDs())
	assert.False(t, loader.Set().Contains("at"))

	assert.Error(t, loader.SetChunkCount(0))
	assert.Error(t, loader.SetChunkCount(5))
}

func TestLoaderSizeOptions(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, 1, []string{"sat", "at"})
	writeChunk(t, dir, 2, []string{"a"})

	loader := NewLoader(dir, 10, 0)
	options, err := loader.SizeOptions()
	require.NoError(t, err)

	require.Len(t, options, 2)
	assert.Equal(t, 1, options[0].ChunkCount)
	assert.Equal(t, 2, options[0].WordCount)
	assert.Equal(t, 3, options[1].WordCount)
}

func TestLoaderGetStats(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, 1, []string{"sat", "at"})

	loader := NewLoader(dir, 10, 0)
	require.NoError(t, loader.loadChunk(1))

	stats := loader.GetStats()
	assert.Equal(t, 2, stats.TotalWords)
	assert.Equal(t, 1, stats.LoadedChunks)
	assert.Equal(t, 1, stats.AvailableChunks)
	assert.Equal(t, 3, stats.MaxWordLen)
}
