package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/shashir/linguistic-chain/internal/utils"
)

// LoadTextFile reads a newline-delimited word list (one word per line, no
// further parsing) into a fresh Set. Lines are trimmed and lowercased; blank
// lines are skipped. With filter set, entries that fail the input filter
// (digits, symbols, repeated single letters) are dropped as well.
func LoadTextFile(path string, filter bool) (*Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	set := NewSet()
	scanner := bufio.NewScanner(file)
	rank := 0
	skipped := 0
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		if filter && !utils.IsValidWord(word) {
			skipped++
			continue
		}
		rank++
		set.Add(word, rank)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	log.Debugf("Loaded %d words from %s (%d filtered)", set.WordCount(), path, skipped)
	return set, nil
}

// Loader manages lazy loading of chunked binary word files from a data
// directory. Chunks are named chain_0001.bin, chain_0002.bin, ... and are
// queued to a background goroutine so large dictionaries do not block
// startup. The Set it fills stays usable for lookups the whole time.
type Loader struct {
	dirPath      string
	chunkSize    int
	maxWords     int
	set          *Set
	loadedChunks map[int]bool
	chunkWords   map[int]map[string]int
	mu           sync.RWMutex
	loadingCh    chan int
	done         chan struct{}
	errorCount   map[int]int
	maxRetries   int
}

// ChunkInfo contains metadata about one chunk file on disk.
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// Stats is a snapshot of the loading state.
type Stats struct {
	TotalWords      int
	LoadedChunks    int
	AvailableChunks int
	MaxWordLen      int
	IsLoading       bool
}

// SizeOption describes one selectable dictionary size for clients.
type SizeOption struct {
	ChunkCount int
	WordCount  int
	SizeLabel  string
}

// NewLoader creates a lazy chunk loader over dirPath.
func NewLoader(dirPath string, chunkSize, maxWords int) *Loader {
	return &Loader{
		dirPath:      dirPath,
		chunkSize:    chunkSize,
		maxWords:     maxWords,
		set:          NewSet(),
		loadedChunks: make(map[int]bool),
		chunkWords:   make(map[int]map[string]int),
		loadingCh:    make(chan int, 10),
		done:         make(chan struct{}),
		errorCount:   make(map[int]int),
		maxRetries:   3,
	}
}

// Set returns the word set the loader fills. Safe to hand to searches while
// loading is still in progress.
func (l *Loader) Set() *Set {
	return l.set
}

// GetAvailable scans the data directory for chunk files, sorted by ID.
func (l *Loader) GetAvailable() ([]ChunkInfo, error) {
	pattern := filepath.Join(l.dirPath, "chain_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		basename := filepath.Base(file)
		idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "chain_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := readChunkHeader(file)
		if err != nil {
			log.Warnf("Failed to read header of chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{
			ChunkID:   chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// readChunkHeader reads the word count from a chunk file's header.
func readChunkHeader(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// Start scans for chunks, spawns the background loader and queues the initial
// chunks up to the configured word limit.
func (l *Loader) Start() error {
	chunks, err := l.GetAvailable()
	if err != nil {
		return fmt.Errorf("failed to get available chunks: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", l.dirPath)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	go l.backgroundLoader()

	wordsToLoad := l.maxWords
	if wordsToLoad == 0 {
		for _, chunk := range chunks {
			wordsToLoad += chunk.WordCount
		}
	}

	queuedWords := 0
	for _, chunk := range chunks {
		if queuedWords >= wordsToLoad {
			break
		}
		select {
		case l.loadingCh <- chunk.ChunkID:
			log.Debugf("Queued chunk %d for loading", chunk.ChunkID)
		case <-time.After(100 * time.Millisecond):
			log.Warnf("Loading queue full, chunk %d will be loaded later", chunk.ChunkID)
		}
		queuedWords += chunk.WordCount
	}
	return nil
}

// backgroundLoader drains the queue, retrying failed chunks with backoff.
func (l *Loader) backgroundLoader() {
	for {
		select {
		case chunkID := <-l.loadingCh:
			if err := l.loadChunk(chunkID); err != nil {
				log.Errorf("Failed to load chunk %d: %v", chunkID, err)

				l.mu.Lock()
				l.errorCount[chunkID]++
				errorCount := l.errorCount[chunkID]
				l.mu.Unlock()

				if errorCount < l.maxRetries {
					log.Debugf("Retrying chunk %d (attempt %d/%d)", chunkID, errorCount+1, l.maxRetries)
					go func(id int) {
						time.Sleep(time.Duration(errorCount) * time.Second)
						select {
						case l.loadingCh <- id:
						case <-l.done:
						}
					}(chunkID)
				} else {
					log.Errorf("Chunk %d failed %d times, giving up", chunkID, l.maxRetries)
				}
			}
		case <-l.done:
			return
		}
	}
}

// loadChunk reads one chunk file into the set.
// Layout: int32 LE entry count, then per entry a uint16 LE byte length, the
// word bytes, and a uint16 LE rank.
func (l *Loader) loadChunk(chunkID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loadedChunks[chunkID] {
		return nil
	}

	filename := filepath.Join(l.dirPath, fmt.Sprintf("chain_%04d.bin", chunkID))
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}
	log.Debugf("Loading chunk %d with %d words", chunkID, totalEntries)

	words := make(map[string]int, totalEntries)
	for count := 0; count < int(totalEntries); count++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return fmt.Errorf("failed to read rank: %w", err)
		}

		word := string(wordBytes)
		words[word] = int(rank)
		l.set.Add(word, int(rank))
	}

	l.chunkWords[chunkID] = words
	l.loadedChunks[chunkID] = true
	log.Debugf("Chunk %d loaded: %d words", chunkID, len(words))
	return nil
}

// Unload removes a chunk's words and rebuilds the trie without them.
func (l *Loader) Unload(chunkID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loadedChunks[chunkID] {
		return fmt.Errorf("chunk %d is not loaded", chunkID)
	}
	log.Debugf("Unloading chunk %d", chunkID)

	delete(l.loadedChunks, chunkID)
	delete(l.chunkWords, chunkID)
	l.rebuild()
	return nil
}

// rebuild reconstructs the set's trie from the chunks still loaded.
// Caller holds l.mu.
func (l *Loader) rebuild() {
	trie := patricia.NewTrie()
	words, maxLen, maxRank := 0, 0, 0
	for chunkID, loaded := range l.loadedChunks {
		if !loaded {
			continue
		}
		for word, rank := range l.chunkWords[chunkID] {
			trie.Insert(patricia.Prefix(word), rank)
			words++
			if n := len([]rune(word)); n > maxLen {
				maxLen = n
			}
			if rank > maxRank {
				maxRank = rank
			}
		}
	}
	l.set.replace(trie, words, maxLen, maxRank)
	log.Debugf("Trie rebuilt with %d loaded chunks", len(l.loadedChunks))
}

// SetChunkCount loads or unloads chunks until exactly target chunks are
// resident. Used by the server's dictionary management requests.
func (l *Loader) SetChunkCount(target int) error {
	if target < 1 {
		return fmt.Errorf("minimum dictionary size is 1 chunk")
	}
	chunks, err := l.GetAvailable()
	if err != nil {
		return err
	}
	if target > len(chunks) {
		return fmt.Errorf("only %d chunks available, cannot load %d", len(chunks), target)
	}

	for _, chunk := range chunks {
		l.mu.RLock()
		loaded := l.loadedChunks[chunk.ChunkID]
		l.mu.RUnlock()

		if chunk.ChunkID <= target && !loaded {
			if err := l.loadChunk(chunk.ChunkID); err != nil {
				return err
			}
		} else if chunk.ChunkID > target && loaded {
			if err := l.Unload(chunk.ChunkID); err != nil {
				return err
			}
		}
	}
	return nil
}

// SizeOptions lists the selectable dictionary sizes, one per chunk prefix.
func (l *Loader) SizeOptions() ([]SizeOption, error) {
	chunks, err := l.GetAvailable()
	if err != nil {
		return nil, err
	}

	var options []SizeOption
	total := 0
	for i, chunk := range chunks {
		total += chunk.WordCount
		options = append(options, SizeOption{
			ChunkCount: i + 1,
			WordCount:  total,
			SizeLabel:  fmt.Sprintf("%dk words", (total+500)/1000),
		})
	}
	return options, nil
}

// LoadedChunkIDs returns the IDs of resident chunks in ascending order.
func (l *Loader) LoadedChunkIDs() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var ids []int
	for chunkID, loaded := range l.loadedChunks {
		if loaded {
			ids = append(ids, chunkID)
		}
	}
	sort.Ints(ids)
	return ids
}

// GetStats returns a snapshot of the loading state.
func (l *Loader) GetStats() Stats {
	chunks, _ := l.GetAvailable()

	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		TotalWords:      l.set.WordCount(),
		LoadedChunks:    len(l.loadedChunks),
		AvailableChunks: len(chunks),
		MaxWordLen:      l.set.MaxWordLen(),
		IsLoading:       len(l.loadingCh) > 0,
	}
}

// Stop terminates the background loading goroutine.
func (l *Loader) Stop() {
	close(l.done)
}
