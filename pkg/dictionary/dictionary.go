// Package dictionary provides the immutable-by-convention word set the chain
// search queries, plus loaders for text word lists and chunked binary files.
package dictionary

import (
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Set is a word set backed by a Patricia trie. Lookups take a read lock so a
// Set can be shared by concurrent searches while a chunk loader is still
// filling it in the background.
type Set struct {
	mu      sync.RWMutex
	trie    *patricia.Trie
	words   int
	maxLen  int
	maxRank int
}

// NewSet creates an empty word set.
func NewSet() *Set {
	return &Set{trie: patricia.NewTrie()}
}

// Add inserts a word with its rank. Re-adding a word overwrites its rank
// without growing the count.
func (s *Set) Add(word string, rank int) {
	if word == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trie.Insert(patricia.Prefix(word), rank) {
		s.words++
	} else {
		s.trie.Set(patricia.Prefix(word), rank)
	}
	if n := len([]rune(word)); n > s.maxLen {
		s.maxLen = n
	}
	if rank > s.maxRank {
		s.maxRank = rank
	}
}

// Contains reports whether word is in the set. It satisfies chain.Dictionary.
func (s *Set) Contains(word string) bool {
	if word == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.Match(patricia.Prefix(word))
}

// Rank returns the stored rank for word and whether it is present.
func (s *Set) Rank(word string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item := s.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	rank, ok := item.(int)
	return rank, ok
}

// WordCount returns the number of words currently in the set.
func (s *Set) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.words
}

// MaxWordLen returns the rune length of the longest word seen so far.
func (s *Set) MaxWordLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxLen
}

// replace swaps in a freshly built trie. Used by the chunk loader when a
// chunk is unloaded and the trie has to be rebuilt without it.
func (s *Set) replace(trie *patricia.Trie, words, maxLen, maxRank int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trie = trie
	s.words = words
	s.maxLen = maxLen
	s.maxRank = maxRank
}
