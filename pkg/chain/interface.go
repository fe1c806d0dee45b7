// Package chain is the core, implementing the deletion-chain search over a word
// dictionary: frontier expansion, the parent-linked search tree and path
// reconstruction for the terminal leaves.
package chain

// Dictionary is the membership oracle the search runs against. Implementations
// must be safe for concurrent readers; the search never mutates the dictionary.
type Dictionary interface {
	// Contains reports whether word is a known dictionary word.
	Contains(word string) bool
}

// Finder defines the interface for deletion-chain search engines
type Finder interface {
	// Search returns all maximal deletion chains starting from word
	Search(word string) Result
}

// Result holds the outcome of a single search.
type Result struct {
	// Input is the word the search started from.
	Input string
	// InDictionary reports whether Input itself is a dictionary word.
	// It is informational only and never gates the search.
	InDictionary bool
	// Chains are the maximal chains, each running root-first. Every chain has
	// the same length; chains are ordered lexicographically by their words.
	Chains [][]string
}

// Depth returns the number of deletions in each maximal chain.
func (r Result) Depth() int {
	if len(r.Chains) == 0 {
		return 0
	}
	return len(r.Chains[0]) - 1
}
