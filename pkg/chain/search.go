package chain

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Searcher runs deletion-chain searches against a fixed dictionary.
// A single Searcher is safe to share between goroutines: each Search call
// builds its own tree and the dictionary is only ever read.
type Searcher struct {
	dict Dictionary
}

// NewSearcher creates a Searcher over dict.
func NewSearcher(dict Dictionary) *Searcher {
	return &Searcher{dict: dict}
}

// Search explores every deletion chain starting from word and returns the
// maximal ones. The root is part of the tree whether or not word is in the
// dictionary; Result.InDictionary carries that fact for callers that want to
// warn about it.
//
// The frontier loop keeps whole generations together: it stops at the first
// generation that produces no children, and the previous generation as a
// whole holds the terminal leaves. Branches that died out earlier are not in
// that frontier, so only chains of maximal depth are reconstructed. Each
// generation shrinks the word by one rune, so the loop runs at most
// len(word) times.
func (s *Searcher) Search(word string) Result {
	t := newTree(word)
	frontier := []int{0}

	generation := 0
	for {
		next := expand(t, frontier, s.dict)
		if len(next) == 0 {
			break
		}
		frontier = next
		generation++
	}
	log.Debugf("search for %q: %d generations, %d nodes", word, generation, len(t.nodes))

	chains := make([][]string, 0, len(frontier))
	for _, leaf := range frontier {
		chains = append(chains, reconstruct(t, leaf))
	}
	sortChains(chains)

	return Result{
		Input:        word,
		InDictionary: s.dict.Contains(word),
		Chains:       chains,
	}
}

// sortChains orders equal-length chains lexicographically so results are
// deterministic across runs.
func sortChains(chains [][]string) {
	sort.Slice(chains, func(i, j int) bool {
		a, b := chains[i], chains[j]
		for k := range a {
			if k >= len(b) {
				return false
			}
			if c := strings.Compare(a[k], b[k]); c != 0 {
				return c < 0
			}
		}
		return len(a) < len(b)
	})
}
