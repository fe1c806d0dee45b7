package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapDict is a throwaway membership oracle for tests.
type mapDict map[string]bool

func (d mapDict) Contains(word string) bool { return d[word] }

func dictOf(words ...string) mapDict {
	d := make(mapDict, len(words))
	for _, w := range words {
		d[w] = true
	}
	return d
}

func TestSearchFullChain(t *testing.T) {
	dict := dictOf("starting", "stating", "statin", "satin", "sati", "sat", "at", "a")
	result := NewSearcher(dict).Search("starting")

	require.Len(t, result.Chains, 1)
	assert.Equal(t,
		[]string{"starting", "stating", "statin", "satin", "sati", "sat", "at", "a"},
		result.Chains[0])
	assert.True(t, result.InDictionary)
	assert.Equal(t, 7, result.Depth())
}

func TestSearchRootOnly(t *testing.T) {
	// No single deletion of "cat" is a dictionary word, so the root is the
	// only (and terminal) node.
	dict := dictOf("at", "a")
	result := NewSearcher(dict).Search("cat")

	require.Equal(t, [][]string{{"cat"}}, result.Chains)
	assert.False(t, result.InDictionary)
	assert.Equal(t, 0, result.Depth())
}

func TestSearchEmptyInput(t *testing.T) {
	result := NewSearcher(dictOf("a", "at")).Search("")
	assert.Equal(t, [][]string{{""}}, result.Chains)
}

func TestSearchWholeFrontierPolicy(t *testing.T) {
	// "bat" branches into "at" and "bt"; "bt" dies in the generation where
	// "a" is still alive, so only the chain through "at" survives. The
	// terminal frontier is the last non-empty generation as a whole.
	dict := dictOf("bat", "at", "bt", "a")
	result := NewSearcher(dict).Search("bat")

	assert.Equal(t, [][]string{{"bat", "at", "a"}}, result.Chains)
}

func TestSearchReturnsAllTies(t *testing.T) {
	// Two depth-2 chains exist and both must be returned, even though they
	// end on the same value "a" reached through different parents.
	dict := dictOf("bat", "at", "ba", "a")
	result := NewSearcher(dict).Search("bat")

	assert.Equal(t, [][]string{
		{"bat", "at", "a"},
		{"bat", "ba", "a"},
	}, result.Chains)
}

func TestSearchDedupesWithinParent(t *testing.T) {
	// Deleting either 'a' of "aab" yields "ab"; one child, one chain.
	dict := dictOf("ab", "a")
	result := NewSearcher(dict).Search("aab")

	assert.Equal(t, [][]string{{"aab", "ab", "a"}}, result.Chains)
}

func TestSearchRootNotInDictionaryStillSearches(t *testing.T) {
	dict := dictOf("at", "a")
	result := NewSearcher(dict).Search("aat")

	assert.False(t, result.InDictionary)
	assert.Equal(t, [][]string{{"aat", "at", "a"}}, result.Chains)
}

func TestSearchUnicodeDeletion(t *testing.T) {
	// Deletion must operate on runes, not bytes.
	dict := dictOf("día", "ía", "a")
	result := NewSearcher(dict).Search("día")

	assert.Equal(t, [][]string{{"día", "ía", "a"}}, result.Chains)
}

func TestSearchChainProperties(t *testing.T) {
	dict := dictOf(
		"planet", "plane", "plan", "pane", "pan", "an", "a",
		"lane", "lan", "late", "ate", "at",
	)
	inputs := []string{"planet", "plane", "pane", "lane", "late", "zzz", ""}

	for _, input := range inputs {
		result := NewSearcher(dict).Search(input)
		require.NotEmpty(t, result.Chains, "input %q", input)

		depth := len(result.Chains[0]) - 1
		for _, c := range result.Chains {
			// All ties share the maximal depth.
			assert.Len(t, c, depth+1, "input %q", input)
			assert.Equal(t, input, c[0], "chains start at the root")

			for i := 1; i < len(c); i++ {
				// Length monotonicity and dictionary membership.
				assert.Equal(t, len([]rune(c[i-1]))-1, len([]rune(c[i])), "input %q", input)
				assert.True(t, dict.Contains(c[i]), "word %q of chain for %q", c[i], input)
				// Deletion validity.
				assert.True(t, isDeletionOf(c[i-1], c[i]), "%q -> %q", c[i-1], c[i])
			}

			// Maximality: the final word has no further deletion in dict.
			last := []rune(c[len(c)-1])
			for i := range last {
				candidate := string(append(append([]rune{}, last[:i]...), last[i+1:]...))
				assert.False(t, dict.Contains(candidate),
					"chain for %q extendable via %q", input, candidate)
			}
		}
	}
}

func TestSearchTerminationBound(t *testing.T) {
	// A dictionary where every substring chain survives; the search still
	// runs at most len(input) generations before expansion dries up.
	dict := dictOf("aaaaaa", "aaaaa", "aaaa", "aaa", "aa", "a")
	result := NewSearcher(dict).Search("aaaaaa")

	require.Len(t, result.Chains, 1)
	assert.Len(t, result.Chains[0], 6)
	assert.Equal(t, "a", result.Chains[0][5])
}

// isDeletionOf reports whether child is parent with one rune removed.
func isDeletionOf(parent, child string) bool {
	pr, cr := []rune(parent), []rune(child)
	if len(cr) != len(pr)-1 {
		return false
	}
	for i := range pr {
		candidate := string(append(append([]rune{}, pr[:i]...), pr[i+1:]...))
		if candidate == child {
			return true
		}
	}
	return false
}
