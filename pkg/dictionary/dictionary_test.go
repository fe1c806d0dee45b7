package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAddAndContains(t *testing.T) {
	set := NewSet()
	set.Add("sat", 1)
	set.Add("at", 2)

	assert.True(t, set.Contains("sat"))
	assert.True(t, set.Contains("at"))
	assert.False(t, set.Contains("a"))
	assert.False(t, set.Contains(""))
	assert.Equal(t, 2, set.WordCount())
	assert.Equal(t, 3, set.MaxWordLen())
}

func TestSetReAddOverwritesRank(t *testing.T) {
	set := NewSet()
	set.Add("sat", 1)
	set.Add("sat", 9)

	assert.Equal(t, 1, set.WordCount())
	rank, ok := set.Rank("sat")
	assert.True(t, ok)
	assert.Equal(t, 9, rank)
}

func TestSetIgnoresEmptyWord(t *testing.T) {
	set := NewSet()
	set.Add("", 1)
	assert.Equal(t, 0, set.WordCount())
}

func TestSetMaxWordLenCountsRunes(t *testing.T) {
	set := NewSet()
	set.Add("día", 1)
	assert.Equal(t, 3, set.MaxWordLen())
}
