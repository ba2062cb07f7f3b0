package flashcards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/verbiz/internal/vocab"
)

func fourWords() []vocab.Item {
	return []vocab.Item{
		{Infinitive: "go", Translation: "идти"},
		{Infinitive: "see", Translation: "видеть"},
		{Infinitive: "take", Translation: "брать"},
		{Infinitive: "write", Translation: "писать"},
	}
}

// first always picks index 0, which makes the shuffle predictable.
func first(int) int { return 0 }

func TestDeckNavigationStopsAtBounds(t *testing.T) {
	d := NewDeck(first)
	d.Load(fourWords())

	assert.False(t, d.Prev(), "no card before the first")
	assert.Equal(t, 0, d.Index())

	for i := 1; i < 4; i++ {
		require.True(t, d.Next())
		assert.Equal(t, i, d.Index())
	}
	assert.False(t, d.Next(), "no wrap past the last card")
	item, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, "write", item.Infinitive)

	require.True(t, d.Prev())
	item, _ = d.Current()
	assert.Equal(t, "take", item.Infinitive)
}

func TestDeckFlip(t *testing.T) {
	d := NewDeck(first)
	d.Load(fourWords())

	require.True(t, d.Flip())
	assert.True(t, d.Flipped())
	require.True(t, d.Next())
	assert.False(t, d.Flipped(), "moving shows the front of the next card")

	require.True(t, d.Flip())
	require.True(t, d.Prev())
	assert.False(t, d.Flipped())

	require.True(t, d.Flip())
	assert.False(t, d.Prev())
	assert.True(t, d.Flipped(), "a refused move keeps the card as it is")
}

func TestDeckShuffle(t *testing.T) {
	d := NewDeck(first)
	d.Load(fourWords())
	d.Next()
	d.Flip()

	require.True(t, d.ToggleShuffle())
	assert.True(t, d.Shuffled())
	assert.Equal(t, []int{1, 2, 3, 0}, d.Order())
	assert.Equal(t, 0, d.Index(), "shuffling starts from the first card")
	assert.False(t, d.Flipped())
	item, _ := d.Current()
	assert.Equal(t, "see", item.Infinitive)

	require.True(t, d.ToggleShuffle())
	assert.False(t, d.Shuffled())
	assert.Equal(t, []int{0, 1, 2, 3}, d.Order())
}

func TestDeckLoadKeepsShuffle(t *testing.T) {
	d := NewDeck(first)
	d.Load(fourWords())
	d.ToggleShuffle()
	d.Next()

	d.Load(fourWords()[:3])
	assert.True(t, d.Shuffled())
	assert.Equal(t, 0, d.Index())
	assert.ElementsMatch(t, []int{0, 1, 2}, d.Order())

	d.Reset(fourWords())
	assert.False(t, d.Shuffled())
	assert.Equal(t, []int{0, 1, 2, 3}, d.Order())
}

func TestDeckEmpty(t *testing.T) {
	d := NewDeck(nil)
	d.Load(nil)

	assert.True(t, d.Empty())
	_, ok := d.Current()
	assert.False(t, ok)
	assert.False(t, d.Next())
	assert.False(t, d.Prev())
	assert.False(t, d.Flip())
	assert.False(t, d.ToggleShuffle())
	assert.False(t, d.Shuffled(), "shuffle cannot be toggled on an empty deck")
}
