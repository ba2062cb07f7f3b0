// Package flashcards holds the card deck browsed in flashcard mode: a
// category-filtered item list with its own order, position and flip state.
package flashcards

import (
	"math/rand/v2"

	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/vocab"
)

// Deck is a list of cards viewed one at a time. Navigation stops at both
// ends and every operation is a no-op on an empty deck.
type Deck struct {
	items    []vocab.Item
	order    []int
	index    int
	flipped  bool
	shuffled bool
	intn     func(int) int
}

// NewDeck returns an empty, unshuffled deck. A nil intn uses the global
// random source.
func NewDeck(intn func(int) int) *Deck {
	if intn == nil {
		intn = rand.IntN
	}
	return &Deck{intn: intn}
}

// Load replaces the cards with items and rebuilds the order from the first
// card. The shuffle setting is kept.
func (d *Deck) Load(items []vocab.Item) {
	d.items = append([]vocab.Item(nil), items...)
	d.rebuild()
}

// Reset loads items with shuffling off, as when switching datasets.
func (d *Deck) Reset(items []vocab.Item) {
	d.shuffled = false
	d.Load(items)
}

func (d *Deck) rebuild() {
	d.order = make([]int, len(d.items))
	for i := range d.order {
		d.order[i] = i
	}
	if d.shuffled {
		quiz.ShuffleInts(d.order, d.intn)
	}
	d.index = 0
	d.flipped = false
}

func (d *Deck) Len() int       { return len(d.items) }
func (d *Deck) Empty() bool    { return len(d.items) == 0 }
func (d *Deck) Index() int     { return d.index }
func (d *Deck) Flipped() bool  { return d.flipped }
func (d *Deck) Shuffled() bool { return d.shuffled }
func (d *Deck) Order() []int   { return append([]int(nil), d.order...) }

// Current returns the card at the current position.
func (d *Deck) Current() (vocab.Item, bool) {
	if d.Empty() {
		return vocab.Item{}, false
	}
	return d.items[d.order[d.index]], true
}

// Flip turns the current card over.
func (d *Deck) Flip() bool {
	if d.Empty() {
		return false
	}
	d.flipped = !d.flipped
	return true
}

// Next moves one card forward. It reports false at the last card.
func (d *Deck) Next() bool { return d.move(1) }

// Prev moves one card back. It reports false at the first card.
func (d *Deck) Prev() bool { return d.move(-1) }

func (d *Deck) move(step int) bool {
	i := d.index + step
	if d.Empty() || i < 0 || i >= len(d.order) {
		return false
	}
	d.index = i
	d.flipped = false
	return true
}

// ToggleShuffle switches between dataset order and a fresh random order,
// starting again from the first card.
func (d *Deck) ToggleShuffle() bool {
	if d.Empty() {
		return false
	}
	d.shuffled = !d.shuffled
	d.rebuild()
	return true
}
