// Package deck tracks the current position in a fixed, pre-loaded list of
// swipe cards. The position wraps, so the deck never runs out.
//
// The ring is a stand-in for paged candidate fetching; it does not page.
package deck

import (
	"slices"

	"github.com/mmynk/groovematch/internal/models"
)

// Cursor is owned by one UI loop and is not safe for concurrent use.
type Cursor struct {
	cards []models.SwipeCard
	index int
}

// New copies cards into a new cursor positioned at the first card.
func New(cards []models.SwipeCard) *Cursor {
	return &Cursor{cards: slices.Clone(cards)}
}

// Len returns the number of cards.
func (c *Cursor) Len() int {
	return len(c.cards)
}

// Index returns the current position.
func (c *Cursor) Index() int {
	return c.index
}

// Current returns the card on top. ok is false for an empty deck.
func (c *Cursor) Current() (models.SwipeCard, bool) {
	if len(c.cards) == 0 {
		return models.SwipeCard{}, false
	}
	return c.cards[c.index], true
}

// PeekNext returns the card right behind the current one, wrapping around.
// With a single card it returns that same card.
func (c *Cursor) PeekNext() (models.SwipeCard, bool) {
	if len(c.cards) == 0 {
		return models.SwipeCard{}, false
	}
	return c.cards[(c.index+1)%len(c.cards)], true
}

// Advance moves to the next card modulo the deck length. No-op when empty.
func (c *Cursor) Advance() {
	if len(c.cards) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.cards)
}
