package deck

import (
	"testing"

	"github.com/mmynk/groovematch/internal/models"
)

func cards(ids ...string) []models.SwipeCard {
	out := make([]models.SwipeCard, len(ids))
	for i, id := range ids {
		out[i] = models.SwipeCard{ID: id, Kind: models.CardPerson, Title: id}
	}
	return out
}

func TestAdvanceWrapsAfterLenCalls(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		c := New(cards(ids...))
		start, _ := c.Current()

		for i := 0; i < n; i++ {
			c.Advance()
		}

		got, ok := c.Current()
		if !ok || got.ID != start.ID {
			t.Errorf("n=%d: after %d advances Current = %v, want %v", n, n, got.ID, start.ID)
		}
	}
}

func TestCurrentAndPeekNext(t *testing.T) {
	c := New(cards("a", "b", "c"))

	tests := []struct {
		wantCurrent, wantNext string
	}{
		{"a", "b"},
		{"b", "c"},
		{"c", "a"},
		{"a", "b"},
	}

	for i, tt := range tests {
		cur, _ := c.Current()
		next, _ := c.PeekNext()
		if cur.ID != tt.wantCurrent || next.ID != tt.wantNext {
			t.Errorf("step %d: (current, next) = (%s, %s), want (%s, %s)", i, cur.ID, next.ID, tt.wantCurrent, tt.wantNext)
		}
		// Reads have no side effects.
		c.Current()
		c.PeekNext()
		c.Advance()
	}
}

func TestEmptyDeck(t *testing.T) {
	c := New(nil)

	if _, ok := c.Current(); ok {
		t.Error("Current on empty deck should report no card")
	}
	if _, ok := c.PeekNext(); ok {
		t.Error("PeekNext on empty deck should report no card")
	}
	c.Advance()
	if c.Index() != 0 || c.Len() != 0 {
		t.Errorf("empty deck state changed: index=%d len=%d", c.Index(), c.Len())
	}
}

func TestNewCopiesInput(t *testing.T) {
	in := cards("a", "b")
	c := New(in)
	in[0].ID = "changed"

	cur, _ := c.Current()
	if cur.ID != "a" {
		t.Errorf("Current = %s, want a", cur.ID)
	}
}
