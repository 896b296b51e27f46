package catalog

import (
	"testing"
)

func TestCardsReferenceKnownEvents(t *testing.T) {
	for _, c := range Cards() {
		if _, ok := Event(c.EventID); !ok {
			t.Errorf("card %s points at unknown event %s", c.ID, c.EventID)
		}
	}
}

func TestEventsSorted(t *testing.T) {
	evs := Events()
	for i := 1; i < len(evs); i++ {
		if evs[i].StartsAt < evs[i-1].StartsAt {
			t.Errorf("event %s starts before %s", evs[i].ID, evs[i-1].ID)
		}
	}
}

func TestCopiesAreIndependent(t *testing.T) {
	Cards()[0].Tags[0] = "mutated"
	if Cards()[0].Tags[0] == "mutated" {
		t.Error("Cards must return a copy")
	}
	Events()[0].Styles[0] = "mutated"
	if Events()[0].Styles[0] == "mutated" {
		t.Error("Events must return a copy")
	}
}

func TestCardsFor(t *testing.T) {
	deck := CardsFor([]string{"kizomba"})
	if len(deck) != len(Cards()) {
		t.Fatalf("expected %d cards, got %d", len(Cards()), len(deck))
	}
	if deck[0].ID != "card-kaya" || deck[1].ID != "card-ines" {
		t.Errorf("expected kizomba cards first in original order, got %s, %s", deck[0].ID, deck[1].ID)
	}
	if deck[2].ID != "card-lucia" {
		t.Errorf("expected the remaining cards in original order, got %s", deck[2].ID)
	}
}
