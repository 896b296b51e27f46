package swipe

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/mmynk/groovematch/internal/deck"
	"github.com/mmynk/groovematch/internal/models"
)

func testDeck() *deck.Cursor {
	return deck.New([]models.SwipeCard{
		{ID: "c1", Kind: models.CardPerson, Title: "Lucia", EventID: "e1"},
		{ID: "c2", Kind: models.CardVenue, Title: "La Clave", EventID: "e2"},
		{ID: "c3", Kind: models.CardPerson, Title: "Marco", EventID: "e3"},
	})
}

// settle runs the animation clock until the engine is idle.
func settle(t *testing.T, e *Engine) (Outcome, bool) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if out, ok := e.Step(16 * time.Millisecond); ok {
			return out, true
		}
		if !e.Animating() {
			return Outcome{}, false
		}
	}
	t.Fatal("engine never settled")
	return Outcome{}, false
}

func drag(e *Engine, dx float64) State {
	e.Press()
	e.Move(dx/2, 0)
	e.Move(dx, 37)
	return e.Release()
}

func TestCommitThresholdIsExclusive(t *testing.T) {
	threshold := DefaultConfig().CommitThreshold

	tests := []struct {
		name   string
		offset float64
		want   State
	}{
		{"exactly at right threshold", threshold, Resetting},
		{"one past right threshold", threshold + 1, ResolvingRight},
		{"exactly at left threshold", -threshold, Resetting},
		{"one past left threshold", -threshold - 1, ResolvingLeft},
		{"small drag", 10, Resetting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(testDeck())
			if got := drag(e, tt.offset); got != tt.want {
				t.Errorf("Release() with offset %v = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestLeftResolutionNeverMatches(t *testing.T) {
	calls := 0
	e := New(testDeck(), WithMatcher(MatcherFunc(func(models.SwipeCard) bool {
		calls++
		return true
	})))

	for i := 0; i < 1000; i++ {
		if i%2 == 0 {
			drag(e, -300)
		} else if !e.Dislike() {
			t.Fatalf("trial %d: Dislike rejected in state %v", i, e.State())
		}
		out, ok := settle(t, e)
		if !ok {
			t.Fatalf("trial %d: no outcome", i)
		}
		if out.Direction != Left || out.Matched {
			t.Fatalf("trial %d: outcome %+v, want unmatched left", i, out)
		}
	}
	if calls != 0 {
		t.Errorf("matcher consulted %d times for left swipes", calls)
	}
}

func TestRightResolutionUsesCoinFlip(t *testing.T) {
	e := New(testDeck(), WithMatcher(NewCoinFlip(rand.NewPCG(42, 1))))

	matches := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		e.Like()
		out, ok := settle(t, e)
		if !ok || out.Direction != Right {
			t.Fatalf("trial %d: outcome %+v ok=%v", i, out, ok)
		}
		if out.Matched {
			matches++
		}
	}
	if matches < 400 || matches > 600 {
		t.Errorf("matches = %d of %d, want roughly half", matches, trials)
	}
}

func TestResolutionAdvancesDeckAndEmitsCommittedCard(t *testing.T) {
	cur := testDeck()
	var emitted []Outcome
	e := New(cur, OnOutcome(func(o Outcome) { emitted = append(emitted, o) }))

	if got := drag(e, 250); got != ResolvingRight {
		t.Fatalf("Release() = %v, want ResolvingRight", got)
	}
	if cur.Index() != 0 {
		t.Error("deck advanced before the animation finished")
	}

	out, ok := settle(t, e)
	if !ok {
		t.Fatal("expected an outcome")
	}
	if out.Card.ID != "c1" {
		t.Errorf("outcome card = %s, want c1", out.Card.ID)
	}
	if next, _ := cur.Current(); next.ID != "c2" {
		t.Errorf("current card after resolution = %s, want c2", next.ID)
	}
	if len(emitted) != 1 || emitted[0].Card.ID != "c1" {
		t.Errorf("callback outcomes = %+v", emitted)
	}
	if e.State() != Idle || e.Offset() != 0 {
		t.Errorf("engine not reset: state=%v offset=%v", e.State(), e.Offset())
	}
}

func TestResolvingAnimatesOffscreen(t *testing.T) {
	e := New(testDeck())
	e.Dislike()

	e.Step(DefaultConfig().ResolveDuration / 2)
	if e.Offset() >= 0 || e.Offset() <= -DefaultConfig().OffscreenDistance {
		t.Errorf("mid-animation offset = %v, want between -offscreen and 0", e.Offset())
	}
	if e.Snapshot().Resolution != Left {
		t.Errorf("snapshot resolution = %v, want left", e.Snapshot().Resolution)
	}
}

func TestSpringBackEmitsNothing(t *testing.T) {
	cur := testDeck()
	called := false
	e := New(cur, OnOutcome(func(Outcome) { called = true }))

	drag(e, 80)
	if e.State() != Resetting {
		t.Fatalf("state = %v, want Resetting", e.State())
	}

	e.Step(DefaultConfig().ResetDuration / 2)
	if e.Offset() <= 0 || e.Offset() >= 80 {
		t.Errorf("mid spring-back offset = %v, want between 0 and 80", e.Offset())
	}

	if _, ok := settle(t, e); ok {
		t.Error("spring-back produced an outcome")
	}
	if called {
		t.Error("callback invoked on spring-back")
	}
	if e.State() != Idle || e.Offset() != 0 || cur.Index() != 0 {
		t.Errorf("after spring-back state=%v offset=%v index=%d", e.State(), e.Offset(), cur.Index())
	}
}

func TestMalformedGestureResetsToIdle(t *testing.T) {
	cur := testDeck()
	e := New(cur)

	t.Run("release without move", func(t *testing.T) {
		e.Press()
		if got := e.Release(); got != Idle {
			t.Errorf("Release() = %v, want Idle", got)
		}
		if e.Animating() {
			t.Error("no animation expected")
		}
	})

	t.Run("release without press", func(t *testing.T) {
		if got := e.Release(); got != Idle {
			t.Errorf("Release() = %v, want Idle", got)
		}
	})

	t.Run("move without press is ignored", func(t *testing.T) {
		e.Move(500, 0)
		if e.Offset() != 0 || e.State() != Idle {
			t.Errorf("state=%v offset=%v after stray move", e.State(), e.Offset())
		}
	})

	if cur.Index() != 0 {
		t.Errorf("deck advanced by malformed gestures: index %d", cur.Index())
	}
}

func TestReleaseDuringResolutionKeepsCommit(t *testing.T) {
	tests := []struct {
		name   string
		commit func(e *Engine) bool
		want   Direction
	}{
		{"like", (*Engine).Like, Right},
		{"dislike", (*Engine).Dislike, Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := testDeck()
			var outcomes []Outcome
			e := New(cur, OnOutcome(func(o Outcome) { outcomes = append(outcomes, o) }))

			if !tt.commit(e) {
				t.Fatal("commit rejected from idle")
			}
			resolving := e.State()
			if got := e.Release(); got != resolving {
				t.Errorf("Release() during resolution = %v, want %v", got, resolving)
			}

			out, ok := settle(t, e)
			if !ok {
				t.Fatal("expected an outcome after the animation")
			}
			if out.Direction != tt.want || out.Card.ID != "c1" {
				t.Errorf("outcome = %+v, want %v on c1", out, tt.want)
			}
			if len(outcomes) != 1 {
				t.Errorf("got %d outcomes, want 1", len(outcomes))
			}
			if next, _ := cur.Current(); next.ID != "c2" {
				t.Errorf("deck current = %s, want c2", next.ID)
			}
		})
	}
}

func TestReleaseDuringResetKeepsAnimating(t *testing.T) {
	e := New(testDeck())
	if got := drag(e, 40); got != Resetting {
		t.Fatalf("drag = %v, want Resetting", got)
	}
	e.Step(16 * time.Millisecond)
	offset := e.Offset()

	if got := e.Release(); got != Resetting {
		t.Errorf("Release() during reset = %v, want Resetting", got)
	}
	if e.Offset() != offset {
		t.Errorf("offset jumped from %v to %v", offset, e.Offset())
	}
	if _, ok := settle(t, e); ok {
		t.Error("spring-back must not emit an outcome")
	}
	if e.State() != Idle {
		t.Errorf("state = %v, want Idle", e.State())
	}
}

func TestRotation(t *testing.T) {
	e := New(testDeck())
	e.Press()

	tests := []struct {
		offset float64
		want   float64
	}{
		{0, 0},
		{100, 15},
		{-100, -15},
		{200, 30},
		{1000, 30},
		{-1000, -30},
	}

	for _, tt := range tests {
		e.Move(tt.offset, 0)
		if got := e.Rotation(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Rotation at offset %v = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestDiscreteControlsOnlyFromIdle(t *testing.T) {
	e := New(testDeck())

	e.Press()
	if e.Like() {
		t.Error("Like accepted while dragging")
	}
	e.Move(300, 0)
	e.Release()
	if e.Dislike() {
		t.Error("Dislike accepted while resolving")
	}
	if e.Press() {
		t.Error("Press accepted while resolving")
	}
	settle(t, e)
	if !e.Like() {
		t.Error("Like rejected from idle")
	}
}

func TestEmptyDeckRejectsInput(t *testing.T) {
	e := New(deck.New(nil))
	if e.Press() || e.Like() || e.Dislike() {
		t.Error("empty deck accepted input")
	}
	if _, ok := e.Step(time.Second); ok {
		t.Error("empty deck produced an outcome")
	}
}
