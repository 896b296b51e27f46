package swipe

import (
	"math/rand/v2"
	"sync"

	"github.com/mmynk/groovematch/internal/models"
)

// Matcher decides whether a right swipe on card is a match.
type Matcher interface {
	Match(card models.SwipeCard) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(card models.SwipeCard) bool

func (f MatcherFunc) Match(card models.SwipeCard) bool {
	return f(card)
}

// CoinFlip matches with probability 0.5 regardless of the card.
//
// It is a placeholder: nothing here knows whether the other party liked the
// user back. Replace it with a reciprocal check once the backend records
// likes; do not read meaning into its results.
type CoinFlip struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewCoinFlip returns a coin flip over src, or over a randomly seeded source
// when src is nil.
func NewCoinFlip(src rand.Source) *CoinFlip {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &CoinFlip{rng: rand.New(src)}
}

func (c *CoinFlip) Match(models.SwipeCard) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64() < 0.5
}
