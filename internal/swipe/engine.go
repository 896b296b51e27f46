// Package swipe is the gesture engine behind the card stack: it follows a
// horizontal drag, decides on release whether the card was committed left,
// committed right or should spring back, animates the result and emits the
// outcome.
//
// An Engine belongs to one UI loop. It is not safe for concurrent use, and
// time only moves when the owner calls Step.
package swipe

import (
	"math"
	"time"

	"github.com/mmynk/groovematch/internal/deck"
	"github.com/mmynk/groovematch/internal/models"
)

// State is the engine's position in the gesture lifecycle.
type State int

const (
	Idle State = iota
	Dragging
	ResolvingLeft
	ResolvingRight
	Resetting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case ResolvingLeft:
		return "resolving_left"
	case ResolvingRight:
		return "resolving_right"
	case Resetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Direction is the committed side of a resolution.
type Direction int

const (
	None Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Config holds the gesture geometry and animation timing. Distances are in
// the same units as the deltas passed to Move.
type Config struct {
	// CommitThreshold must be exceeded, not reached, to commit.
	CommitThreshold float64
	// MaxDisplacement is the offset at which rotation reaches MaxRotation.
	MaxDisplacement float64
	// MaxRotation in degrees, applied symmetrically.
	MaxRotation float64
	// OffscreenDistance is where a committed card is animated to.
	OffscreenDistance float64

	ResolveDuration time.Duration
	ResetDuration   time.Duration
}

// DefaultConfig returns the stock geometry and timing.
func DefaultConfig() Config {
	return Config{
		CommitThreshold:   120,
		MaxDisplacement:   200,
		MaxRotation:       30,
		OffscreenDistance: 600,
		ResolveDuration:   250 * time.Millisecond,
		ResetDuration:     200 * time.Millisecond,
	}
}

// Outcome is emitted once per committed card, after its exit animation.
type Outcome struct {
	Card      models.SwipeCard
	Direction Direction
	// Matched is only ever true for Right.
	Matched bool
}

// GestureState is a read-only view of the engine.
type GestureState struct {
	State      State
	Offset     float64
	Rotation   float64
	Resolution Direction
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithMatcher replaces the default coin flip.
func WithMatcher(m Matcher) Option {
	return func(e *Engine) { e.matcher = m }
}

// OnOutcome registers a callback run for every emitted outcome.
func OnOutcome(fn func(Outcome)) Option {
	return func(e *Engine) { e.onOutcome = fn }
}

// Engine drives one card stack.
type Engine struct {
	cfg       Config
	deck      *deck.Cursor
	matcher   Matcher
	onOutcome func(Outcome)

	state  State
	offset float64
	moved  bool

	animFrom     float64
	animTo       float64
	animElapsed  time.Duration
	animDuration time.Duration

	// committed is the card captured when a resolution starts.
	committed models.SwipeCard
}

// New builds an engine over cur.
func New(cur *deck.Cursor, opts ...Option) *Engine {
	e := &Engine{
		cfg:  DefaultConfig(),
		deck: cur,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.matcher == nil {
		e.matcher = NewCoinFlip(nil)
	}
	return e
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Config returns the engine's tuning.
func (e *Engine) Config() Config { return e.cfg }

// Offset returns the horizontal displacement.
func (e *Engine) Offset() float64 { return e.offset }

// Rotation maps the offset linearly onto [-MaxRotation, MaxRotation],
// clamped at both ends.
func (e *Engine) Rotation() float64 {
	if e.cfg.MaxDisplacement == 0 {
		return 0
	}
	r := e.offset / e.cfg.MaxDisplacement * e.cfg.MaxRotation
	return math.Max(-e.cfg.MaxRotation, math.Min(e.cfg.MaxRotation, r))
}

// Animating reports whether Step has work to do.
func (e *Engine) Animating() bool {
	return e.state == ResolvingLeft || e.state == ResolvingRight || e.state == Resetting
}

// Snapshot returns the current gesture state.
func (e *Engine) Snapshot() GestureState {
	gs := GestureState{State: e.state, Offset: e.offset, Rotation: e.Rotation()}
	switch e.state {
	case ResolvingLeft:
		gs.Resolution = Left
	case ResolvingRight:
		gs.Resolution = Right
	}
	return gs
}

// Press starts a drag. It is ignored unless the engine is idle and the deck
// has a card.
func (e *Engine) Press() bool {
	if e.state != Idle {
		return false
	}
	if _, ok := e.deck.Current(); !ok {
		return false
	}
	e.state = Dragging
	e.offset = 0
	e.moved = false
	return true
}

// Move sets the offset to the raw horizontal delta since Press. The vertical
// delta is accepted and ignored; cards only travel sideways.
func (e *Engine) Move(dx, _ float64) {
	if e.state != Dragging {
		return
	}
	e.offset = dx
	e.moved = true
}

// Release ends the drag and returns the state it resolved to. A release
// without any prior move, or while idle, resets straight to Idle. A release
// during an animation changes nothing; a committed swipe always finishes.
func (e *Engine) Release() State {
	if e.Animating() {
		return e.state
	}
	if e.state != Dragging || !e.moved {
		e.toIdle()
		return e.state
	}

	switch {
	case e.offset > e.cfg.CommitThreshold:
		e.commit(Right)
	case e.offset < -e.cfg.CommitThreshold:
		e.commit(Left)
	default:
		e.state = Resetting
		e.animate(0, e.cfg.ResetDuration)
	}
	return e.state
}

// Like commits the current card to the right without a drag.
func (e *Engine) Like() bool {
	return e.discrete(Right)
}

// Dislike commits the current card to the left without a drag.
func (e *Engine) Dislike() bool {
	return e.discrete(Left)
}

func (e *Engine) discrete(dir Direction) bool {
	if e.state != Idle {
		return false
	}
	if _, ok := e.deck.Current(); !ok {
		return false
	}
	e.offset = 0
	e.commit(dir)
	return true
}

// commit is the single path into a resolution, shared by drags and the
// discrete controls.
func (e *Engine) commit(dir Direction) {
	e.committed, _ = e.deck.Current()
	target := e.cfg.OffscreenDistance
	if dir == Left {
		e.state = ResolvingLeft
		target = -target
	} else {
		e.state = ResolvingRight
	}
	e.animate(target, e.cfg.ResolveDuration)
}

func (e *Engine) animate(to float64, d time.Duration) {
	e.animFrom = e.offset
	e.animTo = to
	e.animElapsed = 0
	e.animDuration = d
}

// Step advances the animation clock by dt. When a resolution finishes it
// advances the deck, emits the outcome and returns it with ok true.
func (e *Engine) Step(dt time.Duration) (out Outcome, ok bool) {
	if !e.Animating() {
		return Outcome{}, false
	}

	e.animElapsed += dt
	progress := 1.0
	if e.animDuration > 0 && e.animElapsed < e.animDuration {
		progress = float64(e.animElapsed) / float64(e.animDuration)
	}
	e.offset = e.animFrom + (e.animTo-e.animFrom)*easeOutCubic(progress)
	if progress < 1 {
		return Outcome{}, false
	}

	return e.finish()
}

func (e *Engine) finish() (Outcome, bool) {
	if e.state == Resetting {
		e.toIdle()
		return Outcome{}, false
	}

	out := Outcome{Card: e.committed, Direction: Left}
	if e.state == ResolvingRight {
		out.Direction = Right
		out.Matched = e.matcher.Match(e.committed)
	}

	e.deck.Advance()
	if e.onOutcome != nil {
		e.onOutcome(out)
	}
	e.toIdle()
	return out, true
}

func (e *Engine) toIdle() {
	e.state = Idle
	e.offset = 0
	e.moved = false
	e.committed = models.SwipeCard{}
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
