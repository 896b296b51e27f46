// Package tui is the terminal swipe deck: drag a card with the mouse or use
// the arrow keys, and favorite or attend the event a card promotes.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/groovematch/internal/deck"
	"github.com/mmynk/groovematch/internal/models"
	"github.com/mmynk/groovematch/internal/swipe"
)

const (
	// frameInterval is the animation tick.
	frameInterval = 16 * time.Millisecond
	// unitsPerCell converts terminal columns into engine distance units.
	unitsPerCell = 8.0
	// maxMatches is how many recent matches the footer keeps.
	maxMatches = 3
)

// Actions are the backend calls the deck can make for the signed-in user.
type Actions interface {
	ToggleFavorite(ctx context.Context, token, eventID string) (bool, error)
	SetAttending(ctx context.Context, token, eventID string) error
}

type frameMsg struct{}

type favoriteResultMsg struct {
	eventID   string
	favorited bool
	err       error
}

type attendResultMsg struct {
	eventID string
	err     error
}

// Model is the bubbletea model for the swipe screen.
type Model struct {
	ctx     context.Context
	actions Actions
	token   string
	user    string

	cursor *deck.Cursor
	engine *swipe.Engine

	width  int
	height int

	pressX   int
	pressY   int
	animated bool

	status  string
	matches []string
	liked   int
	passed  int
}

// Option configures a Model.
type Option func(*Model)

// WithEngineOptions passes options through to the gesture engine.
func WithEngineOptions(opts ...swipe.Option) Option {
	return func(m *Model) {
		m.engine = swipe.New(m.cursor, opts...)
	}
}

// NewModel builds the swipe screen over cards for the user holding token.
func NewModel(ctx context.Context, actions Actions, token, userName string, cards []models.SwipeCard, opts ...Option) *Model {
	cur := deck.New(cards)
	m := &Model{
		ctx:     ctx,
		actions: actions,
		token:   token,
		user:    userName,
		cursor:  cur,
		engine:  swipe.New(cur),
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the model until the user quits or ctx is done.
func Run(ctx context.Context, m *Model) error {
	program := tea.NewProgram(m, tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	if _, ok := m.cursor.Current(); !ok {
		m.status = "No cards to show."
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case frameMsg:
		return m.handleFrame()
	case favoriteResultMsg:
		m.handleFavoriteResult(msg)
		return m, nil
	case attendResultMsg:
		m.handleAttendResult(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "right", "l":
		if m.engine.Like() {
			return m, m.startAnimation()
		}
	case "left", "h":
		if m.engine.Dislike() {
			return m, m.startAnimation()
		}
	case "f":
		return m, m.favoriteCmd()
	case "a":
		return m, m.attendCmd()
	}
	return m, nil
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.engine.Press() {
			m.pressX, m.pressY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if m.engine.State() == swipe.Dragging {
			m.engine.Move(float64(msg.X-m.pressX)*unitsPerCell, float64(msg.Y-m.pressY)*unitsPerCell)
		}
	case tea.MouseActionRelease:
		if m.engine.State() != swipe.Dragging {
			return m, nil
		}
		m.engine.Release()
		return m, m.startAnimation()
	}
	return m, nil
}

// startAnimation schedules frames unless a frame loop is already running.
func (m *Model) startAnimation() tea.Cmd {
	if !m.engine.Animating() || m.animated {
		return nil
	}
	m.animated = true
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *Model) handleFrame() (tea.Model, tea.Cmd) {
	out, ok := m.engine.Step(frameInterval)
	if ok {
		m.record(out)
	}
	if m.engine.Animating() {
		return m, frameTick()
	}
	m.animated = false
	return m, nil
}

func (m *Model) record(out swipe.Outcome) {
	switch {
	case out.Direction == swipe.Left:
		m.passed++
		m.status = fmt.Sprintf("Passed on %s.", out.Card.Title)
	case out.Matched:
		m.liked++
		m.status = fmt.Sprintf("It's a match with %s!", out.Card.Title)
		m.matches = append(m.matches, out.Card.Title)
		if len(m.matches) > maxMatches {
			m.matches = m.matches[len(m.matches)-maxMatches:]
		}
	default:
		m.liked++
		m.status = fmt.Sprintf("Liked %s.", out.Card.Title)
	}
}

func (m *Model) favoriteCmd() tea.Cmd {
	card, ok := m.cursor.Current()
	if !ok || card.EventID == "" || m.engine.State() != swipe.Idle {
		return nil
	}
	m.status = "Saving favorite..."
	ctx, actions, token, eventID := m.ctx, m.actions, m.token, card.EventID
	return func() tea.Msg {
		on, err := actions.ToggleFavorite(ctx, token, eventID)
		return favoriteResultMsg{eventID: eventID, favorited: on, err: err}
	}
}

func (m *Model) attendCmd() tea.Cmd {
	card, ok := m.cursor.Current()
	if !ok || card.EventID == "" || m.engine.State() != swipe.Idle {
		return nil
	}
	m.status = "Saving..."
	ctx, actions, token, eventID := m.ctx, m.actions, m.token, card.EventID
	return func() tea.Msg {
		return attendResultMsg{eventID: eventID, err: actions.SetAttending(ctx, token, eventID)}
	}
}

func (m *Model) handleFavoriteResult(msg favoriteResultMsg) {
	switch {
	case msg.err != nil:
		m.status = "Could not save favorite: " + msg.err.Error()
	case msg.favorited:
		m.status = "Added " + msg.eventID + " to favorites."
	default:
		m.status = "Removed " + msg.eventID + " from favorites."
	}
}

func (m *Model) handleAttendResult(msg attendResultMsg) {
	if msg.err != nil {
		m.status = "Could not save attendance: " + msg.err.Error()
		return
	}
	m.status = "You're going to " + msg.eventID + "."
}
