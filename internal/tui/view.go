package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/groovematch/internal/models"
	"github.com/mmynk/groovematch/internal/swipe"
)

const cardWidth = 36

var (
	titleColor = lipgloss.Color("230")
	metaColor  = lipgloss.Color("245")
	likeColor  = lipgloss.Color("114")
	nopeColor  = lipgloss.Color("203")
	idleColor  = lipgloss.Color("111")
	tagColor   = lipgloss.Color("183")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(titleColor)
	metaStyle   = lipgloss.NewStyle().Foreground(metaColor)
	tagStyle    = lipgloss.NewStyle().Foreground(tagColor)
	statusStyle = lipgloss.NewStyle().Foreground(titleColor).Italic(true)
)

func (m *Model) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n",
		headerStyle.Render("groovematch"),
		metaStyle.Render(fmt.Sprintf("%s · liked %d · passed %d", m.user, m.liked, m.passed)),
	)

	card, ok := m.cursor.Current()
	if !ok {
		b.WriteString(metaStyle.Render("The deck is empty."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderCard(card))
		b.WriteString("\n")
		if next, ok := m.cursor.PeekNext(); ok && m.cursor.Len() > 1 {
			b.WriteString(metaStyle.Render("next: " + next.Title))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if len(m.matches) > 0 {
		b.WriteString(metaStyle.Render("matches: " + strings.Join(m.matches, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(metaStyle.Render("drag or ←/→ to swipe · f favorite · a attend · q quit"))
	return b.String()
}

func (m *Model) renderCard(card models.SwipeCard) string {
	gs := m.engine.Snapshot()

	border := idleColor
	label := ""
	threshold := m.engine.Config().CommitThreshold
	switch {
	case gs.Resolution == swipe.Right || gs.Offset > threshold:
		border, label = likeColor, "LIKE"
	case gs.Resolution == swipe.Left || gs.Offset < -threshold:
		border, label = nopeColor, "NOPE"
	}

	kind := "dancer"
	if card.Kind == models.CardVenue {
		kind = "venue"
	}
	lines := []string{
		headerStyle.Render(card.Title) + "  " + metaStyle.Render(kind),
		metaStyle.Render(card.Subtitle),
		tagStyle.Render(strings.Join(card.Tags, " · ")),
	}
	if label != "" {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(border).Render(label))
	}
	if gs.Rotation != 0 {
		lines = append(lines, metaStyle.Render(fmt.Sprintf("tilt %+.0f°", gs.Rotation)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(cardWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().MarginLeft(m.cardMargin(gs.Offset)).Render(box)
}

// cardMargin places the card around the center column, shifted by offset and
// kept on screen.
func (m *Model) cardMargin(offset float64) int {
	center := (m.width - cardWidth - 4) / 2
	if center < 0 {
		center = 0
	}
	margin := center + int(math.Round(offset/unitsPerCell))
	maxMargin := m.width - cardWidth - 4
	if margin > maxMargin {
		margin = maxMargin
	}
	if margin < 0 {
		margin = 0
	}
	return margin
}
