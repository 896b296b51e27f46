// Package catalog holds the built-in demo content: the events users can
// favorite or attend, and the swipe deck that promotes them.
package catalog

import (
	"slices"
	"time"

	"github.com/mmynk/groovematch/internal/models"
)

// base is the first demo night, a Friday at 21:00 UTC.
var base = time.Date(2026, time.November, 6, 21, 0, 0, 0, time.UTC)

var events = []models.Event{
	{ID: "evt-salsa-friday", Title: "Salsa Friday", Venue: "La Rumba", Styles: []string{"salsa"}, StartsAt: base.Unix()},
	{ID: "evt-bachata-sensual", Title: "Bachata Sensual Social", Venue: "Studio Onda", Styles: []string{"bachata"}, StartsAt: base.Add(24 * time.Hour).Unix()},
	{ID: "evt-kizomba-nights", Title: "Kizomba Nights", Venue: "Kaya Lounge", Styles: []string{"kizomba", "urbankiz"}, StartsAt: base.Add(48 * time.Hour).Unix()},
	{ID: "evt-zouk-sunday", Title: "Sunday Zouk Flow", Venue: "Warehouse 9", Styles: []string{"zouk"}, StartsAt: base.Add(48*time.Hour + 20*time.Hour).Unix()},
	{ID: "evt-west-coast", Title: "West Coast Swing Practica", Venue: "The Ballroom", Styles: []string{"wcs"}, StartsAt: base.Add(5 * 24 * time.Hour).Unix()},
	{ID: "evt-latin-mix", Title: "Latin Mix Congress Warmup", Venue: "La Rumba", Styles: []string{"salsa", "bachata", "kizomba"}, StartsAt: base.Add(7 * 24 * time.Hour).Unix()},
}

var cards = []models.SwipeCard{
	{ID: "card-lucia", Kind: models.CardPerson, Title: "Lucía", Subtitle: "Intermediate follower", Tags: []string{"salsa", "bachata"}, EventID: "evt-salsa-friday"},
	{ID: "card-la-rumba", Kind: models.CardVenue, Title: "La Rumba", Subtitle: "Downtown, live band Fridays", Tags: []string{"salsa"}, EventID: "evt-latin-mix"},
	{ID: "card-mateo", Kind: models.CardPerson, Title: "Mateo", Subtitle: "Advanced leader", Tags: []string{"bachata"}, EventID: "evt-bachata-sensual"},
	{ID: "card-kaya", Kind: models.CardVenue, Title: "Kaya Lounge", Subtitle: "Riverside, late nights", Tags: []string{"kizomba", "urbankiz"}, EventID: "evt-kizomba-nights"},
	{ID: "card-ines", Kind: models.CardPerson, Title: "Inês", Subtitle: "Beginner, both roles", Tags: []string{"kizomba", "zouk"}, EventID: "evt-zouk-sunday"},
	{ID: "card-ballroom", Kind: models.CardVenue, Title: "The Ballroom", Subtitle: "Sprung floor, beginners welcome", Tags: []string{"wcs"}, EventID: "evt-west-coast"},
}

// Events returns a copy of the demo events, soonest first.
func Events() []models.Event {
	out := make([]models.Event, len(events))
	for i, e := range events {
		e.Styles = slices.Clone(e.Styles)
		out[i] = e
	}
	return out
}

// Event looks up a demo event by id.
func Event(id string) (models.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			e.Styles = slices.Clone(e.Styles)
			return e, true
		}
	}
	return models.Event{}, false
}

// Cards returns a copy of the demo swipe deck.
func Cards() []models.SwipeCard {
	out := make([]models.SwipeCard, len(cards))
	for i, c := range cards {
		c.Tags = slices.Clone(c.Tags)
		out[i] = c
	}
	return out
}

// CardsFor orders the deck so cards sharing a style with styles come first.
// Relative order is otherwise kept.
func CardsFor(styles []string) []models.SwipeCard {
	all := Cards()
	slices.SortStableFunc(all, func(a, b models.SwipeCard) int {
		return boolRank(shares(b.Tags, styles)) - boolRank(shares(a.Tags, styles))
	})
	return all
}

func shares(tags, styles []string) bool {
	for _, t := range tags {
		if slices.Contains(styles, t) {
			return true
		}
	}
	return false
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
