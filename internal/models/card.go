package models

// CardKind says what a swipe card represents.
type CardKind string

const (
	CardPerson CardKind = "person"
	CardVenue  CardKind = "venue"
)

// SwipeCard is a candidate shown in the swipe deck. Never persisted.
type SwipeCard struct {
	// ID is the unique identifier for the card.
	ID string

	// Kind is person or venue.
	Kind CardKind

	// Title is the main display line (a dancer's name or a venue's name).
	Title string

	// Subtitle is a secondary line such as a neighborhood or a level.
	Subtitle string

	// Tags are dance style tags shown on the card.
	Tags []string

	// EventID is the event this card promotes. Favorite and attend actions
	// taken from the card target this event.
	EventID string
}

// Event is a dance night users can favorite or attend.
type Event struct {
	ID     string
	Title  string
	Venue  string
	Styles []string
	// StartsAt is a Unix timestamp.
	StartsAt int64
}
