package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmynk/groovematch/internal/catalog"
	"github.com/mmynk/groovematch/internal/models"
)

type userJSON struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Styles    []string `json:"styles"`
	RadiusKm  float64  `json:"radius_km"`
	CreatedAt int64    `json:"created_at"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Styles:    u.Preferences.Styles,
		RadiusKm:  u.Preferences.RadiusKm,
		CreatedAt: u.CreatedAt,
	}
}

func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "%s <%s>\n", u.Name, u.Email)
	if len(u.Preferences.Styles) > 0 {
		fmt.Fprintf(w, "  styles: %s\n", strings.Join(u.Preferences.Styles, ", "))
	}
	if u.Preferences.RadiusKm > 0 {
		fmt.Fprintf(w, "  radius: %.0f km\n", u.Preferences.RadiusKm)
	}
}

type eventJSON struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Venue     string   `json:"venue,omitempty"`
	Styles    []string `json:"styles,omitempty"`
	StartsAt  int64    `json:"starts_at,omitempty"`
	Favorite  bool     `json:"favorite"`
	Attending bool     `json:"attending"`
}

// describeEvent fills in catalog details. Unknown ids are kept with the id as
// their title.
func describeEvent(id string) eventJSON {
	e, ok := catalog.Event(id)
	if !ok {
		return eventJSON{ID: id, Title: id}
	}
	return eventJSON{
		ID:       e.ID,
		Title:    e.Title,
		Venue:    e.Venue,
		Styles:   e.Styles,
		StartsAt: e.StartsAt,
	}
}

func printEvent(w io.Writer, e eventJSON) {
	marks := ""
	if e.Favorite {
		marks += "★"
	}
	if e.Attending {
		marks += "✓"
	}
	when := ""
	if e.StartsAt > 0 {
		when = time.Unix(e.StartsAt, 0).UTC().Format("Mon Jan 2 15:04")
	}
	fmt.Fprintf(w, "%-3s %-22s %-28s %-14s %s\n", marks, e.ID, e.Title, e.Venue, when)
}
