package docstore

import (
	"slices"

	"github.com/mmynk/groovematch/internal/models"
)

// Document is the single serialized blob holding all persisted state.
type Document struct {
	Users []models.User `json:"users"`

	// Sessions maps bearer token to user id.
	Sessions map[string]string `json:"sessions"`

	// Favorites and Attending map user id to event ids in insertion order.
	Favorites map[string][]string `json:"favorites"`
	Attending map[string][]string `json:"attending"`
}

func newDocument() *Document {
	d := &Document{}
	d.fill()
	return d
}

// fill replaces nil collections left by an older or partial document.
func (d *Document) fill() {
	if d.Users == nil {
		d.Users = []models.User{}
	}
	if d.Sessions == nil {
		d.Sessions = make(map[string]string)
	}
	if d.Favorites == nil {
		d.Favorites = make(map[string][]string)
	}
	if d.Attending == nil {
		d.Attending = make(map[string][]string)
	}
}

func (d *Document) clone() *Document {
	c := &Document{
		Users:     make([]models.User, len(d.Users)),
		Sessions:  make(map[string]string, len(d.Sessions)),
		Favorites: make(map[string][]string, len(d.Favorites)),
		Attending: make(map[string][]string, len(d.Attending)),
	}
	for i := range d.Users {
		c.Users[i] = *d.Users[i].Clone()
	}
	for k, v := range d.Sessions {
		c.Sessions[k] = v
	}
	for k, v := range d.Favorites {
		c.Favorites[k] = slices.Clone(v)
	}
	for k, v := range d.Attending {
		c.Attending[k] = slices.Clone(v)
	}
	return c
}

func (d *Document) userByEmail(email string) *models.User {
	want := models.NormalizeEmail(email)
	for i := range d.Users {
		if models.NormalizeEmail(d.Users[i].Email) == want {
			return &d.Users[i]
		}
	}
	return nil
}

func (d *Document) userByID(id string) *models.User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}
