// Package models defines the core domain models for groovematch.
//
// # Persisted models
//
// The following models live in the mock persistence document:
//   - User: a registered dancer with their style preferences
//   - Session: an opaque bearer token bound to a user id
//
// Favorites and attendance are plain event id lists keyed by user id; they
// have no model of their own.
//
// # Ephemeral models
//
//   - SwipeCard: a candidate person or venue shown in the swipe deck
//   - Event: a dance night a card can point at
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are expressed with ID strings
// 2. **Immutable identity**: users are never edited once created
// 3. **Plain data**: no behavior beyond small helpers lives here
package models
