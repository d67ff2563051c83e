// internal/models/lobby.go
package models

import "time"

// Lobby represents a row in the lobbies table plus its attached players.
// Players is derived: every players row whose lobby_id matches, ordered by
// slot number ascending. It is never stored on the lobby row itself.
type Lobby struct {
	ID       string    `json:"id"`
	GameTime time.Time `json:"game_time"`

	// GameTimeDisplay is the free-form label the creator picked (e.g. "21:30").
	// It round-trips unchanged, independent of GameTime's timezone form.
	GameTimeDisplay string `json:"game_time_display,omitempty"`

	// Password is a plaintext shared secret. Empty means anyone may delete
	// the lobby; otherwise deletion requires an exact match.
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Players   []Player  `json:"players"`
}

// HasPassword reports whether deleting this lobby requires the shared secret.
func (l *Lobby) HasPassword() bool {
	return l.Password != ""
}
