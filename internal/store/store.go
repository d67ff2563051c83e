// internal/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/rmsantos/fivestack/internal/models"
)

// ErrLobbyNotFound signals that a referenced lobby does not exist, as
// distinct from the store being unreachable.
var ErrLobbyNotFound = errors.New("lobby not found")

// ErrPlayerNotFound signals that a referenced player does not exist.
var ErrPlayerNotFound = errors.New("player not found")

// Store is the data-access contract shared by the Postgres implementation
// and the in-memory test double.
type Store interface {
	// ListLobbies returns every lobby ordered by game_time ascending, each
	// with its players attached ordered by slot_number ascending. Read
	// failures propagate; an empty store yields an empty slice, not an error.
	ListLobbies(ctx context.Context) ([]models.Lobby, error)

	// GetLobby returns the lobby with players attached, or ErrLobbyNotFound.
	GetLobby(ctx context.Context, id string) (*models.Lobby, error)

	// CreateLobby inserts the lobby as given (id included) and returns it
	// with an empty player list. No id collision check is made.
	CreateLobby(ctx context.Context, lobby models.Lobby) (*models.Lobby, error)

	// DeleteLobby removes the lobby and, by cascade, all of its players.
	// Returns false (no error) when the lobby does not exist.
	DeleteLobby(ctx context.Context, id string) (bool, error)

	// AddPlayer claims a slot: any existing player at the same
	// (lobby_id, slot_number) is removed first, then the new row is
	// inserted. Last write wins; the displaced claim is not reported.
	AddPlayer(ctx context.Context, player models.Player) (*models.Player, error)

	// RemovePlayer deletes the player row. Returns false when absent.
	RemovePlayer(ctx context.Context, id string) (bool, error)
}
