// internal/store/memory.go
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/rmsantos/fivestack/internal/models"
)

// MemoryStore keeps lobbies and players in process memory behind the same
// interface as the Postgres store. It exists as a test double; a deployment
// with more than one server instance must use the persistent store.
type MemoryStore struct {
	mu      sync.Mutex
	lobbies []models.Lobby
	players []models.Player
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListLobbies(ctx context.Context) ([]models.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Lobby, 0, len(s.lobbies))
	for _, l := range s.lobbies {
		l.Players = s.playersForLocked(l.ID)
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GameTime.Before(out[j].GameTime)
	})
	return out, nil
}

func (s *MemoryStore) GetLobby(ctx context.Context, id string) (*models.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.lobbies {
		if l.ID == id {
			l.Players = s.playersForLocked(id)
			return &l, nil
		}
	}
	return nil, ErrLobbyNotFound
}

func (s *MemoryStore) CreateLobby(ctx context.Context, lobby models.Lobby) (*models.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lobby.Players = []models.Player{}
	s.lobbies = append(s.lobbies, lobby)
	return &lobby, nil
}

func (s *MemoryStore) DeleteLobby(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.lobbies)
	s.lobbies = lo.Filter(s.lobbies, func(l models.Lobby, _ int) bool {
		return l.ID != id
	})
	if len(s.lobbies) == before {
		return false, nil
	}

	// cascade, mirroring ON DELETE CASCADE in the persistent schema
	s.players = lo.Filter(s.players, func(p models.Player, _ int) bool {
		return p.LobbyID != id
	})
	return true, nil
}

func (s *MemoryStore) AddPlayer(ctx context.Context, player models.Player) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// mirror the FK constraint the persistent store relies on
	exists := lo.ContainsBy(s.lobbies, func(l models.Lobby) bool {
		return l.ID == player.LobbyID
	})
	if !exists {
		return nil, ErrLobbyNotFound
	}

	s.players = lo.Filter(s.players, func(p models.Player, _ int) bool {
		return !(p.LobbyID == player.LobbyID && p.SlotNumber == player.SlotNumber)
	})
	s.players = append(s.players, player)
	return &player, nil
}

func (s *MemoryStore) RemovePlayer(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.players)
	s.players = lo.Filter(s.players, func(p models.Player, _ int) bool {
		return p.ID != id
	})
	return len(s.players) != before, nil
}

func (s *MemoryStore) playersForLocked(lobbyID string) []models.Player {
	players := lo.Filter(s.players, func(p models.Player, _ int) bool {
		return p.LobbyID == lobbyID
	})
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].SlotNumber < players[j].SlotNumber
	})
	if players == nil {
		players = []models.Player{}
	}
	return players
}
