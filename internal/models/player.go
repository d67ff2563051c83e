// internal/models/player.go
package models

import "time"

// MaxSlots is the fixed roster size of a lobby.
const MaxSlots = 5

// Player represents a claimed slot in a lobby. Agent fields are a
// denormalized snapshot of the catalog entry chosen at selection time;
// they are not kept in sync with the catalog afterward.
type Player struct {
	ID         string    `json:"id"`
	LobbyID    string    `json:"lobby_id"`
	SlotNumber int       `json:"slot_number"`
	PlayerName string    `json:"player_name"`
	AgentName  string    `json:"agent_name"`
	AgentRole  string    `json:"agent_role"`
	AgentIcon  string    `json:"agent_icon,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
