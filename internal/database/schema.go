// internal/database/schema.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements is the entire migration story: idempotent CREATEs run at
// startup. Players carry ON DELETE CASCADE so removing a lobby removes its
// roster, and UNIQUE(lobby_id, slot_number) backs the one-player-per-slot
// invariant.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS lobbies (
		id TEXT PRIMARY KEY,
		game_time TIMESTAMP NOT NULL,
		game_time_display TEXT,
		password TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		lobby_id TEXT NOT NULL REFERENCES lobbies(id) ON DELETE CASCADE,
		slot_number INTEGER NOT NULL,
		player_name TEXT NOT NULL,
		agent_name TEXT NOT NULL,
		agent_role TEXT NOT NULL,
		agent_icon TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(lobby_id, slot_number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_players_lobby_id ON players(lobby_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lobbies_game_time ON lobbies(game_time)`,
}

// InitSchema creates the tables and indexes if they do not exist yet.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
