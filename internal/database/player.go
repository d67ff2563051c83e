// internal/database/player.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rmsantos/fivestack/internal/models"
)

const playerColumns = `id, lobby_id, slot_number, player_name, agent_name, agent_role, COALESCE(agent_icon, ''), created_at`

// AddPlayer claims a slot: delete whoever holds (lobby_id, slot_number),
// then insert the new row, both inside one transaction so a concurrent
// competitor never sees the slot half-written. Last write wins. The lobby's
// existence is not checked up front; the FK constraint fails the insert for
// a dangling lobby_id.
func (s *PostgresStore) AddPlayer(ctx context.Context, player models.Player) (*models.Player, error) {
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM players WHERE lobby_id = $1 AND slot_number = $2`,
			player.LobbyID, player.SlotNumber,
		)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO players (id, lobby_id, slot_number, player_name, agent_name, agent_role, agent_icon, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`,
			player.ID,
			player.LobbyID,
			player.SlotNumber,
			player.PlayerName,
			player.AgentName,
			player.AgentRole,
			player.AgentIcon,
			player.CreatedAt,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("add player: %w", err)
	}
	return &player, nil
}

// RemovePlayer deletes a single player row by id.
func (s *PostgresStore) RemovePlayer(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) listPlayers(ctx context.Context, lobbyID string) ([]models.Player, error) {
	q := fmt.Sprintf(`SELECT %s FROM players WHERE lobby_id = $1 ORDER BY slot_number ASC`, playerColumns)
	rows, err := s.pool.Query(ctx, q, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()
	return collectPlayers(rows)
}

func (s *PostgresStore) listAllPlayers(ctx context.Context) ([]models.Player, error) {
	q := fmt.Sprintf(`SELECT %s FROM players ORDER BY slot_number ASC`, playerColumns)
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()
	return collectPlayers(rows)
}

func collectPlayers(rows pgx.Rows) ([]models.Player, error) {
	players := []models.Player{}
	for rows.Next() {
		var p models.Player
		err := rows.Scan(
			&p.ID,
			&p.LobbyID,
			&p.SlotNumber,
			&p.PlayerName,
			&p.AgentName,
			&p.AgentRole,
			&p.AgentIcon,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read players: %w", err)
	}
	return players, nil
}
