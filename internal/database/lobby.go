// internal/database/lobby.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/rmsantos/fivestack/internal/models"
	"github.com/rmsantos/fivestack/internal/store"
)

// PostgresStore implements store.Store on top of a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already-connected pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const lobbyColumns = `id, game_time, COALESCE(game_time_display, ''), COALESCE(password, ''), created_at`

// ListLobbies fetches every lobby ordered by game_time, then attaches the
// players of all lobbies from a single roster query.
func (s *PostgresStore) ListLobbies(ctx context.Context) ([]models.Lobby, error) {
	q := fmt.Sprintf(`SELECT %s FROM lobbies ORDER BY game_time ASC`, lobbyColumns)
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query lobbies: %w", err)
	}
	defer rows.Close()

	lobbies := []models.Lobby{}
	for rows.Next() {
		l, err := scanLobby(rows)
		if err != nil {
			return nil, err
		}
		lobbies = append(lobbies, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read lobbies: %w", err)
	}

	players, err := s.listAllPlayers(ctx)
	if err != nil {
		return nil, err
	}
	byLobby := lo.GroupBy(players, func(p models.Player) string { return p.LobbyID })

	for i := range lobbies {
		if roster, ok := byLobby[lobbies[i].ID]; ok {
			lobbies[i].Players = roster
		} else {
			lobbies[i].Players = []models.Player{}
		}
	}
	return lobbies, nil
}

// GetLobby fetches one lobby with its roster attached, or
// store.ErrLobbyNotFound when no row matches.
func (s *PostgresStore) GetLobby(ctx context.Context, id string) (*models.Lobby, error) {
	q := fmt.Sprintf(`SELECT %s FROM lobbies WHERE id = $1`, lobbyColumns)
	l, err := scanLobby(s.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrLobbyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lobby: %w", err)
	}

	players, err := s.listPlayers(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Players = players
	return &l, nil
}

// CreateLobby inserts the lobby row as given. The caller supplies the id;
// no collision check is made.
func (s *PostgresStore) CreateLobby(ctx context.Context, lobby models.Lobby) (*models.Lobby, error) {
	q := `
	INSERT INTO lobbies (id, game_time, game_time_display, password, created_at)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
	`
	_, err := s.pool.Exec(ctx, q,
		lobby.ID,
		lobby.GameTime,
		lobby.GameTimeDisplay,
		lobby.Password,
		lobby.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert lobby: %w", err)
	}
	lobby.Players = []models.Player{}
	return &lobby, nil
}

// DeleteLobby removes the lobby row; the schema cascades the roster.
func (s *PostgresStore) DeleteLobby(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM lobbies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete lobby: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLobby(row rowScanner) (models.Lobby, error) {
	var l models.Lobby
	err := row.Scan(&l.ID, &l.GameTime, &l.GameTimeDisplay, &l.Password, &l.CreatedAt)
	if err != nil {
		return models.Lobby{}, err
	}
	return l, nil
}
