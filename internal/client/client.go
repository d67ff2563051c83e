// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rmsantos/fivestack/internal/config"
	"github.com/rmsantos/fivestack/internal/models"
)

// ErrServerUnavailable marks a transport-level failure (the API could not
// be reached at all), as distinct from the API answering with an error
// status. The UI uses this to show a "server down" banner and pause polling
// instead of a generic failure.
var ErrServerUnavailable = errors.New("server unavailable")

// APIError is a non-2xx answer from the API, carrying the decoded error
// envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is a typed wrapper over the lobby HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewFromEnv builds a client from FIVESTACK_API_URL, defaulting to a local
// server.
func NewFromEnv() *Client {
	return New(config.GetEnv("FIVESTACK_API_URL", "http://localhost:8080"))
}

// NewWithHTTPClient allows injecting the transport, mainly for tests.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// ListLobbies fetches the full lobby list.
func (c *Client) ListLobbies(ctx context.Context) ([]models.Lobby, error) {
	var lobbies []models.Lobby
	err := c.call(ctx, http.MethodGet, "/lobbies", nil, &lobbies)
	return lobbies, err
}

// GetLobby fetches a single lobby by id.
func (c *Client) GetLobby(ctx context.Context, id string) (*models.Lobby, error) {
	var lobby models.Lobby
	err := c.call(ctx, http.MethodGet, "/lobbies?id="+url.QueryEscape(id), nil, &lobby)
	if err != nil {
		return nil, err
	}
	return &lobby, nil
}

// CreateLobby schedules a lobby for the next occurrence of hourMinute
// ("HH:MM", creator's local clock). The raw string is sent along as the
// display label so it renders back exactly as typed.
func (c *Client) CreateLobby(ctx context.Context, hourMinute, password string) (*models.Lobby, error) {
	gameTime, err := NextGameTime(hourMinute, time.Now())
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"game_time":         gameTime.Format(time.RFC3339),
		"game_time_display": hourMinute,
		"password":          password,
	}
	var lobby models.Lobby
	if err := c.call(ctx, http.MethodPost, "/lobbies", body, &lobby); err != nil {
		return nil, err
	}
	return &lobby, nil
}

// DeleteLobby removes a lobby, supplying the password when it has one.
func (c *Client) DeleteLobby(ctx context.Context, id, password string) (bool, error) {
	body := map[string]any{"password": password}
	var res struct {
		Success bool `json:"success"`
	}
	err := c.call(ctx, http.MethodDelete, "/lobbies?id="+url.QueryEscape(id), body, &res)
	if err != nil {
		return false, err
	}
	return res.Success, nil
}

// AddPlayer claims a slot with a denormalized agent snapshot.
func (c *Client) AddPlayer(ctx context.Context, lobbyID string, slotNumber int, playerName, agentName, agentRole, agentIcon string) (*models.Player, error) {
	body := map[string]any{
		"lobby_id":    lobbyID,
		"slot_number": slotNumber,
		"player_name": playerName,
		"agent_name":  agentName,
		"agent_role":  agentRole,
		"agent_icon":  agentIcon,
	}
	var player models.Player
	if err := c.call(ctx, http.MethodPost, "/players", body, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// RemovePlayer releases a claimed slot.
func (c *Client) RemovePlayer(ctx context.Context, playerID string) (bool, error) {
	var res struct {
		Success bool `json:"success"`
	}
	err := c.call(ctx, http.MethodDelete, "/players?id="+url.QueryEscape(playerID), nil, &res)
	if err != nil {
		return false, err
	}
	return res.Success, nil
}

// NextGameTime combines "HH:MM" with now's date and rolls forward one day
// if that moment has already passed, so a lobby is always scheduled for the
// next occurrence of the given time-of-day, never in the past.
func NextGameTime(hourMinute string, now time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", hourMinute)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hourMinute, err)
	}

	t := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if t.Before(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// transport failure, not an HTTP error status
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr != nil || envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
