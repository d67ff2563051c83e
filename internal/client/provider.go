// internal/client/provider.go
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rmsantos/fivestack/internal/models"
)

// DefaultPollInterval is how often the provider re-fetches the lobby list
// while the API is reachable.
const DefaultPollInterval = 2 * time.Second

// Provider maintains an eventually-consistent in-memory copy of all
// lobbies for a UI. The copy is disposable: it is replaced wholesale on
// every successful fetch and is never treated as authoritative.
//
// While the API is reachable the list is re-fetched on a fixed interval and
// immediately after every successful mutation. A transport-level failure
// flips the provider to unavailable and pauses the timer fetches; a later
// user-triggered action that succeeds flips it back.
type Provider struct {
	api      *Client
	logger   *logrus.Logger
	interval time.Duration

	mu                sync.Mutex
	lobbies           []models.Lobby
	loading           bool
	available         bool
	consecutiveErrors int
}

// NewProvider wraps an API client. A zero interval means DefaultPollInterval.
func NewProvider(api *Client, logger *logrus.Logger, interval time.Duration) *Provider {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Provider{
		api:       api,
		logger:    logger,
		interval:  interval,
		loading:   true,
		available: true,
	}
}

// Run fetches once immediately, then keeps the cache fresh until ctx is
// cancelled. Ticks while unavailable are skipped; there is no automatic
// retry or backoff beyond that.
func (p *Provider) Run(ctx context.Context) {
	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.Available() {
				p.Refresh(ctx)
			}
		}
	}
}

// Refresh replaces the cached list with a fresh fetch. On a transport
// failure the provider is marked unavailable; HTTP-level errors leave
// availability untouched.
func (p *Provider) Refresh(ctx context.Context) {
	lobbies, err := p.api.ListLobbies(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		if errors.Is(err, ErrServerUnavailable) {
			p.available = false
			p.consecutiveErrors++
			if p.consecutiveErrors == 1 {
				p.logger.WithError(err).Error("lobby API unreachable, pausing polling")
			}
		} else {
			p.logger.WithError(err).Error("failed to fetch lobbies")
		}
		return
	}

	p.lobbies = lobbies
	p.available = true
	p.consecutiveErrors = 0
}

// Lobbies returns a copy of the cached list.
func (p *Provider) Lobbies() []models.Lobby {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Lobby, len(p.lobbies))
	copy(out, p.lobbies)
	return out
}

// Available reports whether the last transport attempt reached the API.
func (p *Provider) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available
}

// Loading reports whether the first fetch has settled yet.
func (p *Provider) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// CreateLobby schedules a lobby and refreshes the cache on success. The
// cache reflects the mutation only after that round trip; there is no
// optimistic local update.
func (p *Provider) CreateLobby(ctx context.Context, hourMinute, password string) (*models.Lobby, error) {
	lobby, err := p.api.CreateLobby(ctx, hourMinute, password)
	if err != nil {
		return nil, err
	}
	p.Refresh(ctx)
	return lobby, nil
}

// AddPlayer claims a slot and refreshes the cache on success.
func (p *Provider) AddPlayer(ctx context.Context, lobbyID string, slotNumber int, playerName, agentName, agentRole, agentIcon string) (*models.Player, error) {
	player, err := p.api.AddPlayer(ctx, lobbyID, slotNumber, playerName, agentName, agentRole, agentIcon)
	if err != nil {
		return nil, err
	}
	p.Refresh(ctx)
	return player, nil
}

// RemovePlayer releases a slot and refreshes the cache on success.
func (p *Provider) RemovePlayer(ctx context.Context, playerID string) (bool, error) {
	ok, err := p.api.RemovePlayer(ctx, playerID)
	if err != nil {
		return false, err
	}
	if ok {
		p.Refresh(ctx)
	}
	return ok, nil
}

// DeleteLobby deletes a lobby and refreshes the cache on success.
func (p *Provider) DeleteLobby(ctx context.Context, id, password string) (bool, error) {
	ok, err := p.api.DeleteLobby(ctx, id, password)
	if err != nil {
		return false, err
	}
	if ok {
		p.Refresh(ctx)
	}
	return ok, nil
}
