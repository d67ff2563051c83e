// internal/catalog/catalog.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"github.com/rmsantos/fivestack/internal/config"
)

// DefaultUpstreamURL is the public agent catalog. It is read-only; agent
// attributes get denormalized into player rows at selection time, so stored
// lobbies never depend on this service being reachable.
const DefaultUpstreamURL = "https://valorant-api.com/v1/agents?isPlayableCharacter=true"

const cacheKey = "fivestack:agents"
const cacheTTL = 24 * time.Hour

// Agent is the subset of a catalog entry the UI needs to render the
// selectable-character grid.
type Agent struct {
	UUID         string `json:"uuid"`
	DisplayName  string `json:"displayName"`
	Role         string `json:"role"`
	DisplayIcon  string `json:"displayIcon"`
	FullPortrait string `json:"fullPortrait,omitempty"`
}

// upstream response envelope: {"status": 200, "data": [...]}
type upstreamResponse struct {
	Status int             `json:"status"`
	Data   []upstreamAgent `json:"data"`
}

type upstreamAgent struct {
	UUID        string `json:"uuid"`
	DisplayName string `json:"displayName"`
	Role        *struct {
		DisplayName string `json:"displayName"`
	} `json:"role"`
	DisplayIcon  string `json:"displayIcon"`
	FullPortrait string `json:"fullPortrait"`
}

// Service fetches the agent catalog and caches the mapped list. When a
// Redis client is configured the cache lives there (shared across
// instances); otherwise a process-local copy with the same TTL is used.
type Service struct {
	upstreamURL string
	httpClient  *http.Client
	rdb         *redis.Client

	mu        sync.Mutex
	agents    []Agent
	fetchedAt time.Time
}

// NewService builds a catalog service. rdb may be nil.
func NewService(upstreamURL string, rdb *redis.Client) *Service {
	if upstreamURL == "" {
		upstreamURL = DefaultUpstreamURL
	}
	return &Service{
		upstreamURL: upstreamURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rdb:         rdb,
	}
}

// ConnectRedis initializes a Redis client from REDIS_ADDR / REDIS_DB, or
// returns nil when REDIS_ADDR is unset.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	addr := config.GetEnv("REDIS_ADDR", "")
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   config.GetEnvInt("REDIS_DB", 0),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Agents returns the cached catalog, fetching from upstream when the cache
// is empty or stale. Once cached, upstream outages do not evict data until
// the TTL lapses.
func (s *Service) Agents(ctx context.Context) ([]Agent, error) {
	if agents := s.fromMemory(); agents != nil {
		return agents, nil
	}
	if agents := s.fromRedis(ctx); agents != nil {
		s.storeMemory(agents)
		return agents, nil
	}

	agents, err := s.fetchUpstream(ctx)
	if err != nil {
		return nil, err
	}
	s.storeMemory(agents)
	s.storeRedis(ctx, agents)
	return agents, nil
}

func (s *Service) fetchUpstream(ctx context.Context) ([]Agent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.upstreamURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch agent catalog: %w", err)
	}
	defer resp.Body.Close()

	var body upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode agent catalog: %w", err)
	}
	if body.Status != http.StatusOK {
		return nil, fmt.Errorf("agent catalog returned status %d", body.Status)
	}

	return lo.Map(body.Data, func(a upstreamAgent, _ int) Agent {
		role := ""
		if a.Role != nil {
			role = a.Role.DisplayName
		}
		return Agent{
			UUID:         a.UUID,
			DisplayName:  a.DisplayName,
			Role:         role,
			DisplayIcon:  a.DisplayIcon,
			FullPortrait: a.FullPortrait,
		}
	}), nil
}

func (s *Service) fromMemory() []Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.agents == nil || time.Since(s.fetchedAt) > cacheTTL {
		return nil
	}
	return s.agents
}

func (s *Service) storeMemory(agents []Agent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents = agents
	s.fetchedAt = time.Now()
}

func (s *Service) fromRedis(ctx context.Context) []Agent {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil
	}
	var agents []Agent
	if err := json.Unmarshal(data, &agents); err != nil {
		return nil
	}
	return agents
}

func (s *Service) storeRedis(ctx context.Context, agents []Agent) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(agents)
	if err != nil {
		return
	}
	// cache write failures are non-fatal; the memory copy still serves
	_ = s.rdb.Set(ctx, cacheKey, data, cacheTTL).Err()
}
