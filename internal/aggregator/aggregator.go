package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XavierBriggs/Themis/internal/metrics"
	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
)

// Default TTLs applied when no sport module is registered for a code.
const (
	defaultLiveTTL    = 45 * time.Second
	defaultInertTTL   = 5 * time.Minute
	defaultChainDepth = 3
)

// ModuleSource resolves the sport-specific configuration (provider
// chain, cache TTLs) for a sport code.
type ModuleSource interface {
	GetSportModule(sport models.SportCode) (contracts.SportModule, bool)
}

// Aggregator fronts the configured provider adapters with an ordered
// fallback chain per sport and a shared snapshot cache.
type Aggregator struct {
	adapters map[string]contracts.ProviderAdapter
	order    []string
	modules  ModuleSource
	cache    SnapshotCache
}

// New creates an aggregator. Adapters are tried in registration order
// for sports that carry no module-specific chain.
func New(modules ModuleSource, cache SnapshotCache) *Aggregator {
	return &Aggregator{
		adapters: make(map[string]contracts.ProviderAdapter),
		modules:  modules,
		cache:    cache,
	}
}

// RegisterAdapter adds a provider adapter to the pool.
func (a *Aggregator) RegisterAdapter(adapter contracts.ProviderAdapter) {
	name := adapter.Name()
	if _, exists := a.adapters[name]; !exists {
		a.order = append(a.order, name)
	}
	a.adapters[name] = adapter
}

// chainFor returns the ordered adapter names to try for a sport.
func (a *Aggregator) chainFor(sport models.SportCode) []string {
	if a.modules != nil {
		if module, ok := a.modules.GetSportModule(sport); ok {
			if chain := module.GetProviderChain(); len(chain) > 0 {
				return chain
			}
		}
	}
	return a.order
}

func (a *Aggregator) ttlFor(sport models.SportCode, isLive bool) time.Duration {
	if a.modules != nil {
		if module, ok := a.modules.GetSportModule(sport); ok {
			return module.GetSnapshotTTL(isLive)
		}
	}
	if isLive {
		return defaultLiveTTL
	}
	return defaultInertTTL
}

// FindGame locates a game snapshot, consulting the cache first and then
// walking the sport's provider chain until one adapter answers. Every
// adapter failing means the game genuinely cannot be located right now.
func (a *Aggregator) FindGame(ctx context.Context, sport models.SportCode, teamA, teamB string, approxDate time.Time) (*models.GameSnapshot, error) {
	key := CacheKey(sport, teamA, teamB, approxDate)
	if a.cache != nil {
		if snap, ok := a.cache.Get(ctx, key); ok {
			metrics.SnapshotCacheHits.Inc()
			return snap, nil
		}
	}

	var lastErr error
	tried := 0
	for _, name := range a.chainFor(sport) {
		adapter, ok := a.adapters[name]
		if !ok || !adapter.SupportsSport(sport) {
			continue
		}
		tried++
		snap, err := adapter.FindGame(ctx, sport, teamA, teamB, approxDate)
		if err != nil {
			if !errors.Is(err, contracts.ErrGameNotFound) {
				metrics.ProviderFallbacks.WithLabelValues(name).Inc()
				fmt.Printf("[Aggregator] ✗ %s failed for %s vs %s: %v (falling back)\n", name, teamA, teamB, err)
			}
			lastErr = err
			continue
		}
		if a.cache != nil {
			a.cache.Set(ctx, key, snap, a.ttlFor(sport, snap.IsLive))
		}
		return snap, nil
	}

	if tried == 0 {
		return nil, fmt.Errorf("no adapter supports sport %s: %w", sport, contracts.ErrGameNotFound)
	}
	if lastErr != nil && !errors.Is(lastErr, contracts.ErrGameNotFound) {
		return nil, fmt.Errorf("all providers failed: %w", lastErr)
	}
	return nil, contracts.ErrGameNotFound
}

// FetchBoxScore retrieves per-player stat lines for a located game. It
// prefers the adapter that produced the snapshot, then falls back to any
// other adapter in the chain that carries player stats for the sport.
func (a *Aggregator) FetchBoxScore(ctx context.Context, sport models.SportCode, snap *models.GameSnapshot) (*models.BoxScore, error) {
	if snap == nil {
		return nil, contracts.ErrBoxScoreUnavailable
	}

	if adapter, ok := a.adapters[snap.Provider]; ok && adapter.SupportsPlayerStats() {
		box, err := adapter.FetchBoxScore(ctx, sport, snap.GameID, snap.CommenceTime)
		if err == nil {
			return box, nil
		}
		if !errors.Is(err, contracts.ErrBoxScoreUnavailable) {
			fmt.Printf("[Aggregator] ✗ %s box score fetch failed: %v\n", snap.Provider, err)
		}
	}

	// Another provider may carry stats for the same game, but its game
	// IDs differ, so it has to relocate the matchup first.
	for _, name := range a.chainFor(sport) {
		if name == snap.Provider {
			continue
		}
		adapter, ok := a.adapters[name]
		if !ok || !adapter.SupportsPlayerStats() {
			continue
		}
		alt, err := adapter.FindGame(ctx, sport, snap.AwayTeam, snap.HomeTeam, snap.CommenceTime)
		if err != nil {
			continue
		}
		box, err := adapter.FetchBoxScore(ctx, sport, alt.GameID, alt.CommenceTime)
		if err == nil {
			return box, nil
		}
	}

	return nil, contracts.ErrBoxScoreUnavailable
}
