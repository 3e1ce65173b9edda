package contracts

import (
	"time"

	"github.com/XavierBriggs/Themis/pkg/models"
)

// SportModule defines sport-specific settlement behavior. This keeps the
// engine generic: adding a sport means registering a module, not branching
// in the evaluator or aggregator.
type SportModule interface {
	// GetSportKey returns the unique identifier (e.g. "basketball_nba").
	GetSportKey() models.SportCode

	// GetDisplayName returns the human-readable name (e.g. "NBA Basketball").
	GetDisplayName() string

	// GetProviderChain returns adapter registry keys in fallback order,
	// richest (player-stat-capable) providers first.
	GetProviderChain() []string

	// GetSnapshotTTL returns how long an aggregator snapshot stays fresh.
	// Live games use a shorter TTL than pre-game or completed ones.
	GetSnapshotTTL(isLive bool) time.Duration

	// GetTypicalGameDuration bounds how long after the start time a game
	// can still plausibly be in progress.
	GetTypicalGameDuration() time.Duration

	// NormalizeStatKey maps slip-text stat vocabulary ("Points + Rebounds
	// + Assists", "PRA", "Receiving Yards") to the box-score stat keys the
	// adapters emit. Returns the constituent keys to sum, or nil when the
	// vocabulary is not recognized for this sport.
	NormalizeStatKey(statText string) []string

	// NormalizeTeamName standardizes vendor team-name variations.
	NormalizeTeamName(name string) string
}
