package basketball_nba

import (
	"time"
)

// Config contains NBA-specific aggregation and settlement configuration
type Config struct {
	// Sport identification
	SportKey    string
	DisplayName string

	// ProviderChain lists adapter registry keys in fallback order,
	// richest data first
	ProviderChain []string

	// Snapshot cache TTLs
	LiveSnapshotTTL time.Duration
	IdleSnapshotTTL time.Duration

	// TypicalGameDuration bounds how long after tipoff a game can still
	// plausibly be in progress
	TypicalGameDuration time.Duration
}

// DefaultConfig returns production NBA settings
func DefaultConfig() *Config {
	return &Config{
		SportKey:    "basketball_nba",
		DisplayName: "NBA Basketball",

		// ESPN carries box scores, balldontlie carries stable player IDs,
		// theoddsapi is score-only and last
		ProviderChain: []string{"espn", "balldontlie", "theoddsapi"},

		LiveSnapshotTTL: 30 * time.Second,
		IdleSnapshotTTL: 5 * time.Minute,

		TypicalGameDuration: 3 * time.Hour,
	}
}
