package football_nfl

import (
	"time"
)

// Config contains NFL-specific aggregation and settlement configuration
type Config struct {
	SportKey    string
	DisplayName string

	// ProviderChain lists adapter registry keys in fallback order
	ProviderChain []string

	LiveSnapshotTTL time.Duration
	IdleSnapshotTTL time.Duration

	TypicalGameDuration time.Duration
}

// DefaultConfig returns production NFL settings
func DefaultConfig() *Config {
	return &Config{
		SportKey:    "americanfootball_nfl",
		DisplayName: "NFL Football",

		// ESPN is the only chain member with player stats; theoddsapi
		// backs it up for scores
		ProviderChain: []string{"espn", "theoddsapi"},

		LiveSnapshotTTL: 60 * time.Second,
		IdleSnapshotTTL: 5 * time.Minute,

		TypicalGameDuration: 4 * time.Hour,
	}
}
