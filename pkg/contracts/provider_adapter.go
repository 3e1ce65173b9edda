package contracts

import (
	"context"
	"errors"
	"time"

	"github.com/XavierBriggs/Themis/pkg/models"
)

// Sentinel errors shared by all adapters. Callers distinguish "the provider
// worked but has no such game" from transport/schema failures: the former
// means move on, the latter means fall back to the next adapter.
var (
	// ErrGameNotFound means the provider answered but no game matched the
	// team pair within the search window.
	ErrGameNotFound = errors.New("game not found")

	// ErrBoxScoreUnavailable means the game exists but per-player stats are
	// missing. Prop evaluation must treat this as undetermined, never as a
	// zero stat line.
	ErrBoxScoreUnavailable = errors.New("box score unavailable")
)

// ProviderAdapter is the uniform contract over one external sports data
// source. Each adapter owns its provider's response-shape quirks and
// presents normalized snapshots regardless of source field names.
type ProviderAdapter interface {
	// Name returns the adapter's registry key (e.g. "espn").
	Name() string

	// SupportsSport reports whether this adapter can serve the sport at all.
	SupportsSport(sport models.SportCode) bool

	// SupportsPlayerStats reports whether FetchBoxScore is meaningful for
	// this adapter. Score-only fallback providers return false.
	SupportsPlayerStats() bool

	// FindGame locates a game by team pair near approxDate. Adapters search
	// a small date window (yesterday through tomorrow, or a few days back
	// for recently completed games) because provider date semantics are
	// unreliable. Returns ErrGameNotFound when the provider has no match.
	FindGame(ctx context.Context, sport models.SportCode, teamA, teamB string, approxDate time.Time) (*models.GameSnapshot, error)

	// FetchBoxScore retrieves per-player stats for a located game.
	// Returns ErrBoxScoreUnavailable when the provider has no stat rows.
	FetchBoxScore(ctx context.Context, sport models.SportCode, gameID string, date time.Time) (*models.BoxScore, error)
}
