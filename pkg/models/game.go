package models

import "time"

// GameSnapshot is the aggregator's normalized view of one game, regardless
// of which provider produced it. Ephemeral: recomputed every evaluation
// pass and cached briefly to bound provider call volume.
type GameSnapshot struct {
	GameID       string    `json:"game_id"`
	Provider     string    `json:"provider"`
	SportKey     SportCode `json:"sport_key"`
	AwayTeam     string    `json:"away_team"`
	HomeTeam     string    `json:"home_team"`
	AwayScore    int       `json:"away_score"`
	HomeScore    int       `json:"home_score"`
	StatusText   string    `json:"status_text"` // human-readable, e.g. "Q4 2:31" or "Final"
	IsLive       bool      `json:"is_live"`
	IsComplete   bool      `json:"is_complete"`
	CommenceTime time.Time `json:"commence_time,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// PlayerLine is one player's stat row in a box score. Stats is keyed by
// normalized stat keys ("pts", "reb", "ast", "rec_yds", ...). PlayerID is
// the provider's stable identifier when one exists, empty otherwise.
type PlayerLine struct {
	PlayerID   string             `json:"player_id,omitempty"`
	PlayerName string             `json:"player_name"`
	TeamAbbr   string             `json:"team_abbr,omitempty"`
	Stats      map[string]float64 `json:"stats"`
}

// BoxScore holds per-player stat rows for a game.
type BoxScore struct {
	GameID      string       `json:"game_id"`
	Provider    string       `json:"provider"`
	AwayPlayers []PlayerLine `json:"away_players"`
	HomePlayers []PlayerLine `json:"home_players"`
}

// AllPlayers returns away then home rows as a single slice.
func (b *BoxScore) AllPlayers() []PlayerLine {
	out := make([]PlayerLine, 0, len(b.AwayPlayers)+len(b.HomePlayers))
	out = append(out, b.AwayPlayers...)
	out = append(out, b.HomePlayers...)
	return out
}
