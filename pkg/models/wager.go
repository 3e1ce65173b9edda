package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SportCode identifies a sport/league using the vendor-style key convention
// (e.g. "basketball_nba"), shared across adapters and the normalizer.
type SportCode string

const (
	SportNBA          SportCode = "basketball_nba"
	SportNFL          SportCode = "americanfootball_nfl"
	SportNHL          SportCode = "icehockey_nhl"
	SportMLB          SportCode = "baseball_mlb"
	SportNCAAF        SportCode = "americanfootball_ncaaf"
	SportNCAAB        SportCode = "basketball_ncaab"
	SportMMA          SportCode = "mma_mixed_martial_arts"
	SportEsports      SportCode = "esports"
	SportUnclassified SportCode = "unclassified"
)

// BetKind classifies how a wager is graded.
type BetKind string

const (
	KindMoneyline  BetKind = "moneyline"
	KindSpread     BetKind = "spread"
	KindTotal      BetKind = "total"
	KindPlayerProp BetKind = "player_prop"
	KindParlay     BetKind = "parlay"
	KindTeaser     BetKind = "teaser"
)

// WagerStatus is the wager lifecycle state.
type WagerStatus string

const (
	StatusPending WagerStatus = "pending"
	StatusActive  WagerStatus = "active"
	StatusSettled WagerStatus = "settled"
)

// WagerResult is set only when status is settled.
type WagerResult string

const (
	ResultWon  WagerResult = "won"
	ResultLost WagerResult = "lost"
	ResultPush WagerResult = "push"
)

// OverUnder is the direction of a total or player prop selection.
type OverUnder string

const (
	Over  OverUnder = "over"
	Under OverUnder = "under"
)

// Selection describes what side of a market the wager took.
// Exactly one shape is populated depending on the bet kind:
// Team for moneylines, Team+Line for spreads, Direction+Line for
// totals, Player+Stat+Direction+Line for props.
type Selection struct {
	Team      string    `json:"team,omitempty"`
	Player    string    `json:"player,omitempty"`
	Stat      string    `json:"stat,omitempty"` // normalized stat key, e.g. "pts+reb+ast"
	Direction OverUnder `json:"direction,omitempty"`
	Line      float64   `json:"line,omitempty"`
}

// Wager is one user-placed bet. Result and Profit are set iff
// Status == StatusSettled; the evaluator is the only writer of those
// fields, the CLV model the only writer of the closing-line fields.
type Wager struct {
	ID        string    `json:"id"`
	Sport     SportCode `json:"sport"`
	Kind      BetKind   `json:"kind"`
	AwayTeam  string    `json:"away_team"`
	HomeTeam  string    `json:"home_team"`
	StartTime time.Time `json:"start_time,omitempty"` // zero when unknown

	Selection Selection `json:"selection"`

	OpeningOdds     int             `json:"opening_odds"` // American
	Stake           decimal.Decimal `json:"stake"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`

	Status WagerStatus `json:"status"`
	Result WagerResult `json:"result,omitempty"`
	Profit decimal.Decimal `json:"profit"`

	// Notes carries the annotated leg lines for parlays/teasers and any
	// free-form text that came with the slip.
	Notes string `json:"notes,omitempty"`

	ClosingOdds   int             `json:"closing_odds,omitempty"`
	CLVPercent    float64         `json:"clv_percent,omitempty"`
	ExpectedValue decimal.Decimal `json:"expected_value"`

	SettledAt      *time.Time `json:"settled_at,omitempty"`
	LastFetchError string     `json:"last_fetch_error,omitempty"`
	PlacedAt       time.Time  `json:"placed_at"`
}

// IsSettled reports whether the wager has reached a terminal state.
func (w *Wager) IsSettled() bool {
	return w.Status == StatusSettled
}

// IsMultiLeg reports whether the wager grades leg-by-leg.
func (w *Wager) IsMultiLeg() bool {
	return w.Kind == KindParlay || w.Kind == KindTeaser
}

// LegStatus is the per-leg lifecycle inside a parlay/teaser.
type LegStatus string

const (
	LegPending LegStatus = "pending"
	LegLive    LegStatus = "live"
	LegWon     LegStatus = "won"
	LegLost    LegStatus = "lost"
	LegPush    LegStatus = "push"
)

// Resolved reports whether the leg has reached a terminal outcome.
// A pushed leg counts as resolved (neutral, never a loss).
func (s LegStatus) Resolved() bool {
	return s == LegWon || s == LegLost || s == LegPush
}

// WagerLeg is one sub-bet inside a parlay or teaser. Legs have no storage
// identity of their own: they are serialized into the parent wager's Notes
// field one line per leg and re-derived on every evaluation pass.
type WagerLeg struct {
	Sport     SportCode `json:"sport"`
	Kind      BetKind   `json:"kind"`
	AwayTeam  string    `json:"away_team"`
	HomeTeam  string    `json:"home_team"`
	StartTime time.Time `json:"start_time,omitempty"`
	Selection Selection `json:"selection"`

	// Teased marks that TeasedLine holds the effective line after the
	// teaser adjustment. The flag is explicit because a teased line can
	// legitimately land on zero (a -7.5 favorite teased 7.5 points is a
	// pick'em). Both are unset for parlay legs.
	Teased     bool    `json:"teased,omitempty"`
	TeasedLine float64 `json:"teased_line,omitempty"`

	Status LegStatus `json:"status"`
}

// EffectiveLine returns the line the leg is graded against.
func (l *WagerLeg) EffectiveLine() float64 {
	if l.Teased {
		return l.TeasedLine
	}
	return l.Selection.Line
}
