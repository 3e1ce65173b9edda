package testutil

import (
	"time"

	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewTestWager creates a straight wager ready for evaluation
func NewTestWager(kind models.BetKind, awayTeam, homeTeam string, hoursSinceStart float64) models.Wager {
	return models.Wager{
		ID:              uuid.NewString(),
		Sport:           models.SportNBA,
		Kind:            kind,
		AwayTeam:        awayTeam,
		HomeTeam:        homeTeam,
		StartTime:       time.Now().Add(-time.Duration(hoursSinceStart * float64(time.Hour))),
		OpeningOdds:     -110,
		Stake:           decimal.NewFromInt(100),
		PotentialPayout: decimal.RequireFromString("90.91"),
		Status:          models.StatusActive,
		PlacedAt:        time.Now().Add(-24 * time.Hour),
	}
}

// NewTestSnapshot creates a final game snapshot
func NewTestSnapshot(awayTeam, homeTeam string, awayScore, homeScore int) *models.GameSnapshot {
	return &models.GameSnapshot{
		GameID:       uuid.NewString(),
		Provider:     "espn",
		SportKey:     models.SportNBA,
		AwayTeam:     awayTeam,
		HomeTeam:     homeTeam,
		AwayScore:    awayScore,
		HomeScore:    homeScore,
		IsComplete:   true,
		StatusText:   "Final",
		CommenceTime: time.Now().Add(-3 * time.Hour),
		FetchedAt:    time.Now(),
	}
}

// NewTestPlayerLine creates a box-score stat line
func NewTestPlayerLine(name string, stats map[string]float64) models.PlayerLine {
	return models.PlayerLine{
		PlayerID:   uuid.NewString(),
		PlayerName: name,
		Stats:      stats,
	}
}

// GoldenSlip is a slip text with its expected parse outcome, used to
// pin the parser against real bookmaker paste formats.
type GoldenSlip struct {
	Name          string
	Text          string
	ExpectedKind  models.BetKind
	ExpectedOdds  int
	ExpectedStake string
}

// GetGoldenSlips returns known-good slip fixtures
func GetGoldenSlips() []GoldenSlip {
	return []GoldenSlip{
		{
			Name:          "Straight Moneyline",
			Text:          "Denver Nuggets vs Phoenix Suns [NBA]\nNuggets ML -110\n$100 to win $90.91",
			ExpectedKind:  models.KindMoneyline,
			ExpectedOdds:  -110,
			ExpectedStake: "100",
		},
		{
			Name:          "Point Spread",
			Text:          "Boston Celtics vs Milwaukee Bucks [NBA]\nCeltics -5.5 -105\n$55 to win $52.38",
			ExpectedKind:  models.KindSpread,
			ExpectedOdds:  -105,
			ExpectedStake: "55",
		},
		{
			Name:          "Game Total",
			Text:          "Dallas Mavericks vs Utah Jazz [NBA]\nOver 220.5 -110\n$55 to win $50",
			ExpectedKind:  models.KindTotal,
			ExpectedOdds:  -110,
			ExpectedStake: "55",
		},
	}
}
