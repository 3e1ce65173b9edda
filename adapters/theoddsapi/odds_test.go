package theoddsapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
)

func quoteEvent() *oddsEvent {
	return &oddsEvent{
		ID:       "evt-1",
		AwayTeam: "Denver Nuggets",
		HomeTeam: "Phoenix Suns",
		Bookmakers: []bookmaker{
			{
				Key:        "draftkings",
				LastUpdate: time.Date(2026, 3, 7, 23, 50, 0, 0, time.UTC),
				Markets: []market{
					{
						Key: "h2h",
						Outcomes: []outcome{
							{Name: "Denver Nuggets", Price: -125},
							{Name: "Phoenix Suns", Price: +105},
						},
					},
					{
						Key: "spreads",
						Outcomes: []outcome{
							{Name: "Denver Nuggets", Price: -110, Point: -2.5},
							{Name: "Phoenix Suns", Price: -110, Point: 2.5},
						},
					},
					{
						Key: "totals",
						Outcomes: []outcome{
							{Name: "Over", Price: -112, Point: 221.5},
							{Name: "Under", Price: -108, Point: 221.5},
						},
					},
				},
			},
		},
	}
}

func TestQuoteFromEvent_Moneyline(t *testing.T) {
	w := &models.Wager{
		Kind:      models.KindMoneyline,
		Selection: models.Selection{Team: "Nuggets"},
	}

	q, err := quoteFromEvent(quoteEvent(), w)
	require.NoError(t, err)

	assert.Equal(t, -125, q.Odds)
	assert.Equal(t, "draftkings", q.Book)
}

func TestQuoteFromEvent_SpreadCarriesPoint(t *testing.T) {
	w := &models.Wager{
		Kind:      models.KindSpread,
		Selection: models.Selection{Team: "Suns", Line: 2.5},
	}

	q, err := quoteFromEvent(quoteEvent(), w)
	require.NoError(t, err)

	assert.Equal(t, -110, q.Odds)
	assert.Equal(t, 2.5, q.Line)
}

func TestQuoteFromEvent_TotalMatchesDirection(t *testing.T) {
	w := &models.Wager{
		Kind:      models.KindTotal,
		Selection: models.Selection{Direction: models.Under, Line: 220.5},
	}

	q, err := quoteFromEvent(quoteEvent(), w)
	require.NoError(t, err)

	assert.Equal(t, -108, q.Odds)
	assert.Equal(t, 221.5, q.Line)
}

func TestQuoteFromEvent_UnsupportedKind(t *testing.T) {
	w := &models.Wager{Kind: models.KindPlayerProp}

	_, err := quoteFromEvent(quoteEvent(), w)
	assert.ErrorIs(t, err, contracts.ErrQuoteUnavailable)
}

func TestToSnapshot_ScoresByTeamName(t *testing.T) {
	resp := &scoreResponse{
		ID:           "abc",
		CommenceTime: time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339),
		Completed:    true,
		HomeTeam:     "Phoenix Suns",
		AwayTeam:     "Denver Nuggets",
		Scores: []teamScore{
			{Name: "Phoenix Suns", Score: "109"},
			{Name: "Denver Nuggets", Score: "112"},
		},
	}

	snap := resp.toSnapshot(models.SportNBA)

	assert.Equal(t, 109, snap.HomeScore)
	assert.Equal(t, 112, snap.AwayScore)
	assert.True(t, snap.IsComplete)
	assert.False(t, snap.IsLive)
	assert.Equal(t, "Final", snap.StatusText)
}

func TestToSnapshot_InProgress(t *testing.T) {
	resp := &scoreResponse{
		ID:           "abc",
		CommenceTime: time.Now().UTC().Add(-30 * time.Minute).Format(time.RFC3339),
		Completed:    false,
		HomeTeam:     "Phoenix Suns",
		AwayTeam:     "Denver Nuggets",
		Scores: []teamScore{
			{Name: "Phoenix Suns", Score: "54"},
			{Name: "Denver Nuggets", Score: "61"},
		},
	}

	snap := resp.toSnapshot(models.SportNBA)

	assert.True(t, snap.IsLive)
	assert.False(t, snap.IsComplete)
}

func TestToSnapshot_ScheduledHasNoScores(t *testing.T) {
	resp := &scoreResponse{
		ID:           "abc",
		CommenceTime: time.Now().UTC().Add(3 * time.Hour).Format(time.RFC3339),
		HomeTeam:     "Phoenix Suns",
		AwayTeam:     "Denver Nuggets",
	}

	snap := resp.toSnapshot(models.SportNBA)

	assert.False(t, snap.IsLive)
	assert.Equal(t, "Scheduled", snap.StatusText)
}
