package slip_test

import (
	"testing"
	"time"

	"github.com/XavierBriggs/Themis/internal/slip"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegs_RoundTrip(t *testing.T) {
	start := time.Date(2026, 1, 15, 19, 30, 0, 0, time.UTC)
	legs := []models.WagerLeg{
		{
			Sport:     models.SportNBA,
			Kind:      models.KindSpread,
			AwayTeam:  "Boston Celtics",
			HomeTeam:  "Miami Heat",
			StartTime: start,
			Selection: models.Selection{Team: "Celtics", Line: -4.5},
			Status:    models.LegLive,
		},
		{
			Sport:      models.SportNFL,
			Kind:       models.KindTotal,
			HomeTeam:   "Buffalo Bills",
			Selection:  models.Selection{Direction: models.Under, Line: 47},
			Teased:     true,
			TeasedLine: 54.5,
			Status:     models.LegPending,
		},
		{
			Sport:     models.SportNBA,
			Kind:      models.KindPlayerProp,
			AwayTeam:  "Golden State Warriors",
			HomeTeam:  "Phoenix Suns",
			Selection: models.Selection{Player: "Stephen Curry", Direction: models.Over, Line: 28.5, Stat: "pts"},
			Status:    models.LegWon,
		},
		{
			Sport:     models.SportNHL,
			Kind:      models.KindMoneyline,
			HomeTeam:  "Florida Panthers",
			Selection: models.Selection{Team: "Florida Panthers"},
			Status:    models.LegLost,
		},
	}

	notes := slip.SerializeLegs(legs)
	parsed := slip.ParseLegs(notes)
	require.Len(t, parsed, len(legs))

	for i := range legs {
		assert.Equal(t, legs[i].Sport, parsed[i].Sport, "leg %d sport", i)
		assert.Equal(t, legs[i].Kind, parsed[i].Kind, "leg %d kind", i)
		assert.Equal(t, legs[i].Status, parsed[i].Status, "leg %d status", i)
		assert.Equal(t, legs[i].Selection.Line, parsed[i].Selection.Line, "leg %d line", i)
		assert.Equal(t, legs[i].Teased, parsed[i].Teased, "leg %d teased flag", i)
		assert.Equal(t, legs[i].TeasedLine, parsed[i].TeasedLine, "leg %d teased", i)
		assert.Equal(t, legs[i].HomeTeam, parsed[i].HomeTeam, "leg %d home", i)
	}

	assert.Equal(t, start, parsed[0].StartTime)
	assert.Equal(t, "Stephen Curry", parsed[2].Selection.Player)
	assert.Equal(t, "pts", parsed[2].Selection.Stat)
}

func TestParseLegs_IgnoresFreeformLines(t *testing.T) {
	notes := "bettor says: hammer this one\n" +
		"[TBD] [basketball_nba] Miami Heat | moneyline Miami Heat <pending>\n" +
		"random trailing note"

	legs := slip.ParseLegs(notes)
	require.Len(t, legs, 1)
	assert.Equal(t, "Miami Heat", legs[0].Selection.Team)
}

// Teaser adjustment property: an Over's effective line strictly decreases,
// an Under's strictly increases, and spreads shift toward the bettor.
func TestAdjustTeaserLine(t *testing.T) {
	over := slip.AdjustTeaserLine(models.KindTotal, models.Over, 47, 7.5)
	assert.Equal(t, 39.5, over)
	assert.Less(t, over, 47.0)

	under := slip.AdjustTeaserLine(models.KindTotal, models.Under, 47, 7.5)
	assert.Equal(t, 54.5, under)
	assert.Greater(t, under, 47.0)

	fav := slip.AdjustTeaserLine(models.KindSpread, "", -9.5, 6)
	assert.Equal(t, -3.5, fav)

	dog := slip.AdjustTeaserLine(models.KindSpread, "", 3.5, 6)
	assert.Equal(t, 9.5, dog)
}

// A 7.5-point teaser on a -7.5 favorite lands exactly on pick'em. The
// zero line must survive serialization and still grade as the effective
// line, not fall back to the original handicap.
func TestLegs_TeasedToZeroRoundTrip(t *testing.T) {
	leg := models.WagerLeg{
		Sport:      models.SportNFL,
		Kind:       models.KindSpread,
		AwayTeam:   "Kansas City Chiefs",
		HomeTeam:   "Las Vegas Raiders",
		Selection:  models.Selection{Team: "Chiefs", Line: -7.5},
		Teased:     true,
		TeasedLine: slip.AdjustTeaserLine(models.KindSpread, "", -7.5, 7.5),
		Status:     models.LegPending,
	}
	require.Equal(t, 0.0, leg.TeasedLine)
	assert.Equal(t, 0.0, leg.EffectiveLine())

	notes := slip.SerializeLegs([]models.WagerLeg{leg})
	assert.Contains(t, notes, "{teased 0}")

	parsed := slip.ParseLegs(notes)
	require.Len(t, parsed, 1)
	assert.True(t, parsed[0].Teased)
	assert.Equal(t, 0.0, parsed[0].EffectiveLine())
	assert.Equal(t, -7.5, parsed[0].Selection.Line)
}
