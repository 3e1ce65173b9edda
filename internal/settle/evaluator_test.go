package settle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGames struct {
	snap      *models.GameSnapshot
	findErr   error
	box       *models.BoxScore
	boxErr    error
	findCalls int
}

func (f *fakeGames) FindGame(ctx context.Context, sport models.SportCode, teamA, teamB string, date time.Time) (*models.GameSnapshot, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.snap, nil
}

func (f *fakeGames) FetchBoxScore(ctx context.Context, sport models.SportCode, snap *models.GameSnapshot) (*models.BoxScore, error) {
	if f.boxErr != nil {
		return nil, f.boxErr
	}
	return f.box, nil
}

func finalSnap(away, home string, awayScore, homeScore int) *models.GameSnapshot {
	return &models.GameSnapshot{
		GameID:     "g1",
		Provider:   "espn",
		AwayTeam:   away,
		HomeTeam:   home,
		AwayScore:  awayScore,
		HomeScore:  homeScore,
		IsComplete: true,
		StatusText: "Final",
	}
}

func started() time.Time { return time.Now().Add(-3 * time.Hour) }

func TestEvaluate_MoneylineHomeWin(t *testing.T) {
	games := &fakeGames{snap: finalSnap("Phoenix Suns", "Denver Nuggets", 102, 110)}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:           models.SportNBA,
		Kind:            models.KindMoneyline,
		AwayTeam:        "Phoenix Suns",
		HomeTeam:        "Denver Nuggets",
		StartTime:       started(),
		Selection:       models.Selection{Team: "Nuggets"},
		Stake:           decimal.NewFromInt(100),
		PotentialPayout: decimal.RequireFromString("90.91"),
		Status:          models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictWon, out.Verdict)
	assert.True(t, out.Profit.Equal(w.PotentialPayout), "won profit is +potentialPayout, got %s", out.Profit)
}

func TestEvaluate_SpreadAwayCovers(t *testing.T) {
	games := &fakeGames{snap: finalSnap("Boston Celtics", "Milwaukee Bucks", 100, 102)}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindSpread,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Milwaukee Bucks",
		StartTime: started(),
		Selection: models.Selection{Team: "Celtics", Line: 3.5},
		Stake:     decimal.NewFromInt(50),
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictWon, out.Verdict, "100+3.5 beats 102")
}

func TestEvaluate_SpreadLandsOnNumberIsPush(t *testing.T) {
	games := &fakeGames{snap: finalSnap("Boston Celtics", "Milwaukee Bucks", 99, 102)}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindSpread,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Milwaukee Bucks",
		StartTime: started(),
		Selection: models.Selection{Team: "Celtics", Line: 3},
		Stake:     decimal.NewFromInt(50),
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictPush, out.Verdict)
	assert.True(t, out.Profit.IsZero())
}

func TestEvaluate_TotalOverLosesUnderTheLine(t *testing.T) {
	games := &fakeGames{snap: finalSnap("Dallas Mavericks", "Utah Jazz", 108, 112)}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindTotal,
		AwayTeam:  "Dallas Mavericks",
		HomeTeam:  "Utah Jazz",
		StartTime: started(),
		Selection: models.Selection{Direction: models.Over, Line: 220.5},
		Stake:     decimal.NewFromInt(25),
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictLost, out.Verdict, "combined 220 under 220.5")
	assert.True(t, out.Profit.Equal(decimal.NewFromInt(-25)), "lost profit is -stake")
}

func TestEvaluate_TotalExactLineIsPush(t *testing.T) {
	games := &fakeGames{snap: finalSnap("Dallas Mavericks", "Utah Jazz", 110, 110)}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindTotal,
		AwayTeam:  "Dallas Mavericks",
		HomeTeam:  "Utah Jazz",
		StartTime: started(),
		Selection: models.Selection{Direction: models.Under, Line: 220},
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictPush, out.Verdict)
}

func TestEvaluate_PropPlayerAbsentStaysUndetermined(t *testing.T) {
	games := &fakeGames{
		snap: finalSnap("Cincinnati Bengals", "Baltimore Ravens", 24, 27),
		box: &models.BoxScore{
			HomePlayers: []models.PlayerLine{
				{PlayerID: "4360939", PlayerName: "Zay Flowers", Stats: map[string]float64{"rec_yds": 91}},
			},
		},
	}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNFL,
		Kind:      models.KindPlayerProp,
		AwayTeam:  "Cincinnati Bengals",
		HomeTeam:  "Baltimore Ravens",
		StartTime: started(),
		Selection: models.Selection{Player: "Ja'Marr Chase", Stat: "rec_yds", Direction: models.Over, Line: 48.5},
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictUndetermined, out.Verdict)
	assert.Contains(t, out.Detail, "not found in box score")
	assert.True(t, out.Profit.IsZero(), "no profit may be assigned while undetermined")
}

func TestEvaluate_PropCombinedStatSums(t *testing.T) {
	games := &fakeGames{
		snap: finalSnap("Boston Celtics", "Denver Nuggets", 112, 118),
		box: &models.BoxScore{
			HomePlayers: []models.PlayerLine{
				{PlayerID: "3112335", PlayerName: "Nikola Jokic", Stats: map[string]float64{"pts": 28, "reb": 14, "ast": 9}},
			},
		},
	}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindPlayerProp,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: started(),
		Selection: models.Selection{Player: "Jokic", Stat: "pts+reb+ast", Direction: models.Over, Line: 49.5},
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictWon, out.Verdict, "28+14+9=51 clears 49.5")
}

func TestEvaluate_PropMissingStatColumnStaysUndetermined(t *testing.T) {
	games := &fakeGames{
		snap: finalSnap("Boston Celtics", "Denver Nuggets", 112, 118),
		box: &models.BoxScore{
			HomePlayers: []models.PlayerLine{
				{PlayerID: "3112335", PlayerName: "Nikola Jokic", Stats: map[string]float64{"pts": 28}},
			},
		},
	}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindPlayerProp,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: started(),
		Selection: models.Selection{Player: "Nikola Jokic", Stat: "pts+reb+ast", Direction: models.Over, Line: 49.5},
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictUndetermined, out.Verdict)
}

func TestEvaluate_SkipsUnknownStartTime(t *testing.T) {
	games := &fakeGames{snap: finalSnap("A", "B", 1, 0)}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindMoneyline,
		Selection: models.Selection{Team: "A"},
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictUndetermined, out.Verdict)
	assert.Equal(t, 0, games.findCalls, "unknown start time must not trigger a lookup")
}

func TestEvaluate_GameNotCompleteStaysActive(t *testing.T) {
	snap := finalSnap("Boston Celtics", "Denver Nuggets", 55, 58)
	snap.IsComplete = false
	snap.IsLive = true
	snap.StatusText = "Q3 4:12"
	games := &fakeGames{snap: snap}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindMoneyline,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: started(),
		Selection: models.Selection{Team: "Nuggets"},
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictUndetermined, out.Verdict)
}

func TestEvaluate_ProviderFailureSurfacesDiagnostic(t *testing.T) {
	games := &fakeGames{findErr: errors.New("all providers failed: 503")}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindMoneyline,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: started(),
		Selection: models.Selection{Team: "Nuggets"},
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictUndetermined, out.Verdict)
	assert.Contains(t, out.Detail, "503")
}

func TestEvaluate_NotFoundIsNotGuessed(t *testing.T) {
	games := &fakeGames{findErr: contracts.ErrGameNotFound}
	eval := New(games, nil)

	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindMoneyline,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: started(),
		Selection: models.Selection{Team: "Nuggets"},
		Status:    models.StatusActive,
	}

	out := eval.Evaluate(context.Background(), w)
	assert.Equal(t, VerdictUndetermined, out.Verdict)
}

func TestEvaluate_AlreadySettledShortCircuits(t *testing.T) {
	games := &fakeGames{snap: finalSnap("Boston Celtics", "Denver Nuggets", 112, 118)}
	eval := New(games, nil)

	now := time.Now()
	w := &models.Wager{
		Sport:     models.SportNBA,
		Kind:      models.KindMoneyline,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: started(),
		Selection: models.Selection{Team: "Nuggets"},
		Status:    models.StatusSettled,
		Result:    models.ResultWon,
		Profit:    decimal.RequireFromString("90.91"),
		SettledAt: &now,
	}

	out := eval.Evaluate(context.Background(), w)
	require.Equal(t, VerdictUndetermined, out.Verdict)
	assert.Equal(t, 0, games.findCalls, "settled wagers must not be re-graded")
	assert.Equal(t, models.ResultWon, w.Result)
	assert.True(t, w.Profit.Equal(decimal.RequireFromString("90.91")))
}
