package progress

import (
	"context"
	"testing"
	"time"

	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGames struct {
	snap *models.GameSnapshot
	box  *models.BoxScore
}

func (f *fakeGames) FindGame(ctx context.Context, sport models.SportCode, teamA, teamB string, date time.Time) (*models.GameSnapshot, error) {
	return f.snap, nil
}

func (f *fakeGames) FetchBoxScore(ctx context.Context, sport models.SportCode, snap *models.GameSnapshot) (*models.BoxScore, error) {
	if f.box == nil {
		return nil, contracts.ErrBoxScoreUnavailable
	}
	return f.box, nil
}

func liveSnap() *models.GameSnapshot {
	return &models.GameSnapshot{
		GameID:     "g1",
		AwayTeam:   "Boston Celtics",
		HomeTeam:   "Denver Nuggets",
		AwayScore:  58,
		HomeScore:  61,
		IsLive:     true,
		StatusText: "Q3 7:42",
	}
}

func TestProject_TotalTracksCombinedScore(t *testing.T) {
	p := New(&fakeGames{snap: liveSnap()})

	w := &models.Wager{
		ID:        "w1",
		Sport:     models.SportNBA,
		Kind:      models.KindTotal,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: time.Now().Add(-time.Hour),
		Selection: models.Selection{Direction: models.Over, Line: 220.5},
	}

	proj, err := p.Project(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, 119.0, proj.Current)
	assert.Equal(t, 220.5, proj.Target)
	assert.InDelta(t, 53.9, proj.Percent, 0.1)
	assert.True(t, proj.IsLive)
}

func TestProject_PropTracksPlayerStat(t *testing.T) {
	p := New(&fakeGames{
		snap: liveSnap(),
		box: &models.BoxScore{
			HomePlayers: []models.PlayerLine{
				{PlayerName: "Nikola Jokic", Stats: map[string]float64{"pts": 18, "reb": 9, "ast": 6}},
			},
		},
	})

	w := &models.Wager{
		ID:        "w2",
		Sport:     models.SportNBA,
		Kind:      models.KindPlayerProp,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: time.Now().Add(-time.Hour),
		Selection: models.Selection{Player: "Jokic", Stat: "pts+reb+ast", Direction: models.Over, Line: 49.5},
	}

	proj, err := p.Project(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, 33.0, proj.Current)
	assert.Contains(t, proj.Summary, "Nikola Jokic")
}

func TestProject_PropWithoutBoxScoreDegrades(t *testing.T) {
	p := New(&fakeGames{snap: liveSnap()})

	w := &models.Wager{
		ID:        "w3",
		Sport:     models.SportNBA,
		Kind:      models.KindPlayerProp,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: time.Now().Add(-time.Hour),
		Selection: models.Selection{Player: "Jokic", Stat: "pts", Direction: models.Over, Line: 25.5},
	}

	proj, err := p.Project(context.Background(), w)
	require.NoError(t, err)
	assert.Contains(t, proj.Summary, "stats not yet available")
}

func TestProject_SpreadReportsCoverState(t *testing.T) {
	p := New(&fakeGames{snap: liveSnap()})

	w := &models.Wager{
		ID:        "w4",
		Sport:     models.SportNBA,
		Kind:      models.KindSpread,
		AwayTeam:  "Boston Celtics",
		HomeTeam:  "Denver Nuggets",
		StartTime: time.Now().Add(-time.Hour),
		Selection: models.Selection{Team: "Celtics", Line: 4.5},
	}

	proj, err := p.Project(context.Background(), w)
	require.NoError(t, err)
	assert.Contains(t, proj.Summary, "covering", "-3 margin +4.5 line is covering")
}

func TestProject_UnknownStartTimeIsNotTrackable(t *testing.T) {
	p := New(&fakeGames{snap: liveSnap()})
	w := &models.Wager{ID: "w5", Kind: models.KindMoneyline}

	proj, err := p.Project(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, "not yet trackable", proj.Summary)
}
