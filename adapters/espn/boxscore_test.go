package espn

import (
	"testing"

	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnapshot_CompletedGame(t *testing.T) {
	e := &event{
		ID:   "401585601",
		Date: "2026-03-07T19:00Z",
		Status: eventStatus{Type: statusType{
			State:       "post",
			Completed:   true,
			ShortDetail: "Final",
		}},
		Competitions: []competition{{
			Competitors: []competitor{
				{HomeAway: "home", Score: "110", Team: team{DisplayName: "Denver Nuggets"}},
				{HomeAway: "away", Score: "102", Team: team{DisplayName: "Boston Celtics"}},
			},
		}},
	}

	snap := e.toSnapshot(models.SportNBA)
	assert.Equal(t, "Denver Nuggets", snap.HomeTeam)
	assert.Equal(t, 110, snap.HomeScore)
	assert.Equal(t, 102, snap.AwayScore)
	assert.True(t, snap.IsComplete)
	assert.False(t, snap.IsLive)
	assert.Equal(t, 2026, snap.CommenceTime.Year())
}

func TestToSnapshot_LiveGame(t *testing.T) {
	e := &event{
		ID:     "401585602",
		Status: eventStatus{Type: statusType{State: "in", ShortDetail: "Q3 7:42"}},
	}
	snap := e.toSnapshot(models.SportNBA)
	assert.True(t, snap.IsLive)
	assert.False(t, snap.IsComplete)
}

func TestNormalizeBoxScore_CategoryColumns(t *testing.T) {
	resp := &summaryResponse{BoxScore: summaryBoxScore{Players: []playerGroup{
		{
			HomeAway: "away",
			Team:     team{Abbreviation: "CIN"},
			Statistics: []statCategory{{
				Name:  "receiving",
				Names: []string{"REC", "YDS", "TD"},
				Athletes: []athlete{{
					Athlete: athleteInfo{ID: "4362628", DisplayName: "Ja'Marr Chase"},
					Stats:   []string{"7", "91", "1"},
				}},
			}},
		},
	}}}

	box := normalizeBoxScore("g1", models.SportNFL, resp)
	require.Len(t, box.AwayPlayers, 1)

	chase := box.AwayPlayers[0]
	assert.Equal(t, "Ja'Marr Chase", chase.PlayerName)
	assert.Equal(t, 91.0, chase.Stats["rec_yds"], "receiving YDS must not land in rush_yds")
	assert.Equal(t, 7.0, chase.Stats["rec"])
}

func TestNormalizeBoxScore_MergesCategoriesPerPlayer(t *testing.T) {
	resp := &summaryResponse{BoxScore: summaryBoxScore{Players: []playerGroup{
		{
			HomeAway: "home",
			Team:     team{Abbreviation: "SF"},
			Statistics: []statCategory{
				{
					Name:  "rushing",
					Names: []string{"CAR", "YDS"},
					Athletes: []athlete{{
						Athlete: athleteInfo{ID: "3117251", DisplayName: "Christian McCaffrey"},
						Stats:   []string{"22", "107"},
					}},
				},
				{
					Name:  "receiving",
					Names: []string{"REC", "YDS"},
					Athletes: []athlete{{
						Athlete: athleteInfo{ID: "3117251", DisplayName: "Christian McCaffrey"},
						Stats:   []string{"5", "43"},
					}},
				},
			},
		},
	}}}

	box := normalizeBoxScore("g2", models.SportNFL, resp)
	require.Len(t, box.HomePlayers, 1, "same athlete across categories collapses to one line")

	cmc := box.HomePlayers[0]
	assert.Equal(t, 107.0, cmc.Stats["rush_yds"])
	assert.Equal(t, 43.0, cmc.Stats["rec_yds"])
}

func TestParseMade(t *testing.T) {
	v, ok := parseMade("3-7")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok = parseMade("12")
	assert.False(t, ok)
}

func TestMatchesPair(t *testing.T) {
	snap := &models.GameSnapshot{AwayTeam: "Boston Celtics", HomeTeam: "Denver Nuggets"}

	assert.True(t, matchesPair(snap, "Celtics", "Nuggets"))
	assert.True(t, matchesPair(snap, "Nuggets", "Celtics"), "order insensitive")
	assert.True(t, matchesPair(snap, "Celtics", ""), "half descriptor matches one side")
	assert.False(t, matchesPair(snap, "Lakers", "Nuggets"))
}
