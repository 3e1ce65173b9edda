package normalize_test

import (
	"testing"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveSport_BracketTags(t *testing.T) {
	assert.Equal(t, models.SportNFL, normalize.ResolveSport("[NFL] Bengals -3.5"))
	assert.Equal(t, models.SportMMA, normalize.ResolveSport("[MU] Jones vs Miocic"))
	assert.Equal(t, models.SportNCAAB, normalize.ResolveSport("[CBB] Duke ML"))
}

// Bare sport-code tokens scan in a fixed order, so text naming two
// sports classifies the same way every run.
func TestResolveSport_TwoTokensIsStable(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Equal(t, models.SportNBA, normalize.ResolveSport("NBA x UFC crossover special"))
	}
}

func TestResolveSport_LeagueMarkers(t *testing.T) {
	assert.Equal(t, models.SportMMA, normalize.ResolveSport("UFC 300 main event"))
	assert.Equal(t, models.SportEsports, normalize.ResolveSport("LCK spring: T1 vs GenG"))
}

// College names must win before pro-league city/nickname matches: the
// Hoosiers would otherwise classify as the NBA Pacers via "Indiana".
func TestResolveSport_CollegeBeforePro(t *testing.T) {
	assert.Equal(t, models.SportNCAAF, normalize.ResolveSport("Indiana Hoosiers +7 vs Ohio State Buckeyes"))
	assert.Equal(t, models.SportNCAAB, normalize.ResolveSport("Gonzaga Bulldogs -4.5"))
}

// NHL is checked before NFL so a bare "Panthers" leans hockey, while the
// full NFL name still resolves correctly.
func TestResolveSport_NicknameOverlap(t *testing.T) {
	assert.Equal(t, models.SportNHL, normalize.ResolveSport("Florida Panthers ML"))
	assert.Equal(t, models.SportNFL, normalize.ResolveSport("Carolina Panthers +3"))
}

func TestResolveSport_FullTeamNames(t *testing.T) {
	assert.Equal(t, models.SportNBA, normalize.ResolveSport("Los Angeles Lakers -6.5"))
	assert.Equal(t, models.SportNFL, normalize.ResolveSport("Kansas City Chiefs ML"))
	assert.Equal(t, models.SportMLB, normalize.ResolveSport("New York Yankees over 8.5"))
}

func TestResolveSport_ParenAbbreviation(t *testing.T) {
	assert.Equal(t, models.SportNFL, normalize.ResolveSport("Ja'Marr Chase (CIN) Over 88.5 Receiving Yards"))
	assert.Equal(t, models.SportNBA, normalize.ResolveSport("Stephen Curry (GSW) alternate line"))
}

func TestResolveSport_StatKeywords(t *testing.T) {
	assert.Equal(t, models.SportNFL, normalize.ResolveSport("Anytime touchdown scorer"))
	assert.Equal(t, models.SportMLB, normalize.ResolveSport("Over 6.5 strikeouts"))
	assert.Equal(t, models.SportNBA, normalize.ResolveSport("Over 42.5 PRA"))
	assert.Equal(t, models.SportNHL, normalize.ResolveSport("Over 3.5 shots on goal"))
}

func TestResolveSport_PositionAbbreviations(t *testing.T) {
	assert.Equal(t, models.SportNFL, normalize.ResolveSport("Mahomes QB Over 1.5"))
	assert.Equal(t, models.SportMLB, normalize.ResolveSport("Cole SP Over 18.5 outs"))
}

func TestResolveSport_Unclassified(t *testing.T) {
	assert.Equal(t, models.SportUnclassified, normalize.ResolveSport("Mystery Club vs Unknown FC"))
	// Completely unmatchable text still never errors.
	assert.Equal(t, models.SportUnclassified, normalize.ResolveSport("some random note"))
}

func TestMatchName(t *testing.T) {
	assert.True(t, normalize.MatchName("Lakers", "Los Angeles Lakers"))
	assert.True(t, normalize.MatchName("Los Angeles Lakers", "lakers"))
	assert.True(t, normalize.MatchName("Quinten Post", "Post"))
	assert.False(t, normalize.MatchName("Celtics", "Los Angeles Lakers"))
	assert.False(t, normalize.MatchName("", "Lakers"))
}

func TestSplitMatchup(t *testing.T) {
	away, home, ok := normalize.SplitMatchup("Boston Celtics vs Miami Heat")
	assert.True(t, ok)
	assert.Equal(t, "Boston Celtics", away)
	assert.Equal(t, "Miami Heat", home)

	away, home, ok = normalize.SplitMatchup("Jets @ Bills")
	assert.True(t, ok)
	assert.Equal(t, "Jets", away)
	assert.Equal(t, "Bills", home)

	_, _, ok = normalize.SplitMatchup("no separator here")
	assert.False(t, ok)
}
