package football_nfl

import (
	"testing"

	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatKey(t *testing.T) {
	m := NewModule()

	assert.Equal(t, []string{"rec_yds"}, m.NormalizeStatKey("Receiving Yards"))
	assert.Equal(t, []string{"rec_yds"}, m.NormalizeStatKey("rec_yds"))
	assert.Equal(t, []string{"rec"}, m.NormalizeStatKey("receptions"))
	assert.Nil(t, m.NormalizeStatKey("rebounds"), "not a football stat")
}

func TestNormalizeTeamName(t *testing.T) {
	m := NewModule()

	assert.Equal(t, "Kansas City Chiefs", m.NormalizeTeamName("KC Chiefs"))
	assert.Equal(t, "San Francisco 49ers", m.NormalizeTeamName("SF 49ers"))
	assert.Equal(t, "Green Bay Packers", m.NormalizeTeamName("Green Bay Packers"))
}

func TestModuleIdentity(t *testing.T) {
	m := NewModule()
	assert.Equal(t, models.SportNFL, m.GetSportKey())
	assert.Equal(t, []string{"espn", "theoddsapi"}, m.GetProviderChain())
}
