package basketball_nba

import (
	"testing"

	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatKey(t *testing.T) {
	m := NewModule()

	tests := []struct {
		input    string
		expected []string
	}{
		{"pts", []string{"pts"}},
		{"Points", []string{"pts"}},
		{"PRA", []string{"pts", "reb", "ast"}},
		{"pts+reb+ast", []string{"pts", "reb", "ast"}},
		{"Points + Rebounds + Assists", []string{"pts", "reb", "ast"}},
		{"threes made", []string{"3pm"}},
		{"passing yards", nil}, // not a basketball stat
		{"", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, m.NormalizeStatKey(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeTeamName(t *testing.T) {
	m := NewModule()

	assert.Equal(t, "Los Angeles Clippers", m.NormalizeTeamName("LA Clippers"))
	assert.Equal(t, "Philadelphia 76ers", m.NormalizeTeamName("Philadelphia Sixers"))
	assert.Equal(t, "Denver Nuggets", m.NormalizeTeamName("Denver Nuggets"), "canonical names pass through")
}

func TestProviderChainOrder(t *testing.T) {
	m := NewModule()

	chain := m.GetProviderChain()
	assert.Equal(t, []string{"espn", "balldontlie", "theoddsapi"}, chain,
		"stat-capable providers come before the score-only fallback")
}

func TestSnapshotTTL(t *testing.T) {
	m := NewModule()
	assert.Less(t, m.GetSnapshotTTL(true), m.GetSnapshotTTL(false),
		"live games must refresh faster than idle ones")
	assert.Equal(t, models.SportNBA, m.GetSportKey())
}
