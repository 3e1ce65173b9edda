package football_nfl

import (
	"strings"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/models"
)

// Module implements the SportModule interface for NFL Football
type Module struct {
	config *Config
}

// NewModule creates a new NFL sport module
func NewModule() *Module {
	return &Module{
		config: DefaultConfig(),
	}
}

// NewModuleWithConfig creates a module with overridden settings
func NewModuleWithConfig(config *Config) *Module {
	return &Module{config: config}
}

// GetSportKey returns the sport identifier
func (m *Module) GetSportKey() models.SportCode {
	return models.SportCode(m.config.SportKey)
}

// GetDisplayName returns the human-readable name
func (m *Module) GetDisplayName() string {
	return m.config.DisplayName
}

// GetProviderChain returns adapters in fallback order
func (m *Module) GetProviderChain() []string {
	return m.config.ProviderChain
}

// GetSnapshotTTL returns the cache TTL for game snapshots
func (m *Module) GetSnapshotTTL(isLive bool) time.Duration {
	if isLive {
		return m.config.LiveSnapshotTTL
	}
	return m.config.IdleSnapshotTTL
}

// GetTypicalGameDuration returns how long an NFL game usually runs
func (m *Module) GetTypicalGameDuration() time.Duration {
	return m.config.TypicalGameDuration
}

var statKeys = map[string][]string{
	"rec_yds":         {"rec_yds"},
	"receiving yards": {"rec_yds"},
	"rush_yds":        {"rush_yds"},
	"rushing yards":   {"rush_yds"},
	"pass_yds":        {"pass_yds"},
	"passing yards":   {"pass_yds"},
	"rec":             {"rec"},
	"receptions":      {"rec"},
	"td":              {"td"},
	"touchdowns":      {"td"},
}

// NormalizeStatKey resolves slip stat vocabulary to box-score keys.
func (m *Module) NormalizeStatKey(statText string) []string {
	text := strings.ToLower(strings.TrimSpace(statText))
	if keys, ok := statKeys[text]; ok {
		return keys
	}
	if strings.Contains(text, "+") {
		var combined []string
		for _, part := range strings.Split(text, "+") {
			keys, ok := statKeys[strings.TrimSpace(part)]
			if !ok {
				return nil
			}
			combined = append(combined, keys...)
		}
		return combined
	}
	return nil
}

// NormalizeTeamName standardizes vendor team-name variations
func (m *Module) NormalizeTeamName(name string) string {
	for alias, canonical := range teamAliases {
		if normalize.Fold(alias) == normalize.Fold(name) {
			return canonical
		}
	}
	return name
}
