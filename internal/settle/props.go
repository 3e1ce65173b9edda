package settle

import (
	"context"
	"fmt"
	"strings"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/models"
)

// gradeProp settles a player prop against the game's box score. Any gap
// in the data — box score unavailable, player absent, stat column
// missing — yields Undetermined rather than a default zero, because a
// fabricated zero reads as a false LOST.
func (e *Evaluator) gradeProp(ctx context.Context, sport models.SportCode, sel models.Selection, line float64, snap *models.GameSnapshot) (Verdict, string) {
	box, err := e.games.FetchBoxScore(ctx, sport, snap)
	if err != nil {
		return VerdictUndetermined, fmt.Sprintf("box score unavailable: %v", err)
	}

	player, ok := findPlayer(box, sel.Player)
	if !ok {
		return VerdictUndetermined, fmt.Sprintf("player %q not found in box score", sel.Player)
	}

	value, ok := e.statValue(sport, player, sel.Stat)
	if !ok {
		return VerdictUndetermined, fmt.Sprintf("stat %q missing for %s", sel.Stat, player.PlayerName)
	}

	detail := fmt.Sprintf("%s %s %g vs line %g", player.PlayerName, sel.Stat, value, line)
	switch sel.Direction {
	case models.Over:
		if value >= line {
			return VerdictWon, detail
		}
		return VerdictLost, detail
	case models.Under:
		if value <= line {
			return VerdictWon, detail
		}
		return VerdictLost, detail
	}
	return VerdictUndetermined, fmt.Sprintf("prop has no over/under direction: %q", sel.Direction)
}

// findPlayer resolves the named player by bidirectional substring match
// on the folded full name. Exact folded equality wins over a partial hit
// so "Jalen Williams" doesn't grab "Jaylin Williams" when both dressed.
func findPlayer(box *models.BoxScore, name string) (models.PlayerLine, bool) {
	var partial models.PlayerLine
	found := false
	target := normalize.Fold(name)
	for _, p := range box.AllPlayers() {
		folded := normalize.Fold(p.PlayerName)
		if folded == target {
			return p, true
		}
		if !found && normalize.MatchName(p.PlayerName, name) {
			partial = p
			found = true
		}
	}
	return partial, found
}

// statValue sums the box-score columns backing a canonical stat slug.
// Combined slugs like "pts+reb+ast" require every component to be
// present; a missing column means the provider didn't report it.
func (e *Evaluator) statValue(sport models.SportCode, player models.PlayerLine, stat string) (float64, bool) {
	keys := strings.Split(stat, "+")
	if e.modules != nil {
		if module, ok := e.modules.GetSportModule(sport); ok {
			if mapped := module.NormalizeStatKey(stat); len(mapped) > 0 {
				keys = mapped
			}
		}
	}

	total := 0.0
	for _, key := range keys {
		v, ok := player.Stats[key]
		if !ok {
			return 0, false
		}
		total += v
	}
	return total, true
}
