package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/models"
)

// GameSource is the read path into the live data aggregator.
type GameSource interface {
	FindGame(ctx context.Context, sport models.SportCode, teamA, teamB string, approxDate time.Time) (*models.GameSnapshot, error)
	FetchBoxScore(ctx context.Context, sport models.SportCode, snap *models.GameSnapshot) (*models.BoxScore, error)
}

// Projection is a read-only view of how a wager is tracking against its
// line mid-game. It never mutates wager state.
type Projection struct {
	WagerID    string  `json:"wager_id"`
	GameStatus string  `json:"game_status"`
	IsLive     bool    `json:"is_live"`
	AwayTeam   string  `json:"away_team"`
	HomeTeam   string  `json:"home_team"`
	AwayScore  int     `json:"away_score"`
	HomeScore  int     `json:"home_score"`

	// Current and Target are populated for totals and player props.
	Current float64 `json:"current,omitempty"`
	Target  float64 `json:"target,omitempty"`
	Percent float64 `json:"percent,omitempty"`

	Summary string `json:"summary"`
}

// Projector builds live progress views from aggregator data.
type Projector struct {
	games GameSource
}

// New creates a projector over the given game source.
func New(games GameSource) *Projector {
	return &Projector{games: games}
}

// Project computes the live view for one wager. Multi-leg wagers project
// their notes verbatim; per-leg live views would need one lookup per leg
// and are not worth the provider budget on a read path.
func (p *Projector) Project(ctx context.Context, w *models.Wager) (*Projection, error) {
	if w.IsMultiLeg() {
		return &Projection{
			WagerID: w.ID,
			Summary: fmt.Sprintf("%d-leg %s\n%s", strings.Count(w.Notes, "\n")+1, w.Kind, w.Notes),
		}, nil
	}
	if w.StartTime.IsZero() {
		return &Projection{WagerID: w.ID, GameStatus: "start time unknown", Summary: "not yet trackable"}, nil
	}

	snap, err := p.games.FindGame(ctx, w.Sport, w.AwayTeam, w.HomeTeam, w.StartTime)
	if err != nil {
		return nil, err
	}

	proj := &Projection{
		WagerID:    w.ID,
		GameStatus: snap.StatusText,
		IsLive:     snap.IsLive,
		AwayTeam:   snap.AwayTeam,
		HomeTeam:   snap.HomeTeam,
		AwayScore:  snap.AwayScore,
		HomeScore:  snap.HomeScore,
	}

	switch w.Kind {
	case models.KindTotal:
		proj.Current = float64(snap.AwayScore + snap.HomeScore)
		proj.Target = w.Selection.Line
		proj.Percent = percentOf(proj.Current, proj.Target)
		proj.Summary = fmt.Sprintf("combined %g of %s %g (%.0f%%)", proj.Current, w.Selection.Direction, proj.Target, proj.Percent)
	case models.KindPlayerProp:
		p.projectProp(ctx, w, snap, proj)
	case models.KindSpread:
		proj.Summary = spreadSummary(w.Selection, snap)
	default:
		proj.Summary = fmt.Sprintf("%s %d – %s %d (%s)", snap.AwayTeam, snap.AwayScore, snap.HomeTeam, snap.HomeScore, snap.StatusText)
	}
	return proj, nil
}

func (p *Projector) projectProp(ctx context.Context, w *models.Wager, snap *models.GameSnapshot, proj *Projection) {
	proj.Target = w.Selection.Line
	box, err := p.games.FetchBoxScore(ctx, w.Sport, snap)
	if err != nil {
		proj.Summary = fmt.Sprintf("%s %s %g: stats not yet available", w.Selection.Player, w.Selection.Direction, w.Selection.Line)
		return
	}

	for _, player := range box.AllPlayers() {
		if !normalize.MatchName(player.PlayerName, w.Selection.Player) {
			continue
		}
		total := 0.0
		complete := true
		for _, key := range strings.Split(w.Selection.Stat, "+") {
			v, ok := player.Stats[key]
			if !ok {
				complete = false
				break
			}
			total += v
		}
		if !complete {
			break
		}
		proj.Current = total
		proj.Percent = percentOf(total, proj.Target)
		proj.Summary = fmt.Sprintf("%s: %g of %s %g %s (%.0f%%)",
			player.PlayerName, total, w.Selection.Direction, proj.Target, w.Selection.Stat, proj.Percent)
		return
	}
	proj.Summary = fmt.Sprintf("%s not in box score yet", w.Selection.Player)
}

func spreadSummary(sel models.Selection, snap *models.GameSnapshot) string {
	margin := 0
	switch {
	case normalize.MatchName(sel.Team, snap.HomeTeam):
		margin = snap.HomeScore - snap.AwayScore
	case normalize.MatchName(sel.Team, snap.AwayTeam):
		margin = snap.AwayScore - snap.HomeScore
	default:
		return fmt.Sprintf("%s %d – %s %d (%s)", snap.AwayTeam, snap.AwayScore, snap.HomeTeam, snap.HomeScore, snap.StatusText)
	}
	covering := float64(margin)+sel.Line > 0
	state := "not covering"
	if covering {
		state = "covering"
	}
	return fmt.Sprintf("%s %+g: margin %+d, %s", sel.Team, sel.Line, margin, state)
}

func percentOf(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
