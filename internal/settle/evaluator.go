package settle

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/shopspring/decimal"
)

// Verdict is the outcome of one evaluation attempt. Undetermined means
// the wager stays active and is retried on the next pass.
type Verdict string

const (
	VerdictUndetermined Verdict = "undetermined"
	VerdictWon          Verdict = "won"
	VerdictLost         Verdict = "lost"
	VerdictPush         Verdict = "push"
)

// Resolved reports whether the verdict terminates the wager.
func (v Verdict) Resolved() bool {
	return v == VerdictWon || v == VerdictLost || v == VerdictPush
}

// Result maps a terminal verdict onto the stored wager result.
func (v Verdict) Result() models.WagerResult {
	switch v {
	case VerdictWon:
		return models.ResultWon
	case VerdictLost:
		return models.ResultLost
	case VerdictPush:
		return models.ResultPush
	}
	return ""
}

// GameSource supplies located games and box scores. The live data
// aggregator satisfies this.
type GameSource interface {
	FindGame(ctx context.Context, sport models.SportCode, teamA, teamB string, approxDate time.Time) (*models.GameSnapshot, error)
	FetchBoxScore(ctx context.Context, sport models.SportCode, snap *models.GameSnapshot) (*models.BoxScore, error)
}

// ModuleSource resolves sport modules for stat-key normalization.
type ModuleSource interface {
	GetSportModule(sport models.SportCode) (contracts.SportModule, bool)
}

// Outcome is what one evaluation pass produced for a wager. Profit is
// meaningful only when the verdict is resolved. Notes carries re-serialized
// leg annotations for multi-leg wagers when any leg status moved.
type Outcome struct {
	Verdict      Verdict
	Profit       decimal.Decimal
	Notes        string
	NotesChanged bool

	// Detail is a human-readable diagnostic: the final score on a
	// resolved verdict, or the reason the wager stayed undetermined.
	Detail string
}

// Evaluator grades active wagers against aggregator results. It never
// persists anything itself; callers apply the returned Outcome through
// the storage collaborator.
type Evaluator struct {
	games   GameSource
	modules ModuleSource
}

// New creates a settlement evaluator.
func New(games GameSource, modules ModuleSource) *Evaluator {
	return &Evaluator{games: games, modules: modules}
}

// Evaluate runs one grading attempt. Already-settled wagers short-circuit
// to Undetermined without touching any provider.
func (e *Evaluator) Evaluate(ctx context.Context, w *models.Wager) Outcome {
	if w.IsSettled() {
		return Outcome{Verdict: VerdictUndetermined, Detail: "already settled"}
	}
	if w.IsMultiLeg() {
		return e.evaluateMultiLeg(ctx, w)
	}
	return e.evaluateStraight(ctx, w)
}

func (e *Evaluator) evaluateStraight(ctx context.Context, w *models.Wager) Outcome {
	if w.StartTime.IsZero() {
		return undetermined("game start time unknown")
	}
	if time.Now().Before(w.StartTime) {
		return undetermined("game has not started")
	}

	snap, err := e.games.FindGame(ctx, w.Sport, w.AwayTeam, w.HomeTeam, w.StartTime)
	if err != nil {
		return undetermined(fmt.Sprintf("game lookup failed: %v", err))
	}
	if !snap.IsComplete {
		if e.wellPastGame(w.Sport, w.StartTime) {
			return undetermined(fmt.Sprintf("game not complete (%s) well past expected end, check providers", snap.StatusText))
		}
		return undetermined(fmt.Sprintf("game not complete (%s)", snap.StatusText))
	}

	verdict, detail := e.grade(ctx, w.Sport, w.Kind, w.Selection, w.Selection.Line, snap)
	if !verdict.Resolved() {
		return undetermined(detail)
	}
	return Outcome{
		Verdict: verdict,
		Profit:  profitFor(verdict, w),
		Detail:  fmt.Sprintf("%s %d – %s %d: %s", snap.AwayTeam, snap.AwayScore, snap.HomeTeam, snap.HomeScore, detail),
	}
}

// grade applies the per-kind verdict rules against a completed game.
// line is the effective line (teaser-adjusted for teaser legs).
func (e *Evaluator) grade(ctx context.Context, sport models.SportCode, kind models.BetKind, sel models.Selection, line float64, snap *models.GameSnapshot) (Verdict, string) {
	switch kind {
	case models.KindMoneyline:
		return gradeMoneyline(sel, snap)
	case models.KindSpread:
		return gradeSpread(sel, line, snap)
	case models.KindTotal:
		return gradeTotal(sel, line, snap)
	case models.KindPlayerProp:
		return e.gradeProp(ctx, sport, sel, line, snap)
	}
	return VerdictUndetermined, fmt.Sprintf("unsupported bet kind %q", kind)
}

func gradeMoneyline(sel models.Selection, snap *models.GameSnapshot) (Verdict, string) {
	selected, opposing, ok := pickSide(sel.Team, snap)
	if !ok {
		return VerdictUndetermined, fmt.Sprintf("selection %q matches neither side", sel.Team)
	}
	switch {
	case selected > opposing:
		return VerdictWon, "moneyline won"
	case selected < opposing:
		return VerdictLost, "moneyline lost"
	}
	return VerdictPush, "game ended tied"
}

func gradeSpread(sel models.Selection, line float64, snap *models.GameSnapshot) (Verdict, string) {
	selected, opposing, ok := pickSide(sel.Team, snap)
	if !ok {
		return VerdictUndetermined, fmt.Sprintf("selection %q matches neither side", sel.Team)
	}
	adjusted := float64(selected) + line
	switch {
	case adjusted > float64(opposing):
		return VerdictWon, fmt.Sprintf("covered %+g", line)
	case adjusted < float64(opposing):
		return VerdictLost, fmt.Sprintf("did not cover %+g", line)
	}
	return VerdictPush, "landed on the number"
}

func gradeTotal(sel models.Selection, line float64, snap *models.GameSnapshot) (Verdict, string) {
	combined := float64(snap.AwayScore + snap.HomeScore)
	if combined == line {
		return VerdictPush, fmt.Sprintf("combined %g hit the line", combined)
	}
	overWon := combined > line
	won := (sel.Direction == models.Over) == overWon
	detail := fmt.Sprintf("combined %g vs line %g", combined, line)
	if won {
		return VerdictWon, detail
	}
	return VerdictLost, detail
}

// pickSide matches the selected team against the snapshot and returns
// (selectedScore, opposingScore).
func pickSide(team string, snap *models.GameSnapshot) (int, int, bool) {
	switch {
	case normalize.MatchName(team, snap.HomeTeam):
		return snap.HomeScore, snap.AwayScore, true
	case normalize.MatchName(team, snap.AwayTeam):
		return snap.AwayScore, snap.HomeScore, true
	}
	return 0, 0, false
}

func profitFor(v Verdict, w *models.Wager) decimal.Decimal {
	switch v {
	case VerdictWon:
		return w.PotentialPayout
	case VerdictLost:
		return w.Stake.Neg()
	}
	return decimal.Zero
}

func undetermined(detail string) Outcome {
	return Outcome{Verdict: VerdictUndetermined, Detail: detail}
}

// wellPastGame reports whether the game started long enough ago that it
// should have finished twice over. A snapshot still not final at that
// point usually means a stale or wrong provider record.
func (e *Evaluator) wellPastGame(sport models.SportCode, start time.Time) bool {
	if e.modules == nil {
		return false
	}
	module, ok := e.modules.GetSportModule(sport)
	if !ok {
		return false
	}
	return time.Since(start) > 2*module.GetTypicalGameDuration()
}
