package settle

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/Themis/internal/slip"
	"github.com/XavierBriggs/Themis/pkg/models"
)

// evaluateMultiLeg re-derives the legs from the wager's notes, grades
// every unresolved leg independently, and settles the aggregate only
// once all legs are terminal. Leg statuses that moved are serialized
// back into the notes so the next pass resumes where this one stopped.
//
// Push policy: a pushed leg is neutral. It never loses the parlay and
// never blocks settlement; a parlay whose legs all push is itself a
// Push.
func (e *Evaluator) evaluateMultiLeg(ctx context.Context, w *models.Wager) Outcome {
	legs := slip.ParseLegs(w.Notes)
	if len(legs) == 0 {
		return undetermined("no parsable legs in notes")
	}

	changed := false
	var blocker string
	for i := range legs {
		if legs[i].Status.Resolved() {
			continue
		}
		status, detail := e.evaluateLeg(ctx, &legs[i])
		if status != legs[i].Status {
			legs[i].Status = status
			changed = true
		}
		if !status.Resolved() && blocker == "" {
			blocker = fmt.Sprintf("leg %d: %s", i+1, detail)
		}
	}

	out := Outcome{Verdict: VerdictUndetermined}
	if changed {
		out.Notes = slip.SerializeLegs(legs)
		out.NotesChanged = true
	}

	if blocker != "" {
		out.Detail = blocker
		return out
	}

	verdict := aggregateVerdict(legs)
	out.Verdict = verdict
	out.Profit = profitFor(verdict, w)
	out.Detail = fmt.Sprintf("all %d legs resolved", len(legs))
	return out
}

// evaluateLeg grades one leg against its own game. Non-terminal results
// report why the leg is still open.
func (e *Evaluator) evaluateLeg(ctx context.Context, leg *models.WagerLeg) (models.LegStatus, string) {
	if leg.StartTime.IsZero() {
		return leg.Status, "start time unknown"
	}
	if time.Now().Before(leg.StartTime) {
		return models.LegPending, "game has not started"
	}

	snap, err := e.games.FindGame(ctx, leg.Sport, leg.AwayTeam, leg.HomeTeam, leg.StartTime)
	if err != nil {
		return leg.Status, fmt.Sprintf("game lookup failed: %v", err)
	}
	if !snap.IsComplete {
		if snap.IsLive {
			return models.LegLive, "game in progress"
		}
		return leg.Status, fmt.Sprintf("game not complete (%s)", snap.StatusText)
	}

	verdict, detail := e.grade(ctx, leg.Sport, leg.Kind, leg.Selection, leg.EffectiveLine(), snap)
	switch verdict {
	case VerdictWon:
		return models.LegWon, detail
	case VerdictLost:
		return models.LegLost, detail
	case VerdictPush:
		return models.LegPush, detail
	}
	return leg.Status, detail
}

// aggregateVerdict assumes every leg is resolved: any loss sinks the
// wager, any win with no losses wins it, all pushes refund it.
func aggregateVerdict(legs []models.WagerLeg) Verdict {
	sawWin := false
	for _, leg := range legs {
		switch leg.Status {
		case models.LegLost:
			return VerdictLost
		case models.LegWon:
			sawWin = true
		}
	}
	if sawWin {
		return VerdictWon
	}
	return VerdictPush
}
