package contracts

import (
	"context"
	"errors"

	"github.com/XavierBriggs/Themis/pkg/models"
)

// ErrAlreadySettled is returned when a settlement write targets a wager
// that is already settled. Callers treat it as a no-op, not a failure.
var ErrAlreadySettled = errors.New("wager already settled")

// SettlementUpdate is the bounded field set the evaluator writes when a
// wager settles. Persisted atomically so a concurrent pass observing
// status = settled short-circuits and profit is never double-counted.
type SettlementUpdate struct {
	Result models.WagerResult
	Profit string // decimal string
	Notes  string // re-serialized leg lines for multi-leg wagers
}

// CLVUpdate is the bounded field set the CLV model writes.
type CLVUpdate struct {
	ClosingOdds   int
	CLVPercent    float64
	ExpectedValue string // decimal string
}

// WagerStore is the storage collaborator. Its implementation (schema,
// migrations, ownership) lives outside this engine; the engine only reads
// active wagers and writes the field sets above.
type WagerStore interface {
	// GetActiveWagers returns pending and active wagers for a user.
	GetActiveWagers(ctx context.Context, userID string) ([]models.Wager, error)

	// InsertWagers persists freshly parsed wagers.
	InsertWagers(ctx context.Context, userID string, wagers []models.Wager) error

	// MarkActive transitions a pending wager whose game has started.
	MarkActive(ctx context.Context, wagerID string) error

	// Settle atomically writes status=settled with the verdict. Returns
	// ErrAlreadySettled when the wager is no longer active.
	Settle(ctx context.Context, wagerID string, upd SettlementUpdate) error

	// UpdateCLV writes closing odds and CLV/EV fields.
	UpdateCLV(ctx context.Context, wagerID string, upd CLVUpdate) error

	// UpdateNotes rewrites the annotated leg lines after per-leg status
	// changes on a still-unsettled multi-leg wager.
	UpdateNotes(ctx context.Context, wagerID, notes string) error

	// RecordFetchError stores the last diagnostic for a wager that could
	// not be evaluated this pass; cleared on the next success.
	RecordFetchError(ctx context.Context, wagerID, message string) error
}
