package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/shopspring/decimal"
)

// PostgresStore implements contracts.WagerStore against the shared
// wagers table. Schema ownership and migrations live with the platform;
// this engine only reads active rows and writes the bounded field sets
// the contracts define.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const wagerColumns = `
	id, sport, kind, away_team, home_team, start_time,
	selection_team, selection_player, selection_stat, selection_direction, selection_line,
	opening_odds, stake, potential_payout,
	status, result, profit, notes,
	closing_odds, clv_percent, expected_value,
	settled_at, last_fetch_error, placed_at`

// GetActiveWagers returns the user's pending and active wagers, oldest
// game first so imminent settlements are evaluated before stale ones.
func (s *PostgresStore) GetActiveWagers(ctx context.Context, userID string) ([]models.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `
		FROM wagers
		WHERE user_id = $1 AND status IN ('pending', 'active')
		ORDER BY start_time ASC NULLS LAST, placed_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query active wagers: %w", err)
	}
	defer rows.Close()

	var wagers []models.Wager
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wager: %w", err)
		}
		wagers = append(wagers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return wagers, nil
}

// InsertWagers persists a batch of freshly parsed wagers in one
// transaction so a half-imported slip never reaches the evaluator.
func (s *PostgresStore) InsertWagers(ctx context.Context, userID string, wagers []models.Wager) error {
	if len(wagers) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO wagers (
			id, user_id, sport, kind, away_team, home_team, start_time,
			selection_team, selection_player, selection_stat, selection_direction, selection_line,
			opening_odds, stake, potential_payout, status, notes, placed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	for _, w := range wagers {
		var start interface{}
		if !w.StartTime.IsZero() {
			start = w.StartTime
		}
		_, err := tx.ExecContext(ctx, query,
			w.ID, userID, string(w.Sport), string(w.Kind), w.AwayTeam, w.HomeTeam, start,
			w.Selection.Team, w.Selection.Player, w.Selection.Stat, string(w.Selection.Direction), w.Selection.Line,
			w.OpeningOdds, w.Stake.String(), w.PotentialPayout.String(), string(w.Status), w.Notes, w.PlacedAt,
		)
		if err != nil {
			return fmt.Errorf("insert wager %s: %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// MarkActive transitions a pending wager whose game has started.
func (s *PostgresStore) MarkActive(ctx context.Context, wagerID string) error {
	query := `UPDATE wagers SET status = 'active' WHERE id = $1 AND status = 'pending'`
	if _, err := s.db.ExecContext(ctx, query, wagerID); err != nil {
		return fmt.Errorf("mark active: %w", err)
	}
	return nil
}

// Settle writes the verdict atomically with the status flip. The status
// guard in the WHERE clause is what makes settlement at-most-once: a
// concurrent pass that lost the race affects zero rows and backs off.
func (s *PostgresStore) Settle(ctx context.Context, wagerID string, upd contracts.SettlementUpdate) error {
	query := `
		UPDATE wagers
		SET status = 'settled',
		    result = $2,
		    profit = $3,
		    notes = CASE WHEN $4 = '' THEN notes ELSE $4 END,
		    settled_at = NOW(),
		    last_fetch_error = ''
		WHERE id = $1 AND status != 'settled'
	`

	result, err := s.db.ExecContext(ctx, query, wagerID, string(upd.Result), upd.Profit, upd.Notes)
	if err != nil {
		return fmt.Errorf("settle wager: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return contracts.ErrAlreadySettled
	}
	return nil
}

// UpdateCLV writes the closing-line fields. Settled wagers keep the CLV
// they had at settlement time.
func (s *PostgresStore) UpdateCLV(ctx context.Context, wagerID string, upd contracts.CLVUpdate) error {
	query := `
		UPDATE wagers
		SET closing_odds = $2, clv_percent = $3, expected_value = $4
		WHERE id = $1 AND status != 'settled'
	`
	if _, err := s.db.ExecContext(ctx, query, wagerID, upd.ClosingOdds, upd.CLVPercent, upd.ExpectedValue); err != nil {
		return fmt.Errorf("update clv: %w", err)
	}
	return nil
}

// UpdateNotes rewrites leg annotations on a still-open multi-leg wager.
func (s *PostgresStore) UpdateNotes(ctx context.Context, wagerID, notes string) error {
	query := `UPDATE wagers SET notes = $2 WHERE id = $1 AND status != 'settled'`
	if _, err := s.db.ExecContext(ctx, query, wagerID, notes); err != nil {
		return fmt.Errorf("update notes: %w", err)
	}
	return nil
}

// RecordFetchError stores the last diagnostic on a wager the pass could
// not evaluate.
func (s *PostgresStore) RecordFetchError(ctx context.Context, wagerID, message string) error {
	query := `UPDATE wagers SET last_fetch_error = $2 WHERE id = $1 AND status != 'settled'`
	if _, err := s.db.ExecContext(ctx, query, wagerID, message); err != nil {
		return fmt.Errorf("record fetch error: %w", err)
	}
	return nil
}

// scanWager maps one row onto the model, tolerating the NULLs that
// pre-settlement rows carry.
func scanWager(rows *sql.Rows) (models.Wager, error) {
	var (
		w              models.Wager
		sport, kind    string
		startTime      sql.NullTime
		selDirection   sql.NullString
		selTeam        sql.NullString
		selPlayer      sql.NullString
		selStat        sql.NullString
		selLine        sql.NullFloat64
		stake          string
		payout         string
		status, result sql.NullString
		profit         sql.NullString
		notes          sql.NullString
		closingOdds    sql.NullInt64
		clvPercent     sql.NullFloat64
		expectedValue  sql.NullString
		settledAt      sql.NullTime
		lastFetchError sql.NullString
	)

	err := rows.Scan(
		&w.ID, &sport, &kind, &w.AwayTeam, &w.HomeTeam, &startTime,
		&selTeam, &selPlayer, &selStat, &selDirection, &selLine,
		&w.OpeningOdds, &stake, &payout,
		&status, &result, &profit, &notes,
		&closingOdds, &clvPercent, &expectedValue,
		&settledAt, &lastFetchError, &w.PlacedAt,
	)
	if err != nil {
		return w, err
	}

	w.Sport = models.SportCode(sport)
	w.Kind = models.BetKind(kind)
	if startTime.Valid {
		w.StartTime = startTime.Time
	}
	w.Selection = models.Selection{
		Team:      selTeam.String,
		Player:    selPlayer.String,
		Stat:      selStat.String,
		Direction: models.OverUnder(selDirection.String),
		Line:      selLine.Float64,
	}
	w.Stake = mustDecimal(stake)
	w.PotentialPayout = mustDecimal(payout)
	w.Status = models.WagerStatus(status.String)
	w.Result = models.WagerResult(result.String)
	if profit.Valid {
		w.Profit = mustDecimal(profit.String)
	}
	w.Notes = notes.String
	w.ClosingOdds = int(closingOdds.Int64)
	w.CLVPercent = clvPercent.Float64
	if expectedValue.Valid {
		w.ExpectedValue = mustDecimal(expectedValue.String)
	}
	if settledAt.Valid {
		t := settledAt.Time
		w.SettledAt = &t
	}
	w.LastFetchError = lastFetchError.String
	return w, nil
}

func mustDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ensure the interface stays satisfied
var _ contracts.WagerStore = (*PostgresStore)(nil)

// Ping verifies connectivity with a bounded timeout, used at startup.
func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}
