// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/zr6b/voteapp/db"
)

// EnsureRolledOver zeroes every today counter if the stored reset date is
// not today. It reports whether this call performed the reset.
func (l *Ledger) EnsureRolledOver(ctx context.Context) (bool, error) {
	today := l.Today()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin rollover: %w", err)
	}
	defer tx.Rollback()

	reset, err := rollover(ctx, tx, today)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit rollover: %w", err)
	}

	if reset {
		slog.Info("daily rollover", "date", today)
	}
	return reset, nil
}

// rollover runs inside the caller's transaction so a reset and a vote
// increment are serialized by the store. The reset date only moves
// forward (YYYY-MM-DD compares in date order), so a second concurrent reset
// or a late caller still on yesterday's date is a no-op.
func rollover(ctx context.Context, tx *sql.Tx, today string) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE rollover_meta SET last_reset_date = $1
		WHERE id = $2 AND last_reset_date < $3
	`, today, db.MetaID, today)
	if err != nil {
		return false, fmt.Errorf("update reset date: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update reset date: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `UPDATE region_tally SET today_votes = 0`); err != nil {
		return false, fmt.Errorf("reset today counters: %w", err)
	}
	return true, nil
}
