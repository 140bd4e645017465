// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/zr6b/voteapp/db"
	"github.com/zr6b/voteapp/models"
)

// BroadcastEnabled reads the broadcast switch.
func (l *Ledger) BroadcastEnabled(ctx context.Context) (bool, error) {
	m, err := l.Meta(ctx)
	if err != nil {
		return false, err
	}
	return m.BroadcastEnabled, nil
}

// SetBroadcastEnabled flips the broadcast switch.
func (l *Ledger) SetBroadcastEnabled(ctx context.Context, enabled bool) error {
	res, err := l.db.ExecContext(ctx, `
		UPDATE rollover_meta SET broadcast_enabled = $1 WHERE id = $2
	`, enabled, db.MetaID)
	if err != nil {
		return fmt.Errorf("update broadcast switch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update broadcast switch: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("update broadcast switch: meta row missing")
	}

	slog.Info("broadcast switch changed", "enabled", enabled)
	return nil
}

// Broadcasts returns the newest messages inside the retention window, or an
// empty list while broadcasting is disabled.
func (l *Ledger) Broadcasts(ctx context.Context) ([]models.BroadcastEntry, error) {
	entries := []models.BroadcastEntry{}

	enabled, err := l.BroadcastEnabled(ctx)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return entries, nil
	}

	cutoff := l.now().Add(-l.retention).UTC()
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, message, created_at
		FROM broadcast_log
		WHERE created_at >= $1
		ORDER BY id DESC
		LIMIT $2
	`, cutoff, l.broadcastLimit)
	if err != nil {
		return nil, fmt.Errorf("query broadcasts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.BroadcastEntry
		if err := rows.Scan(&e.ID, &e.Message, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan broadcast: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate broadcasts: %w", err)
	}
	return entries, nil
}

// PostBroadcast appends a message for origin, subject to the broadcast
// switch and the per-origin cooldown.
func (l *Ledger) PostBroadcast(ctx context.Context, message, origin string) (models.BroadcastEntry, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.BroadcastEntry{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > l.messageMaxLen {
		return models.BroadcastEntry{}, ErrMessageTooLong
	}

	enabled, err := l.BroadcastEnabled(ctx)
	if err != nil {
		return models.BroadcastEntry{}, err
	}
	if !enabled {
		return models.BroadcastEntry{}, ErrBroadcastDisabled
	}

	now := l.now()
	res, ok := l.messages.Reserve(origin, now)
	if !ok {
		return models.BroadcastEntry{}, ErrCooldown
	}

	// Piggy-back eviction for both limiters.
	l.messages.Sweep(now)
	l.votes.Sweep(now)

	entry := models.BroadcastEntry{Message: message, Timestamp: now.UTC()}
	err = l.db.QueryRowContext(ctx, `
		INSERT INTO broadcast_log (message, created_at)
		VALUES ($1, $2)
		RETURNING id
	`, entry.Message, entry.Timestamp).Scan(&entry.ID)
	if err != nil {
		res.Cancel()
		return models.BroadcastEntry{}, fmt.Errorf("append broadcast log: %w", err)
	}
	res.Commit()

	slog.Info("broadcast accepted", "broadcast_id", entry.ID)
	return entry, nil
}
