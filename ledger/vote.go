// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zr6b/voteapp/calendar"
	"github.com/zr6b/voteapp/models"
)

// CastVote validates a ballot, then increments the region tally and appends
// the vote log entry in one transaction. The origin's daily slot is held
// while the transaction runs and recorded only after it commits.
func (l *Ledger) CastVote(ctx context.Context, req models.VoteRequest, origin string) (models.VoteLogEntry, error) {
	surname := strings.TrimSpace(req.Surname)

	if _, ok := l.regions[req.Region]; !ok {
		return models.VoteLogEntry{}, ErrUnknownRegion
	}
	if !l.validSurname(surname) {
		return models.VoteLogEntry{}, ErrInvalidSurname
	}
	if _, ok := l.genders[req.Gender]; !ok {
		return models.VoteLogEntry{}, ErrInvalidGender
	}

	now := l.now()
	res, ok := l.votes.Reserve(origin, now)
	if !ok {
		return models.VoteLogEntry{}, ErrAlreadyVoted
	}

	entry, err := l.commitVote(ctx, req.Region, surname, req.Gender, now)
	if err != nil {
		res.Cancel()
		return models.VoteLogEntry{}, err
	}
	res.Commit()
	l.votes.Sweep(now)

	slog.Info("vote accepted", "vote_id", entry.ID, "region", entry.Region)
	return entry, nil
}

func (l *Ledger) commitVote(ctx context.Context, region, surname, gender string, now time.Time) (models.VoteLogEntry, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return models.VoteLogEntry{}, fmt.Errorf("begin vote: %w", err)
	}
	defer tx.Rollback()

	today := calendar.Date(now, l.loc)
	reset, err := rollover(ctx, tx, today)
	if err != nil {
		return models.VoteLogEntry{}, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE region_tally
		SET total_votes = total_votes + 1, today_votes = today_votes + 1
		WHERE region = $1
	`, region)
	if err != nil {
		return models.VoteLogEntry{}, fmt.Errorf("increment tally: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.VoteLogEntry{}, fmt.Errorf("increment tally: %w", err)
	}
	if n != 1 {
		return models.VoteLogEntry{}, fmt.Errorf("increment tally: region %s has %d rows", region, n)
	}

	entry := models.VoteLogEntry{
		Surname:   surname,
		Gender:    gender,
		Region:    region,
		Timestamp: now.UTC(),
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO vote_log (surname, gender, region, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, entry.Surname, entry.Gender, entry.Region, entry.Timestamp).Scan(&entry.ID)
	if err != nil {
		return models.VoteLogEntry{}, fmt.Errorf("append vote log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.VoteLogEntry{}, fmt.Errorf("commit vote: %w", err)
	}

	if reset {
		slog.Info("daily rollover", "date", today)
	}
	return entry, nil
}

// validSurname accepts 1 to surnameMaxLen CJK ideographs or ASCII letters.
func (l *Ledger) validSurname(s string) bool {
	n := utf8.RuneCountInString(s)
	if n == 0 || n > l.surnameMaxLen {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '一' && r <= '龥':
		default:
			return false
		}
	}
	return true
}

// Feed returns the most recent votes, newest first.
func (l *Ledger) Feed(ctx context.Context) ([]models.VoteLogEntry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, surname, gender, region, created_at
		FROM vote_log
		ORDER BY id DESC
		LIMIT $1
	`, l.feedLimit)
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	defer rows.Close()

	feed := []models.VoteLogEntry{}
	for rows.Next() {
		var e models.VoteLogEntry
		if err := rows.Scan(&e.ID, &e.Surname, &e.Gender, &e.Region, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		feed = append(feed, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feed: %w", err)
	}
	return feed, nil
}
