// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mankru71/OpinionHub/models"
)

// CompleteExpiredPolls moves every active poll whose end date has passed
// into completed status, stamping the completion time. Polls without an
// end date never auto-complete. Returns the number of polls changed.
//
// Each row is updated with a status guard, so a concurrent sweep over
// the same rows counts and audits every poll at most once.
func (s *Service) CompleteExpiredPolls() (int, error) {
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT id FROM poll
		WHERE status = 'active' AND end_date IS NOT NULL AND end_date <= $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to query expired polls: %w", err)
	}

	expired := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan poll ID: %w", err)
		}
		expired = append(expired, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("failed to read expired polls: %w", err)
	}
	rows.Close()

	count := 0
	for _, pollID := range expired {
		res, err := tx.Exec(`
			UPDATE poll SET status = $1, completed_at = $2 WHERE id = $3 AND status = $4
		`, models.StatusCompleted, now, pollID, models.StatusActive)
		if err != nil {
			return 0, fmt.Errorf("failed to complete poll: %w", err)
		}
		changed, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read rows affected: %w", err)
		}
		if changed == 0 {
			continue
		}
		if err := s.appendAudit(tx, models.EventPollCompleted, pollID, "", "Auto complete", now); err != nil {
			return 0, err
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if count > 0 {
		slog.Info("expired polls completed", "count", count)
	}
	return count, nil
}

// ArchiveOldPolls moves every poll completed longer than retentionDays
// ago into archived status. Returns the number of polls changed.
func (s *Service) ArchiveOldPolls(retentionDays int) (int, error) {
	now := time.Now().UTC()
	threshold := now.AddDate(0, 0, -retentionDays)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT id FROM poll
		WHERE status = 'completed' AND completed_at IS NOT NULL AND completed_at < $1
	`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to query completed polls: %w", err)
	}

	old := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan poll ID: %w", err)
		}
		old = append(old, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("failed to read completed polls: %w", err)
	}
	rows.Close()

	count := 0
	for _, pollID := range old {
		res, err := tx.Exec(`
			UPDATE poll SET status = $1 WHERE id = $2 AND status = $3
		`, models.StatusArchived, pollID, models.StatusCompleted)
		if err != nil {
			return 0, fmt.Errorf("failed to archive poll: %w", err)
		}
		changed, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read rows affected: %w", err)
		}
		if changed == 0 {
			continue
		}
		if err := s.appendAudit(tx, models.EventPollArchived, pollID, "", "Auto archive", now); err != nil {
			return 0, err
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if count > 0 {
		slog.Info("old polls archived", "count", count, "retention_days", retentionDays)
	}
	return count, nil
}
