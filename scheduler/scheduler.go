// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is the slice of the poll engine the scheduler drives.
type Sweeper interface {
	CompleteExpiredPolls() (int, error)
	ArchiveOldPolls(retentionDays int) (int, error)
}

// Scheduler runs the lifecycle sweeps on a fixed cadence. Sweep errors
// are logged and swallowed; a failed tick never stops the loop. Each
// tick completes before the next delay starts, so ticks never overlap.
type Scheduler struct {
	sweeper       Sweeper
	interval      time.Duration
	retentionDays int
}

func New(sweeper Sweeper, retentionDays int) *Scheduler {
	return &Scheduler{
		sweeper:       sweeper,
		interval:      time.Minute,
		retentionDays: retentionDays,
	}
}

// NewWithInterval is New with a custom cadence, for tests.
func NewWithInterval(sweeper Sweeper, retentionDays int, interval time.Duration) *Scheduler {
	s := New(sweeper, retentionDays)
	s.interval = interval
	return s
}

// Run sweeps immediately, then once per interval until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("lifecycle scheduler started", "interval", s.interval, "retention_days", s.retentionDays)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("lifecycle scheduler stopped")
			return
		case <-timer.C:
			s.tick()
			timer.Reset(s.interval)
		}
	}
}

func (s *Scheduler) tick() {
	completed, err := s.sweeper.CompleteExpiredPolls()
	if err != nil {
		slog.Error("lifecycle sweep failed to complete expired polls", "error", err)
	}

	archived, err := s.sweeper.ArchiveOldPolls(s.retentionDays)
	if err != nil {
		slog.Error("lifecycle sweep failed to archive old polls", "error", err)
	}

	if completed > 0 || archived > 0 {
		slog.Info("lifecycle tick done", "completed", completed, "archived", archived)
	}
}
