// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scheduler runs the poll lifecycle sweeps on a fixed cadence.

	sched := scheduler.New(svc, cfg.ArchiveAfterDays)
	go sched.Run(ctx)

Run sweeps immediately, then once per minute until the context is
canceled. Each tick completes expired polls and archives old completed
ones. Sweep errors are logged and swallowed; a failed tick never stops
the loop.
*/
package scheduler
