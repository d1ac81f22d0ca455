// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import "errors"

var (
	// ErrNotFound is returned when a poll does not exist, or when an
	// author-scoped operation names a poll the caller does not own.
	ErrNotFound = errors.New("poll not found")

	// ErrUnauthorized is returned when a caller other than the author
	// requests an export. Distinct from ErrNotFound so the handler can
	// answer 403 rather than 404.
	ErrUnauthorized = errors.New("export is available to the poll author only")
)

// ValidationError reports bad input shape: too few options, a past end
// date, wrong option count for the poll type, an unknown option ID.
// Never retried; surfaced to the caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// StateError reports an operation that is not allowed in the poll's
// current lifecycle state, or a forbidden vote change.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return e.Reason }
