// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify fans result-change signals out to WebSocket subscribers.

Subscribers join a per-poll group and receive a data-free event when
results change:

	hub := notify.NewHub()
	hub.Join(w, r, pollID)   // in the HTTP handler
	hub.Broadcast(pollID)    // after a vote lands

The signal is always {"event": "poll_updated"}; clients re-fetch the
poll rather than trusting pushed data. Slow or dead subscribers are
dropped so a broadcast never blocks the vote path.
*/
package notify
