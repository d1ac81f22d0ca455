// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides bearer tokens and the voter dedup hash.

# Bearer Tokens

Tokens are signed HS256 JWTs carrying the account ID as the subject,
plus an optional legacy user ID for migrated accounts:

	token, err := auth.IssueToken(auth.Identity{AccountID: "acct-1"}, secret, 24*time.Hour)
	identity, err := auth.ParseToken(token, secret)

ParseToken returns ErrInvalidToken for anything it cannot verify:
wrong signature, wrong algorithm, expired, or missing subject.

# Voter Hash

The voter hash is the internal vote dedup key:

	hash := auth.HashVoter(voterID, salt)

It is an HMAC-SHA256 hex digest, so one voter always maps to the same
key without the stored votes revealing who voted. Anonymous polls rely
on this: the readable account column stays empty, the hash still keeps
each voter to one vote.
*/
package auth
