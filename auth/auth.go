// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the caller identity carried by a bearer token. LegacyUserID
// is set only for accounts migrated from the pre-account identity scheme.
type Identity struct {
	AccountID    string
	LegacyUserID string
}

type tokenClaims struct {
	LegacyUserID string `json:"legacy_uid,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed HS256 bearer token for the identity.
func IssueToken(identity Identity, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		LegacyUserID: identity.LegacyUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseToken validates a bearer token and returns the identity it carries.
func ParseToken(token, secret string) (Identity, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{AccountID: claims.Subject, LegacyUserID: claims.LegacyUserID}, nil
}

// HashVoter derives the internal vote dedup key from a voter ID.
// The hash keeps anonymous polls to one vote per voter without storing
// the voter identity in a readable column.
func HashVoter(voterID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(voterID))
	return hex.EncodeToString(h.Sum(nil))
}
