// Package auth holds the session revocation domain: a deny-list of revoked
// token-instance IDs (JWT jti claims). A token is the unit of issuance; the
// jti is the unit of revocation, so revoking one session never touches the
// signing secret or other outstanding sessions.
package auth

import (
	"fmt"
	"time"
)

// RevokedToken records a revoked token-instance ID. The record mirrors the
// original token's expiry: once that moment passes the record is inert and
// may be reclaimed at any time.
type RevokedToken struct {
	id        uint
	jti       string
	userID    uint
	expiresAt time.Time
	createdAt time.Time
}

// NewRevokedToken creates a revocation record for the given token instance
func NewRevokedToken(jti string, userID uint, expiresAt time.Time) (*RevokedToken, error) {
	if jti == "" {
		return nil, fmt.Errorf("jti is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if expiresAt.IsZero() {
		return nil, fmt.Errorf("expiry is required")
	}

	return &RevokedToken{
		jti:       jti,
		userID:    userID,
		expiresAt: expiresAt,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructRevokedToken reconstructs a revocation record from persistence
func ReconstructRevokedToken(id uint, jti string, userID uint, expiresAt, createdAt time.Time) *RevokedToken {
	return &RevokedToken{
		id:        id,
		jti:       jti,
		userID:    userID,
		expiresAt: expiresAt,
		createdAt: createdAt,
	}
}

func (r *RevokedToken) ID() uint             { return r.id }
func (r *RevokedToken) JTI() string          { return r.jti }
func (r *RevokedToken) UserID() uint         { return r.userID }
func (r *RevokedToken) ExpiresAt() time.Time { return r.expiresAt }
func (r *RevokedToken) CreatedAt() time.Time { return r.createdAt }

// Expired reports whether the record's expiry has passed at the given now.
func (r *RevokedToken) Expired(now time.Time) bool {
	return !r.expiresAt.After(now)
}
