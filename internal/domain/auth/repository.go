package auth

import "context"

// RevocationRepository is the durable deny-list of revoked token-instance IDs.
type RevocationRepository interface {
	// IsRevoked reports whether the token instance is on the deny-list.
	// An expired record counts as absent: the implementation returns false
	// and opportunistically deletes the record so storage is self-healing.
	IsRevoked(ctx context.Context, jti string, userID uint) (bool, error)

	// Revoke adds the token instance to the deny-list. Revoking an already
	// revoked jti is a no-op, enforced by the unique index on jti rather
	// than a check-then-insert race.
	Revoke(ctx context.Context, record *RevokedToken) error

	// SweepExpired deletes every record whose expiry has passed and returns
	// the number removed.
	SweepExpired(ctx context.Context) (int64, error)

	// CountByJTI returns the number of records for a jti. Only used by tests
	// to assert the at-most-one invariant.
	CountByJTI(ctx context.Context, jti string) (int64, error)
}
