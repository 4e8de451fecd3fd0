package models

import (
	"time"

	"github.com/cinevault-inc/cinevault/internal/shared/constants"
)

// RevokedTokenModel is the deny-list row for a revoked session token.
// The unique index on JTI makes revocation idempotent at the storage level.
type RevokedTokenModel struct {
	ID        uint      `gorm:"primarykey"`
	JTI       string    `gorm:"uniqueIndex;not null;size:36"`
	UserID    uint      `gorm:"not null;index:idx_revoked_user"`
	ExpiresAt time.Time `gorm:"not null;index:idx_revoked_expires"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (RevokedTokenModel) TableName() string {
	return constants.TableRevokedTokens
}
