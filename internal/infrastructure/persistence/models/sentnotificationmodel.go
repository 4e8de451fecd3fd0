package models

import (
	"time"

	"github.com/cinevault-inc/cinevault/internal/shared/constants"
)

// SentNotificationModel is the delivery ledger for outbound notifications.
// The composite unique index keeps a user from receiving the same
// notification twice for the same movie and channel.
type SentNotificationModel struct {
	ID        uint    `gorm:"primarykey"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_sent_dedupe,priority:1"`
	MovieID   *uint   `gorm:"uniqueIndex:idx_sent_dedupe,priority:2"`
	Kind      string  `gorm:"not null;size:50;uniqueIndex:idx_sent_dedupe,priority:3"`
	Channel   string  `gorm:"not null;size:20;uniqueIndex:idx_sent_dedupe,priority:4"`
	Action    *string `gorm:"size:100"`
	SentAt    time.Time
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (SentNotificationModel) TableName() string {
	return constants.TableSentNotifications
}
