package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/cinevault-inc/cinevault/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID   uint   `gorm:"primarykey"`
	SID  string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	// Each user holds exactly one subscription row; initiating a new plan
	// replaces this row rather than adding another.
	UserID             uint      `gorm:"uniqueIndex;not null"`
	Plan               string    `gorm:"not null;size:20"`
	Status             string    `gorm:"not null;size:20;index:idx_subscription_status"`
	StartDate          time.Time `gorm:"not null"`
	EndDate            *time.Time
	BillingCustomerRef *string `gorm:"size:100;index:idx_billing_customer"`
	BillingPaymentRef  *string `gorm:"size:100"`
	Metadata           datatypes.JSON
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
