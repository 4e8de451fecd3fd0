package models

import (
	"time"

	"github.com/cinevault-inc/cinevault/internal/shared/constants"
)

// UserModel represents the database persistence model for users
// This is the anti-corruption layer between domain and database
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: usr_xxx"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	FirstName    string `gorm:"not null;size:100"`
	LastName     string `gorm:"not null;size:100"`
	MobileNumber string `gorm:"uniqueIndex;not null;size:20"`
	Role         string `gorm:"not null;size:20;default:standard"`
	PasswordHash string `gorm:"not null;size:255"`
	// DeviceToken is globally unique across users; binding a token to a new
	// user must first clear it from its previous holder.
	DeviceToken *string `gorm:"uniqueIndex;size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
