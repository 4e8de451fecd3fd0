package user

import "context"

// Repository defines persistence operations for the user aggregate.
// GetByEmail expects a case-folded email (the Email value object guarantees
// this). Implementations return (nil, nil) for not-found lookups.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetBySID(ctx context.Context, sid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error

	// BindDeviceToken sets the device token on userID, clearing it from any
	// other user currently holding it. Both writes happen in one transaction
	// so the global uniqueness constraint is never observably violated.
	BindDeviceToken(ctx context.Context, userID uint, token string) error

	// ClearDeviceToken removes the device token binding for userID, if set.
	ClearDeviceToken(ctx context.Context, userID uint) error

	// ListWithDeviceTokens returns every user holding a bound device token.
	// Used for new-movie push fan-out.
	ListWithDeviceTokens(ctx context.Context) ([]*User, error)
}
