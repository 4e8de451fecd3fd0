package user

import (
	"fmt"
	"time"

	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	vo "github.com/cinevault-inc/cinevault/internal/domain/user/valueobjects"
)

// User represents the user aggregate root (pure domain model without persistence concerns)
type User struct {
	id           uint
	sid          string
	email        *vo.Email
	firstName    *vo.Name
	lastName     *vo.Name
	mobileNumber *vo.MobileNumber
	role         authorization.UserRole
	passwordHash string
	deviceToken  *string
	createdAt    time.Time
	updatedAt    time.Time
}

// PasswordHasher abstracts the password hashing scheme
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// NewUser creates a new user aggregate with initial values
func NewUser(
	sid string,
	email *vo.Email,
	firstName, lastName *vo.Name,
	mobileNumber *vo.MobileNumber,
	role authorization.UserRole,
	passwordHash string,
) (*User, error) {
	if sid == "" {
		return nil, fmt.Errorf("sid is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if firstName == nil || lastName == nil {
		return nil, fmt.Errorf("first and last name are required")
	}
	if mobileNumber == nil {
		return nil, fmt.Errorf("mobile number is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		sid:          sid,
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		mobileNumber: mobileNumber,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(
	id uint,
	sid string,
	email *vo.Email,
	firstName, lastName *vo.Name,
	mobileNumber *vo.MobileNumber,
	role authorization.UserRole,
	passwordHash string,
	deviceToken *string,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:           id,
		sid:          sid,
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		mobileNumber: mobileNumber,
		role:         role,
		passwordHash: passwordHash,
		deviceToken:  deviceToken,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                         { return u.id }
func (u *User) SID() string                      { return u.sid }
func (u *User) Email() *vo.Email                 { return u.email }
func (u *User) FirstName() *vo.Name              { return u.firstName }
func (u *User) LastName() *vo.Name               { return u.lastName }
func (u *User) MobileNumber() *vo.MobileNumber   { return u.mobileNumber }
func (u *User) Role() authorization.UserRole     { return u.role }
func (u *User) PasswordHash() string             { return u.passwordHash }
func (u *User) DeviceToken() *string             { return u.deviceToken }
func (u *User) CreatedAt() time.Time             { return u.createdAt }
func (u *User) UpdatedAt() time.Time             { return u.updatedAt }

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// VerifyPassword checks the given plaintext password against the stored hash
func (u *User) VerifyPassword(password string, hasher PasswordHasher) error {
	return hasher.Verify(password, u.passwordHash)
}

// BindDeviceToken attaches a push-delivery endpoint token to this user.
// Device tokens are globally unique; the repository transfers ownership from
// any previous holder inside one transaction.
func (u *User) BindDeviceToken(token string) error {
	if token == "" {
		return fmt.Errorf("device token cannot be empty")
	}
	u.deviceToken = &token
	u.updatedAt = time.Now().UTC()
	return nil
}

// ClearDeviceToken removes the push-delivery endpoint binding, if any.
func (u *User) ClearDeviceToken() {
	u.deviceToken = nil
	u.updatedAt = time.Now().UTC()
}

// UpdateProfile replaces the mutable profile fields
func (u *User) UpdateProfile(firstName, lastName *vo.Name, mobileNumber *vo.MobileNumber) error {
	if firstName == nil || lastName == nil {
		return fmt.Errorf("first and last name are required")
	}
	if mobileNumber == nil {
		return fmt.Errorf("mobile number is required")
	}
	u.firstName = firstName
	u.lastName = lastName
	u.mobileNumber = mobileNumber
	u.updatedAt = time.Now().UTC()
	return nil
}
