package dto

import (
	"time"

	authusecases "github.com/cinevault-inc/cinevault/internal/application/auth/usecases"
	userusecases "github.com/cinevault-inc/cinevault/internal/application/user/usecases"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
)

// RegisterUserRequest is the HTTP payload for user registration.
type RegisterUserRequest struct {
	FirstName    string `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string `json:"last_name" binding:"required,min=1,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=128"`
	MobileNumber string `json:"mobile_number" binding:"required,e164"`
	Role         string `json:"role" binding:"omitempty,oneof=standard supervisor"`
	DeviceToken  string `json:"device_token" binding:"omitempty,max=4096"`
}

func (r *RegisterUserRequest) ToCommand() userusecases.RegisterUserCommand {
	return userusecases.RegisterUserCommand{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Password:     r.Password,
		MobileNumber: r.MobileNumber,
		Role:         r.Role,
		DeviceToken:  r.DeviceToken,
	}
}

// LoginRequest is the HTTP payload for sign-in.
type LoginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DeviceToken string `json:"device_token" binding:"omitempty,max=4096"`
}

func (r *LoginRequest) ToCommand() authusecases.LoginCommand {
	return authusecases.LoginCommand{
		Email:       r.Email,
		Password:    r.Password,
		DeviceToken: r.DeviceToken,
	}
}

// UpdateDeviceTokenRequest is the HTTP payload for binding or clearing a
// push device token. An empty token clears the binding.
type UpdateDeviceTokenRequest struct {
	DeviceToken string `json:"device_token" binding:"max=4096"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MobileNumber string    `json:"mobile_number"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:           u.SID(),
		Email:        u.Email().String(),
		FirstName:    u.FirstName().String(),
		LastName:     u.LastName().String(),
		MobileNumber: u.MobileNumber().String(),
		Role:         u.Role().String(),
		CreatedAt:    u.CreatedAt(),
	}
}

// AuthResponse carries the signed session token alongside the user.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}
