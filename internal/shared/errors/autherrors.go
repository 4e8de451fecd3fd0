package errors

import (
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypeTokenRevoked       ErrorType = "token_revoked"
	ErrorTypeTokenMalformed     ErrorType = "token_malformed"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged
	// Some auth errors (like invalid credentials) may be expected and don't need error-level logging
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The message deliberately does not reveal whether the email or the password
// was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewTokenExpiredError creates an error for an expired session token
func NewTokenExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Token has expired",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: false,
	}
}

// NewTokenInvalidError creates an error for a token with a bad signature or format
func NewTokenInvalidError(details ...string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: "Invalid token",
			Code:    http.StatusUnauthorized,
			Details: firstDetail(details),
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewTokenRevokedError creates an error for a token revoked by sign-out
func NewTokenRevokedError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenRevoked,
			Message: "Token has been revoked, please sign in again",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: false,
	}
}

// NewTokenMalformedError creates an error for a token that is well signed but
// semantically incomplete, which indicates a client bug rather than an attack.
func NewTokenMalformedError(details ...string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenMalformed,
			Message: "Token payload is incomplete",
			Code:    http.StatusUnauthorized,
			Details: firstDetail(details),
		},
		ShouldLog: true,
	}
}
