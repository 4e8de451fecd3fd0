package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType      = "Content-Type"
	HeaderAuthorization    = "Authorization"
	HeaderXRequestID       = "X-Request-ID"
	HeaderBillingSignature = "Billing-Signature"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// Context keys
	ContextKeyUserID      = "user_id"
	ContextKeyUserRole    = "user_role"
	ContextKeyCurrentUser = "current_user"
	ContextKeyTokenID     = "token_id"
	ContextKeyTokenExpiry = "token_expiry"
	ContextKeyRequestID   = "request_id"

	// Database table names
	TableUsers             = "users"
	TableRevokedTokens     = "revoked_tokens"
	TableSubscriptions     = "subscriptions"
	TableMovies            = "movies"
	TableSentNotifications = "sent_notifications"
)
