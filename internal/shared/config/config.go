// Package config defines the typed configuration structs shared across layers.
// Loading and defaulting happen in internal/infrastructure/config.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GetAddr returns the host:port address for the HTTP server
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds MySQL connection settings
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logging settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// JWTConfig holds session token settings.
// Rotating Secret invalidates every outstanding token at once; this is the
// intended fail-safe behavior on secret compromise, rolled out via redeploy.
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	TokenTTLHrs int    `mapstructure:"token_ttl_hours"`
}

// PasswordConfig holds password hashing settings
type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// RateLimitConfig holds login rate limiting settings
type RateLimitConfig struct {
	LoginPerMinute int `mapstructure:"login_per_minute"`
}

// AuthConfig groups authentication settings
type AuthConfig struct {
	JWT       JWTConfig       `mapstructure:"jwt"`
	Password  PasswordConfig  `mapstructure:"password"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GetAddr returns the host:port address for the Redis client
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PlanConfig holds per-plan billing settings. AmountCents is the charge in
// minor currency units; DurationDays is the paid period granted on payment.
type PlanConfig struct {
	AmountCents  int64 `mapstructure:"amount_cents"`
	DurationDays int   `mapstructure:"duration_days"`
}

// SubscriptionConfig maps plan slugs to their billing settings.
// The mapping must be exhaustive over the paid plans; the free plan carries
// neither an amount nor a duration.
type SubscriptionConfig struct {
	Currency string                `mapstructure:"currency"`
	Plans    map[string]PlanConfig `mapstructure:"plans"`
}

// BillingConfig holds billing gateway settings
type BillingConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	WebhookSecret  string        `mapstructure:"webhook_secret"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// NotificationConfig holds push and WhatsApp gateway settings
type NotificationConfig struct {
	PushEndpoint     string        `mapstructure:"push_endpoint"`
	PushAPIKey       string        `mapstructure:"push_api_key"`
	WhatsAppEndpoint string        `mapstructure:"whatsapp_endpoint"`
	WhatsAppSID      string        `mapstructure:"whatsapp_sid"`
	WhatsAppToken    string        `mapstructure:"whatsapp_token"`
	WhatsAppFrom     string        `mapstructure:"whatsapp_from"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
}

// SweepConfig holds revocation sweep scheduler settings
type SweepConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}
