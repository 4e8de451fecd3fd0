package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/cinevault-inc/cinevault/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Subscription sharedConfig.SubscriptionConfig `mapstructure:"subscription"`
	Billing      sharedConfig.BillingConfig      `mapstructure:"billing"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	Sweep        sharedConfig.SweepConfig        `mapstructure:"sweep"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("CINEVAULT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// validate rejects configurations that would misbehave at runtime rather
// than at load time.
func validate(cfg *Config) error {
	if cfg.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret must not be empty")
	}
	if cfg.Auth.JWT.TokenTTLHrs <= 0 {
		return fmt.Errorf("auth.jwt.token_ttl_hours must be positive")
	}
	for slug, plan := range cfg.Subscription.Plans {
		if plan.AmountCents <= 0 {
			return fmt.Errorf("subscription.plans.%s.amount_cents must be positive", slug)
		}
		if plan.DurationDays <= 0 {
			return fmt.Errorf("subscription.plans.%s.duration_days must be positive", slug)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "cinevault_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.password.bcrypt_cost", 12)
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.token_ttl_hours", 24)
	viper.SetDefault("auth.rate_limit.login_per_minute", 10)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Subscription defaults. The basic plan bills a short weekly cycle,
	// premium a monthly one.
	viper.SetDefault("subscription.currency", "usd")
	viper.SetDefault("subscription.plans.basic.amount_cents", 999)
	viper.SetDefault("subscription.plans.basic.duration_days", 7)
	viper.SetDefault("subscription.plans.premium.amount_cents", 1999)
	viper.SetDefault("subscription.plans.premium.duration_days", 30)

	// Billing gateway defaults
	viper.SetDefault("billing.api_key", "")
	viper.SetDefault("billing.webhook_secret", "")
	viper.SetDefault("billing.base_url", "https://api.stripe.com")
	viper.SetDefault("billing.request_timeout", "10s")

	// Notification defaults
	viper.SetDefault("notification.push_endpoint", "https://fcm.googleapis.com/fcm/send")
	viper.SetDefault("notification.push_api_key", "")
	viper.SetDefault("notification.whatsapp_endpoint", "https://api.twilio.com")
	viper.SetDefault("notification.whatsapp_sid", "")
	viper.SetDefault("notification.whatsapp_token", "")
	viper.SetDefault("notification.whatsapp_from", "")
	viper.SetDefault("notification.request_timeout", "10s")

	// Revocation sweep defaults
	viper.SetDefault("sweep.interval", "1h")
}
