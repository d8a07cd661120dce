package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
	App    AppConfig
	Stripe StripeConfig
	Email  EmailConfig
	Auth   AuthConfig
	Redis  RedisConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int           `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	AllowedOrigins  string        `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

// DBConfig holds database-related configuration.
// URL takes precedence over the discrete fields when set.
// WARNING: Default password is for local development only.
type DBConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"training_db"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"` // Use "require" in production
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"2"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.sslMode())
	if c.MaxConns > 0 {
		dsn += fmt.Sprintf("&pool_max_conns=%d", c.MaxConns)
	}
	if c.MinConns > 0 {
		dsn += fmt.Sprintf("&pool_min_conns=%d", c.MinConns)
	}
	return dsn
}

func (c DBConfig) sslMode() string {
	if c.SSLMode == "" {
		return "disable"
	}
	return c.SSLMode
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// AppConfig holds public application settings.
type AppConfig struct {
	// URL is the public origin used for redirect URLs and email links.
	URL string `envconfig:"APP_URL" default:"http://localhost:3000"`
	Env string `envconfig:"APP_ENV" default:"development"`
}

// IsProduction reports whether the app runs in production mode.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// StripeConfig holds payment gateway credentials.
type StripeConfig struct {
	SecretKey      string `envconfig:"STRIPE_SECRET_KEY"`
	PublishableKey string `envconfig:"STRIPE_PUBLISHABLE_KEY"`
	WebhookSecret  string `envconfig:"STRIPE_WEBHOOK_SECRET"`
}

// Configured reports whether checkout sessions can be created.
func (c StripeConfig) Configured() bool {
	return c.SecretKey != ""
}

// EmailConfig holds transactional email settings.
type EmailConfig struct {
	APIKey     string `envconfig:"RESEND_API_KEY"`
	From       string `envconfig:"EMAIL_FROM" default:"Training Academy <noreply@example.com>"`
	OpsAddress string `envconfig:"EMAIL_OPS_ADDRESS"`
}

// Configured reports whether emails can be sent.
func (c EmailConfig) Configured() bool {
	return c.APIKey != ""
}

// AuthConfig holds identity provider settings.
type AuthConfig struct {
	JWTSecret string `envconfig:"SUPABASE_JWT_SECRET"`
	Audience  string `envconfig:"SUPABASE_JWT_AUDIENCE" default:"authenticated"`
}

// Configured reports whether bearer tokens can be verified.
func (c AuthConfig) Configured() bool {
	return c.JWTSecret != ""
}

// RedisConfig holds the webhook event cache settings. Empty Addr disables the cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	EventTTL time.Duration `envconfig:"WEBHOOK_EVENT_TTL" default:"72h"`
}

// Configured reports whether a Redis address was provided.
func (c RedisConfig) Configured() bool {
	return c.Addr != ""
}

// Load reads an optional .env file, then parses environment variables into the Config struct.
// Variables already present in the environment win over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
