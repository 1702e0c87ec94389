package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking-api/services"

	"github.com/spf13/viper"
)

const (
	AuthModeLocal    = "local"
	AuthModeExternal = "external"
)

type Config struct {
	AppEnv string
	Port   string

	Database DatabaseConfig
	Auth     AuthConfig

	CORSOrigins        string
	RedisURL           string
	RateLimitPerMinute int
	RabbitMQURL        string
	BookingEventsQueue string
	DeletePolicy       services.DeletePolicy

	SeedDatabase     bool
	SeedYear         int
	SeedDemoPassword string
}

type DatabaseConfig struct {
	URL      string
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	LogLevel string
}

type AuthConfig struct {
	Mode      string
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	ExternalPublicKey string
	ExternalIssuer    string
	ExternalAudience  string
}

// Load reads configuration from the process environment. Call godotenv first
// if a .env file should be honored.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	policy, err := services.ParseDeletePolicy(v.GetString("ROOMTYPE_DELETE_POLICY"))
	if err != nil {
		return nil, err
	}

	dbURL := strings.TrimSpace(v.GetString("MYSQL_URL"))
	if dbURL == "" {
		dbURL = strings.TrimSpace(v.GetString("DATABASE_URL"))
	}

	cfg := &Config{
		AppEnv: v.GetString("APP_ENV"),
		Port:   v.GetString("PORT"),
		Database: DatabaseConfig{
			URL:      dbURL,
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			LogLevel: strings.ToLower(v.GetString("DB_LOG_LEVEL")),
		},
		Auth: AuthConfig{
			Mode:              strings.ToLower(strings.TrimSpace(v.GetString("AUTH_MODE"))),
			JWTSecret:         v.GetString("JWT_SECRET"),
			JWTIssuer:         v.GetString("JWT_ISSUER"),
			JWTTTL:            v.GetDuration("JWT_TTL"),
			ExternalPublicKey: v.GetString("AUTH_EXTERNAL_PUBLIC_KEY"),
			ExternalIssuer:    v.GetString("AUTH_EXTERNAL_ISSUER"),
			ExternalAudience:  v.GetString("AUTH_EXTERNAL_AUDIENCE"),
		},
		CORSOrigins:        v.GetString("CORS_ORIGINS"),
		RedisURL:           strings.TrimSpace(v.GetString("REDIS_URL")),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		RabbitMQURL:        strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		BookingEventsQueue: v.GetString("BOOKING_EVENTS_QUEUE"),
		DeletePolicy:       policy,
		SeedDatabase:       v.GetBool("SEED_DATABASE"),
		SeedYear:           v.GetInt("SEED_YEAR"),
		SeedDemoPassword:   v.GetString("SEED_DEMO_PASSWORD"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")

	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "hotel_db")
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("AUTH_MODE", AuthModeLocal)
	v.SetDefault("JWT_ISSUER", "hotel-booking-api")
	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 20)
	v.SetDefault("BOOKING_EVENTS_QUEUE", "booking.confirmed")
	v.SetDefault("ROOMTYPE_DELETE_POLICY", string(services.DeleteRestrict))

	v.SetDefault("SEED_DATABASE", false)
	v.SetDefault("SEED_YEAR", time.Now().UTC().Year())
}

func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeLocal:
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return errors.New("JWT_SECRET is required when AUTH_MODE=local")
		}
	case AuthModeExternal:
		if strings.TrimSpace(c.Auth.ExternalPublicKey) == "" {
			return errors.New("AUTH_EXTERNAL_PUBLIC_KEY is required when AUTH_MODE=external")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.Auth.Mode)
	}
	if c.Auth.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.RateLimitPerMinute < 1 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be at least 1")
	}
	return nil
}
