package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinSecretLength is the shortest HMAC key accepted for signing tokens.
const MinSecretLength = 32

var ErrWeakSecret = errors.New("jwt secret too short")

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"potluck"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTAccessSecret    string `env:"JWT_ACCESS_SECRET,required,notEmpty"`
	JWTRefreshSecret   string `env:"JWT_REFRESH_SECRET,required,notEmpty"`
	JWTAccessTTLHours  int    `env:"JWT_ACCESS_TTL_HOURS" envDefault:"12"`
	JWTRefreshTTLHours int    `env:"JWT_REFRESH_TTL_HOURS" envDefault:"168"`

	// Seeded organizer account, replaces the old shared admin password.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Orga"`

	// Redis is optional; an empty address disables caching and idempotency keys.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"rsvp.submitted"`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"potluck-notifier"`

	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	SMTPFromName   string `env:"SMTP_FROM_NAME" envDefault:"Geburtstags-Potluck"`
	SMTPFromEmail  string `env:"SMTP_FROM_EMAIL"`
	OrganizerEmail string `env:"ORGANIZER_EMAIL"`

	EventTitle    string `env:"EVENT_TITLE" envDefault:"Geburtstags-Potluck"`
	EventWhen     string `env:"EVENT_WHEN"`
	EventWhere    string `env:"EVENT_WHERE"`
	EventTimezone string `env:"EVENT_TIMEZONE" envDefault:"Europe/Zurich"`

	// Only honour X-Forwarded-For / X-Real-IP when running behind these proxies.
	TrustProxy     bool     `env:"TRUST_PROXY" envDefault:"false"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," envDefault:"127.0.0.1,::1"`

	CORSOrigins        []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`
	RateLimitPerMinute int64    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`
	SubmitLimitPerMin  int64    `env:"SUBMIT_LIMIT_PER_MINUTE" envDefault:"10"`
	OverviewCacheSecs  int      `env:"OVERVIEW_CACHE_SECONDS" envDefault:"60"`
}

// Location resolves EventTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.EventTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return cfg
}

// Parse builds a Config from the current environment without touching .env files.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if err := cfg.validateSecrets(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validateSecrets() error {
	if len(c.JWTAccessSecret) < MinSecretLength {
		return fmt.Errorf("JWT_ACCESS_SECRET: %w (min %d bytes)", ErrWeakSecret, MinSecretLength)
	}
	if len(c.JWTRefreshSecret) < MinSecretLength {
		return fmt.Errorf("JWT_REFRESH_SECRET: %w (min %d bytes)", ErrWeakSecret, MinSecretLength)
	}
	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return nil
}

// ProxyList returns the proxies gin may trust, nil when proxy headers are ignored.
func (c *Config) ProxyList() []string {
	if !c.TrustProxy {
		return nil
	}
	return c.TrustedProxies
}

// KafkaEnabled reports whether any broker is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// SMTPEnabled reports whether outgoing e-mail can be sent.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}
