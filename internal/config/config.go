// Package config reads the configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"

	PaymentMock   = "mock"
	PaymentStripe = "stripe"
)

var (
	ErrAPIURLMissing              = errors.New("environment variable API_URL must be set")
	ErrAPIURLInvalid              = errors.New("environment variable API_URL must be a valid URL")
	ErrStorageBackend             = errors.New("STORAGE_BACKEND must be one of sqlite, postgres, dynamodb or memory")
	ErrPaymentProvider            = errors.New("PAYMENT_PROVIDER must be either mock or stripe")
	ErrStripeKeyMissing           = errors.New("STRIPE_SECRET_KEY must be set when the stripe payment provider is used")
	ErrStripeWebhookSecretMissing = errors.New("STRIPE_WEBHOOK_SECRET must be set when the stripe payment provider is used")
)

type Config struct {
	APIURL        *url.URL
	PublicBaseURL string
	Storage       StorageConfig
	Payment       PaymentConfig
	Session       SessionConfig
}

type StorageConfig struct {
	Backend    string
	SQLitePath string
	Postgres   PostgresConfig
	DynamoDB   DynamoDBConfig
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type DynamoDBConfig struct {
	Table    string
	Region   string
	Endpoint string // Only set for local DynamoDB
}

type PaymentConfig struct {
	Provider            string
	StripeSecretKey     string
	StripeWebhookSecret string
}

type SessionConfig struct {
	SigningKey string // Sessions are disabled when empty
	Issuer     string
	Lifetime   time.Duration
}

// LoadDotEnv loads variables from the .env file in the working directory.
// Variables that are already set are not overwritten.
func LoadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// Load returns the configuration from environment variables.
func Load() (Config, error) {
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		return Config{}, ErrAPIURLMissing
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrAPIURLInvalid, err)
	}

	c := Config{
		APIURL:        u,
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		Storage: StorageConfig{
			Backend:    getEnv("STORAGE_BACKEND", StorageSQLite),
			SQLitePath: getEnv("SQLITE_PATH", "data/gorm.db"),
			Postgres: PostgresConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnvInt("DB_PORT", 5432),
				User:     getEnv("DB_USER", "giftsplit"),
				Password: getEnv("DB_PASSWORD", ""),
				Name:     getEnv("DB_NAME", "giftsplit"),
			},
			DynamoDB: DynamoDBConfig{
				Table:    getEnv("DYNAMODB_TABLE", "gifts"),
				Region:   getEnv("AWS_REGION", "us-east-1"),
				Endpoint: getEnv("DYNAMODB_ENDPOINT", ""),
			},
		},
		Payment: PaymentConfig{
			Provider:            getEnv("PAYMENT_PROVIDER", PaymentMock),
			StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Session: SessionConfig{
			SigningKey: getEnv("SESSION_SIGNING_KEY", ""),
			Issuer:     getEnv("SESSION_ISSUER", "giftsplit"),
			Lifetime:   getEnvDuration("SESSION_LIFETIME", 24*time.Hour),
		},
	}

	return c, c.validate()
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case StorageSQLite, StoragePostgres, StorageDynamoDB, StorageMemory:
	default:
		return ErrStorageBackend
	}

	switch c.Payment.Provider {
	case PaymentMock:
	case PaymentStripe:
		if c.Payment.StripeSecretKey == "" {
			return ErrStripeKeyMissing
		}
		if c.Payment.StripeWebhookSecret == "" {
			return ErrStripeWebhookSecretMissing
		}
	default:
		return ErrPaymentProvider
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
