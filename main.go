package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/giftsplit/backend/internal/auth"
	"github.com/giftsplit/backend/internal/config"
	controllers "github.com/giftsplit/backend/internal/controllers/v1"
	"github.com/giftsplit/backend/internal/gifts"
	"github.com/giftsplit/backend/internal/models"
	"github.com/giftsplit/backend/internal/payment"
	"github.com/giftsplit/backend/internal/router"
	"github.com/giftsplit/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx := context.Background()

	s, err := newStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	log.Info().Str("backend", cfg.Storage.Backend).Msg("Storage")

	provider := newProvider(cfg.Payment)
	log.Info().Str("provider", cfg.Payment.Provider).Msg("Payment")

	co := controllers.Controller{
		Gifts: gifts.New(s, provider, cfg.PublicBaseURL),
	}

	if cfg.Session.SigningKey != "" {
		co.Sessions = auth.NewIssuer(cfg.Session.SigningKey, cfg.Session.Issuer, cfg.Session.Lifetime)
	} else {
		log.Warn().Msg("SESSION_SIGNING_KEY is not set, session tokens are ignored")
	}

	r, teardown, err := router.Config(cfg.APIURL)
	defer teardown()

	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(co, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Error().Msg(err.Error())
	}
}

// newStore connects to the configured storage backend.
func newStore(ctx context.Context, cfg config.StorageConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.StorageMemory:
		log.Warn().Msg("Gifts are stored in memory and lost on restart")
		return store.NewMemory(), nil

	case config.StorageDynamoDB:
		client, err := store.NewDynamoDBClient(ctx, cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint)
		if err != nil {
			return nil, err
		}
		return store.NewDynamoDB(client, cfg.DynamoDB.Table), nil

	case config.StoragePostgres:
		db, err := models.Connect(models.Postgres(cfg.Postgres.Host, strconv.Itoa(cfg.Postgres.Port), cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Name))
		if err != nil {
			return nil, err
		}
		return store.NewSQL(db), nil

	default:
		// Create data directory
		err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), os.ModePerm)
		if err != nil {
			return nil, err
		}

		db, err := models.Connect(models.SQLite(cfg.SQLitePath))
		if err != nil {
			return nil, err
		}
		return store.NewSQL(db), nil
	}
}

func newProvider(cfg config.PaymentConfig) payment.Provider {
	if cfg.Provider == config.PaymentStripe {
		return payment.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	}

	return payment.NewMock()
}
