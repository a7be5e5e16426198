// @title        Livestock Management API
// @version      1.0
// @description  Cattle registry, husbandry records, trades and messaging for farmers and buyers.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mirieri/nikonangombeghani-api/internal/api"
	"github.com/Mirieri/nikonangombeghani-api/internal/api/handler"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/service"
	"github.com/Mirieri/nikonangombeghani-api/internal/infrastructure/config"
	"github.com/Mirieri/nikonangombeghani-api/internal/infrastructure/db/mongo"
	"github.com/Mirieri/nikonangombeghani-api/internal/infrastructure/db/postgres"
	"github.com/Mirieri/nikonangombeghani-api/internal/infrastructure/db/redis"
	"github.com/Mirieri/nikonangombeghani-api/internal/infrastructure/realtime"
	"github.com/Mirieri/nikonangombeghani-api/internal/infrastructure/storage"
	"github.com/Mirieri/nikonangombeghani-api/internal/infrastructure/whatsapp"
	"github.com/Mirieri/nikonangombeghani-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		logger.Init(logger.Options{Service: "livestock-api"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "livestock-api",
	})

	// --- Postgres ---
	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Postgres.URL,
		MaxConns: cfg.Postgres.MaxConns,
		Timeout:  cfg.Postgres.Timeout,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}
	log.Info().Msg("postgres schema applied")

	deps := map[string]handler.PingFunc{"postgres": pool.Ping}

	// --- MongoDB (delivery audit log, optional) ---
	var deliveries ports.DeliveryLog
	if cfg.Mongo.URI != "" {
		store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = store.Close(closeCtx)
		}()

		dl := mongo.NewDeliveryLog(store.Database())
		if err := dl.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure delivery log indexes")
		}
		deliveries = dl
		deps["mongodb"] = store.Ping
	} else {
		log.Info().Msg("MONGO_URI not set, delivery audit log disabled")
	}

	// --- Redis (webhook dedup, optional) ---
	var dedup ports.DedupChecker
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		dedup = redis.NewDedupChecker(rdb, cfg.Redis.DedupTTL)
		deps["redis"] = redisPing(rdb)
	} else {
		log.Info().Msg("REDIS_ADDR not set, webhook deduplication disabled")
	}

	// --- Image storage ---
	var (
		images   ports.ImageStorage
		imageDir string
	)
	if cfg.Storage.S3Bucket != "" {
		s3, err := storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:           cfg.Storage.S3Bucket,
			Region:           cfg.Storage.S3Region,
			AccessKeyID:      cfg.Storage.S3AccessKeyID,
			SecretAccessKey:  cfg.Storage.S3SecretAccessKey,
			CloudFrontDomain: cfg.Storage.S3CloudFrontDomain,
			Prefix:           "cattle",
		})
		if err != nil {
			return err
		}
		images = s3
	} else {
		local, err := storage.NewLocalStorage(cfg.Storage.Dir)
		if err != nil {
			return err
		}
		images = local
		imageDir = local.Dir()
	}

	// --- Services ---
	hasher := service.NewBcryptHasher(bcrypt.DefaultCost)
	userRepo := postgres.NewUserRepository(pool)
	users := service.NewUserService(userRepo, hasher, logger.For("users"))

	auth, err := service.NewAuthService(userRepo, hasher, &service.AuthConfig{
		Secret:   cfg.Auth.JWTSecret,
		TokenTTL: cfg.Auth.TokenTTL,
	}, logger.For("auth"))
	if err != nil {
		return err
	}

	hub := realtime.NewHub(logger.For("realtime"))
	cattleRepo := postgres.NewCattleRepository(pool)

	imageService := service.NewCattleImageService(postgres.NewCattleImageRepository(pool), cattleRepo, images, logger.For("images"))
	messaging := service.NewMessagingService(
		postgres.NewMessageRepository(pool),
		userRepo,
		whatsapp.NewClient(whatsapp.Config{
			APIURL:  cfg.WhatsApp.APIURL,
			APIKey:  cfg.WhatsApp.APIKey,
			Timeout: cfg.WhatsApp.Timeout,
		}),
		deliveries,
		dedup,
		logger.For("messaging"),
	)
	notifications := service.NewNotificationService(postgres.NewNotificationRepository(pool), hub, logger.For("notifications"))

	e := api.NewRouter(api.Handlers{
		Auth:          handler.NewAuthHandler(auth),
		Users:         handler.NewUserHandler(users),
		Images:        handler.NewImageHandler(imageService),
		Messages:      handler.NewMessageHandler(messaging),
		Notifications: handler.NewNotificationHandler(notifications, hub),
		Health:        handler.NewHealthHandler(deps),
		Herd:          herdResources(pool, cattleRepo, log),
		Open:          openResources(pool, log),
	}, api.Options{
		Authenticator:  auth,
		Logger:         log,
		ImageDir:       imageDir,
		ImageURLPrefix: storage.DefaultURLPrefix,
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

type validatable interface {
	Validate() error
}

func crud[E any, C, P validatable](entity string, repo ports.Repository[E, C, P], log zerolog.Logger) api.Resource {
	svc := service.NewCRUDService[E, C, P](entity, repo, log.With().Str("component", entity).Logger())
	return handler.NewEntityHandler[E, C, P](svc)
}

// herdResources are the animal records only farmers and admins may write.
func herdResources(pool *pgxpool.Pool, cattle *postgres.CattleRepository, log zerolog.Logger) map[string]api.Resource {
	ownership := service.NewAppendOnlyService[domain.OwnershipRecord, domain.OwnershipRecordCreate](
		"ownership", postgres.NewOwnershipRepository(pool), log.With().Str("component", "ownership").Logger())

	return map[string]api.Resource{
		"/farmers":                    crud[domain.Farmer, domain.FarmerCreate, domain.FarmerPatch]("farmer", postgres.NewFarmerRepository(pool), log),
		"/locations":                  crud[domain.Location, domain.LocationCreate, domain.LocationPatch]("location", postgres.NewLocationRepository(pool), log),
		"/cattle":                     crud[domain.Cattle, domain.CattleCreate, domain.CattlePatch]("cattle", cattle, log),
		"/calvings":                   crud[domain.Calving, domain.CalvingCreate, domain.CalvingPatch]("calving", postgres.NewCalvingRepository(pool), log),
		"/inseminations":              crud[domain.Insemination, domain.InseminationCreate, domain.InseminationPatch]("insemination", postgres.NewInseminationRepository(pool), log),
		"/milk_productions":           crud[domain.MilkProduction, domain.MilkProductionCreate, domain.MilkProductionPatch]("milk_production", postgres.NewMilkProductionRepository(pool), log),
		"/weight_records":             crud[domain.WeightRecord, domain.WeightRecordCreate, domain.WeightRecordPatch]("weight_record", postgres.NewWeightRecordRepository(pool), log),
		"/pedigrees":                  crud[domain.Pedigree, domain.PedigreeCreate, domain.PedigreePatch]("pedigree", postgres.NewPedigreeRepository(pool), log),
		"/cattle_ownership_histories": handler.NewAppendOnlyHandler[domain.OwnershipRecord, domain.OwnershipRecordCreate](ownership),
	}
}

// openResources may be written by any active user.
func openResources(pool *pgxpool.Pool, log zerolog.Logger) map[string]api.Resource {
	favorites := service.NewRecordService[domain.Favorite, domain.FavoriteCreate](
		"favorite", postgres.NewFavoriteRepository(pool), log.With().Str("component", "favorite").Logger())

	return map[string]api.Resource{
		"/trades":    crud[domain.Trade, domain.TradeCreate, domain.TradePatch]("trade", postgres.NewTradeRepository(pool), log),
		"/favorites": handler.NewRecordHandler[domain.Favorite, domain.FavoriteCreate](favorites),
	}
}

func redisPing(rdb *goredis.Client) handler.PingFunc {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
