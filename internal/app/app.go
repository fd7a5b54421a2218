package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Tazdar-Rahim/artmuse-server/internal/auth"
	"github.com/Tazdar-Rahim/artmuse-server/internal/config"
	"github.com/Tazdar-Rahim/artmuse-server/internal/event"
	handler "github.com/Tazdar-Rahim/artmuse-server/internal/handler/http"
	redisrepo "github.com/Tazdar-Rahim/artmuse-server/internal/repository/redis"
	"github.com/Tazdar-Rahim/artmuse-server/internal/sender"
	"github.com/Tazdar-Rahim/artmuse-server/internal/sender/mock"
	"github.com/Tazdar-Rahim/artmuse-server/internal/sender/smtp"
	"github.com/Tazdar-Rahim/artmuse-server/internal/service"
	fsstorage "github.com/Tazdar-Rahim/artmuse-server/internal/storage/fs"
	"github.com/Tazdar-Rahim/artmuse-server/migrations"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/database"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/health"
	pkgkafka "github.com/Tazdar-Rahim/artmuse-server/pkg/kafka"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/middleware"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/tracing"

	"github.com/Tazdar-Rahim/artmuse-server/internal/repository/postgres"
)

// idempotencyTTL bounds how long processed event IDs are remembered by the
// email consumers.
const idempotencyTTL = 24 * time.Hour

// App wires together every component of the artmuse server.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	pool      *pgxpool.Pool
	redis     *goredis.Client
	producer  *pkgkafka.Producer
	consumers []*pkgkafka.Consumer
	dlq       *pkgkafka.DLQProducer

	httpServer     *http.Server
	shutdownTracer func(context.Context) error
}

// NewApp builds the application from configuration. It connects to
// PostgreSQL, Redis, and Kafka, runs migrations, and assembles the HTTP
// router.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "artmuse-server",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	pgCfg := &database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}

	pool, err := database.NewPostgresPoolWithLogger(ctx, pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	database.RegisterPoolMetrics(pool, "artmuse-server")
	database.SetSlowQueryLogging(cfg.SlowQueryThreshold(), logger)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	producer := event.NewProducer(kafkaProducer, logger)

	accessExpiry, _ := time.ParseDuration(cfg.JWTAccessExpiry)
	refreshExpiry, _ := time.ParseDuration(cfg.JWTRefreshExpiry)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, accessExpiry, refreshExpiry)

	// Repositories.
	artworkRepo := postgres.NewArtworkRepository(pool)
	packageRepo := postgres.NewCommissionPackageRepository(pool)
	requestRepo := postgres.NewCommissionRequestRepository(pool)
	consultationRepo := postgres.NewConsultationRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(pool)
	userTokenRepo := postgres.NewUserTokenRepository(pool)
	templateRepo := postgres.NewEmailTemplateRepository(pool)
	emailLogRepo := postgres.NewEmailLogRepository(pool)
	mediaRepo := postgres.NewMediaRepository(pool)
	cartRepo := redisrepo.NewCartRepository(redisClient, cfg.CartTTL())

	// Media storage on the local filesystem.
	mediaStore, err := fsstorage.New(cfg.MediaDir, cfg.MediaBaseURL+"/files")
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init media storage: %w", err)
	}

	// Outbound email falls back to a recording mock when SMTP is not
	// configured, which keeps development environments mail-free.
	var mailSender sender.Sender
	if cfg.SMTPHost != "" {
		mailSender = smtp.NewSender(smtp.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	} else {
		logger.Warn("SMTP not configured, using mock email sender")
		mailSender = mock.NewMockSender(logger)
	}

	// Services.
	emailService := service.NewEmailService(templateRepo, emailLogRepo, mailSender, logger)
	artworkService := service.NewArtworkService(artworkRepo, logger)
	cartService := service.NewCartService(cartRepo, artworkRepo, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, artworkRepo, logger)
	commissionService := service.NewCommissionService(packageRepo, requestRepo, producer, logger)
	consultationService := service.NewConsultationService(consultationRepo, producer, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, producer, logger)
	userService := service.NewUserService(
		userRepo, refreshTokenRepo, userTokenRepo,
		jwtManager, refreshExpiry, producer, emailService, logger,
	)
	mediaService := service.NewMediaService(mediaStore, mediaRepo, logger)

	// Email consumers.
	consumerHandler := event.NewConsumerHandler(emailService, logger)
	idempotency := pkgkafka.NewMemoryIdempotencyStore(idempotencyTTL)
	consumers, dlq := event.NewConsumers(cfg.KafkaBrokers, consumerHandler, idempotency, logger)

	// Health checks. Postgres is critical; Redis and Kafka degrade the
	// service without taking it down.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return kafkaProducer.Ping(ctx)
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(handler.RouterConfig{
		Artworks:      handler.NewArtworkHandler(artworkService, logger),
		Cart:          handler.NewCartHandler(cartService, logger),
		Wishlist:      handler.NewWishlistHandler(wishlistService, logger),
		Commissions:   handler.NewCommissionHandler(commissionService, logger),
		Consultations: handler.NewConsultationHandler(consultationService, logger),
		Orders:        handler.NewOrderHandler(orderService, logger),
		Auth:          handler.NewAuthHandler(userService, logger),
		Media:         handler.NewMediaHandler(mediaService, logger),
		Emails:        handler.NewEmailHandler(emailService, logger),
		Contact:       handler.NewContactHandler(emailService, logger),
		JWT:           jwtManager,
		Health:        healthHandler,
		Logger:        logger,
		CORS:          corsCfg,
		MediaFS:       http.FileServer(http.Dir(mediaStore.Root())),

		PprofEnabled:      cfg.PprofEnabled,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       kafkaProducer,
		consumers:      consumers,
		dlq:            dlq,
		httpServer:     httpServer,
		shutdownTracer: shutdownTracer,
	}, nil
}

// Run starts the email consumers and the HTTP server, blocking until the
// server stops.
func (a *App) Run(ctx context.Context) error {
	for _, consumer := range a.consumers {
		go func(c *pkgkafka.Consumer) {
			if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("consumer stopped", slog.String("error", err.Error()))
			}
		}(consumer)
	}

	a.logger.Info("http server starting", slog.Int("port", a.cfg.HTTPPort))

	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

// Shutdown stops the application gracefully: HTTP first so no new work
// arrives, then the tracer, then messaging, then the data stores.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	if err := a.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}

	if err := a.shutdownTracer(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
	}

	for _, consumer := range a.consumers {
		if err := consumer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close consumer: %w", err))
		}
	}
	if err := a.producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close producer: %w", err))
	}
	if err := a.dlq.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close dlq producer: %w", err))
	}

	if err := a.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}
	a.pool.Close()

	return errors.Join(errs...)
}
