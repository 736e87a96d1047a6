package app

import (
	"context"
	"time"

	"discord-backend/internal/app/channel"
	"discord-backend/internal/app/conversation"
	"discord-backend/internal/app/health"
	"discord-backend/internal/app/media"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/message"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/app/server"
	"discord-backend/internal/app/setup"
	"discord-backend/internal/app/upload"
	"discord-backend/internal/config"
	"discord-backend/internal/db"
	"discord-backend/internal/db/seeder"
	"discord-backend/internal/gateways/socketio"
	"discord-backend/internal/gateways/websocket"
	"discord-backend/internal/middleware"
	"discord-backend/internal/providers/amqp"
	"discord-backend/internal/providers/livekit"
	"discord-backend/internal/providers/minio"
	"discord-backend/internal/providers/redis"
	"discord-backend/internal/router"
	"discord-backend/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// tmpUploadMaxAge is how long an unconfirmed upload survives before the janitor removes it.
const tmpUploadMaxAge = time.Hour

type Application struct {
	Router *router.Router
	DB     *gorm.DB

	eventBus  *utils.EventBus
	hub       *websocket.Hub
	gateway   *socketio.Gateway
	janitor   *minio.Janitor
	redis     *redis.RedisProvider
	publisher amqp.Publisher
	logger    *zap.Logger
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	if cfg.Env != "prod" && cfg.Env != "production" {
		seed := seeder.NewSeeder(dbConn, logger)
		if err := seed.Seed(); err != nil {
			logger.Warn("Failed to run seeders", zap.Error(err))
		}
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)

	// storage stays a nil interface when MinIO is unavailable so uploads and
	// attachments report themselves as disabled.
	var storage minio.Storage
	var janitor *minio.Janitor
	minioProvider, err := minio.NewMinioProvider(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize MinIO provider", zap.Error(err))
	} else {
		storage = minioProvider
		janitor, err = minio.NewJanitor(minioProvider, cfg.UploadCleanupCron, tmpUploadMaxAge, logger)
		if err != nil {
			return nil, err
		}
	}

	publisher := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
	auditor := amqp.NewAuditEmitter(publisher, cfg.ServiceName, cfg.Env, logger)
	logger.Info("Audit publisher ready", zap.String("mode", amqp.PublisherMode(publisher)))

	eventBus := utils.NewEventBus(logger)
	hub := websocket.NewHub(logger)
	gateway := socketio.NewGateway(logger)
	eventBus.Subscribe(utils.AllEvents, hub.HandleEvent)
	eventBus.Subscribe(utils.AllEvents, gateway.HandleEvent)

	livekitProvider := livekit.NewProvider(cfg)
	if !livekitProvider.Configured() {
		logger.Warn("LiveKit is not configured, media tokens are disabled")
	}

	profileRepo := profile.NewRepository(dbConn)
	serverRepo := server.NewRepository(dbConn)
	memberRepo := member.NewRepository(dbConn)
	channelRepo := channel.NewRepository(dbConn)
	messageRepo := message.NewRepository(dbConn)
	conversationRepo := conversation.NewRepository(dbConn)

	profileService := profile.NewService(profileRepo, logger)
	serverService := server.NewService(serverRepo, auditor, logger)
	memberService := member.NewService(memberRepo, auditor, logger)
	channelService := channel.NewService(channelRepo, memberRepo, auditor, logger)
	setupService := setup.NewService(serverService)
	messageService := message.NewService(message.Deps{
		Repo:      messageRepo,
		Members:   memberRepo,
		Channels:  channelRepo,
		Files:     storage,
		Cache:     redisProvider,
		Events:    eventBus,
		Auditor:   auditor,
		BatchSize: cfg.MessagesBatch,
		CacheTTL:  cfg.RedisTTL,
	}, logger)
	conversationService := conversation.NewService(
		conversationRepo,
		memberRepo,
		storage,
		eventBus,
		auditor,
		cfg.MessagesBatch,
		logger,
	)

	probes := []utils.Probe{utils.DBProbe(dbConn), utils.RedisProbe(redisProvider.Client)}
	if storage != nil {
		probes = append(probes, utils.Probe{Name: "MinIO", Ping: storage.Ping})
	}
	healthHandler := health.NewHandler(health.NewService(&utils.HealthChecker{Probes: probes}))

	auth := middleware.AuthMiddleware(cfg.AuthJWTSecret, profileService, logger)
	limiter := middleware.NewLimiterPool(cfg.RateLimitRPS, cfg.RateLimitBurst)
	upgrader := websocket.NewUpgrader(middleware.AllowedOrigins(cfg.FrontendURL))

	r := router.NewRouter(cfg, auth, logger)

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterMetricsRoutes()
	r.RegisterSwaggerRoutes()
	r.RegisterProfileRoutes(profile.NewHandler())
	r.RegisterSetupRoutes(setup.NewHandler(setupService))
	r.RegisterServerRoutes(server.NewHandler(serverService))
	r.RegisterChannelRoutes(channel.NewHandler(channelService))
	r.RegisterMemberRoutes(member.NewHandler(memberService))
	r.RegisterMessageRoutes(message.NewHandler(messageService))
	r.RegisterConversationRoutes(conversation.NewHandler(conversationService))
	r.RegisterUploadRoutes(upload.NewHandler(storage, logger))
	r.RegisterMediaRoutes(media.NewHandler(livekitProvider, logger), limiter)
	r.RegisterWebSocketRoutes(hub, upgrader)
	r.RegisterSocketIORoutes(gateway)

	return &Application{
		Router:    r,
		DB:        dbConn,
		eventBus:  eventBus,
		hub:       hub,
		gateway:   gateway,
		janitor:   janitor,
		redis:     redisProvider,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Start launches the background workers. They stop when ctx is cancelled.
func (a *Application) Start(ctx context.Context) {
	go a.eventBus.Run(ctx)
	go a.hub.Run(ctx)
	go a.gateway.Serve()
	if a.janitor != nil {
		go a.janitor.Run(ctx)
	}
}

// Close releases connections held by providers. Call after ctx passed to Start is cancelled.
func (a *Application) Close() {
	if err := a.gateway.Close(); err != nil {
		a.logger.Warn("Failed to close socket.io server", zap.Error(err))
	}
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("Failed to close AMQP publisher", zap.Error(err))
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Warn("Failed to close Redis", zap.Error(err))
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
