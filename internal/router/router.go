package router

import (
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
	"discord-backend/internal/gateways/socketio"
	"discord-backend/internal/gateways/websocket"
	"discord-backend/internal/middleware"
	"discord-backend/internal/observability"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
	// api is the authenticated /api group. Every feature route hangs off it.
	api  *gin.RouterGroup
	auth gin.HandlerFunc
}

func NewRouter(cfg *config.Config, auth gin.HandlerFunc, logger *zap.Logger) *Router {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(cfg.ServiceName))
	engine.Use(observability.HTTPMetricsMiddleware())

	return &Router{
		Engine: engine,
		api:    engine.Group("/api", auth),
		auth:   auth,
	}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterMetricsRoutes() {
	r.Engine.GET("/metrics", observability.MetricsHandler())
}

func (r *Router) RegisterSwaggerRoutes() {
	r.Engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (r *Router) RegisterProfileRoutes(handler profile.Handler) {
	profile.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterSetupRoutes(handler setup.Handler) {
	setup.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterServerRoutes(handler server.Handler) {
	server.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterChannelRoutes(handler channel.Handler) {
	channel.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterMemberRoutes(handler member.Handler) {
	member.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterMessageRoutes(handler message.Handler) {
	message.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterConversationRoutes(handler conversation.Handler) {
	conversation.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterUploadRoutes(handler *upload.Handler) {
	upload.RegisterRoutes(r.api, handler)
}

// RegisterMediaRoutes mounts the LiveKit token endpoint behind the per-caller rate limit.
func (r *Router) RegisterMediaRoutes(handler media.Handler, limiter *middleware.LimiterPool) {
	media.RegisterRoutes(r.api, handler, middleware.RateLimit(limiter))
}

func (r *Router) RegisterWebSocketRoutes(hub *websocket.Hub, upgrader *websocket.Upgrader) {
	websocket.RegisterRoutes(r.Engine.Group("", r.auth), hub, upgrader)
}

func (r *Router) RegisterSocketIORoutes(gateway *socketio.Gateway) {
	socketio.RegisterRoutes(r.Engine, gateway)
}

func (r *Router) Serve(addr string) error {
	return r.Engine.Run(addr)
}
