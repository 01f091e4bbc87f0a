package handler

import (
	_ "tradeboard/api/swagger" // swagger docs
	"tradeboard/internal/middleware"
	"tradeboard/internal/service"
	"tradeboard/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig carries everything NewRouter wires together
type RouterConfig struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	Auth           *middleware.Auth
	Hub            *websocket.Hub
	Dataset        DatasetStatus
	Shipments      service.ShipmentService
	Analytics      service.AnalyticsService
}

// NewRouter builds the read-only HTTP API. Only GET routes exist; other
// methods on a known path get 405.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Auth == nil {
		cfg.Auth = middleware.NewAuth(false, "")
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	// match %2F inside company names against :name
	router.UseRawPath = true
	router.UnescapePathValues = true

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Logger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewHealthHandler(cfg.Dataset).RegisterRoutes(router.Group(""))

	// WebSocket endpoint
	if cfg.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			websocket.ServeWs(cfg.Hub, c, cfg.Auth)
		})
	}

	// API Routing
	api := router.Group("", cfg.Auth.RequirePermission(middleware.PermAnalyticsRead))
	NewShipmentHandler(cfg.Shipments).RegisterRoutes(api)
	NewCompanyHandler(cfg.Analytics).RegisterRoutes(api)
	NewStatisticsHandler(cfg.Analytics).RegisterRoutes(api)

	return router
}
