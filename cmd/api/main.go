package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tradeboard/internal/config"
	"tradeboard/internal/database"
	"tradeboard/internal/dataset"
	"tradeboard/internal/handler"
	"tradeboard/internal/index"
	"tradeboard/internal/logger"
	"tradeboard/internal/middleware"
	"tradeboard/internal/repository"
	"tradeboard/internal/service"
	"tradeboard/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// @title           Trade Shipment Analytics API
// @version         1.0
// @description     Read-only shipment listing, company rollups and dataset statistics.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs/.env")
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Config failed to load")
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	gin.SetMode(cfg.Server.Mode)

	source, db, err := openSource(cfg.Data)
	if err != nil {
		log.Fatal().Err(err).Msg("Shipment source failed to open")
	}
	if db != nil {
		defer database.Close(db)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run()
	defer wsHub.Stop()

	// Set up dependencies (Source -> Store -> Index -> Service -> Handler)
	store := dataset.New(source)
	store.OnLoad(func(e dataset.Event) {
		wsHub.Publish(e)
	})
	indexes := index.NewBuilder(store)
	shipmentService := service.NewShipmentService(indexes)
	analyticsService := service.NewAnalyticsService(indexes)

	auth := middleware.NewAuth(cfg.Security.AuthEnabled, cfg.Security.JWTSecret)

	router := handler.NewRouter(handler.RouterConfig{
		Logger:         log,
		AllowedOrigins: cfg.Security.AllowedOrigins,
		Auth:           auth,
		Hub:            wsHub,
		Dataset:        store,
		Shipments:      shipmentService,
		Analytics:      analyticsService,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	if cfg.Data.Eager {
		go func() {
			if _, err := indexes.Get(ctx); err != nil {
				log.Error().Err(err).Msg("Dataset warm-up failed")
			}
		}()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("source", source.Describe()).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}

// openSource returns the configured shipment source. The *gorm.DB is non-nil
// only for the postgres source and must be closed by the caller.
func openSource(cfg config.DataConfig) (repository.ShipmentSource, *gorm.DB, error) {
	switch cfg.Source {
	case config.SourcePostgres:
		db, err := database.NewConnection(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewShipmentRepository(db, cfg.Table), db, nil
	default:
		return repository.NewFileSource(cfg.File), nil, nil
	}
}
