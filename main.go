package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"match-service/internal/cache"
	"match-service/internal/config"
	"match-service/internal/db"
	"match-service/internal/handlers"
	"match-service/internal/observability"
	"match-service/internal/profile"
	"match-service/internal/rabbitmq"
	"match-service/internal/repositories"
	"match-service/internal/service"
	"match-service/internal/telemetry"
	"match-service/internal/ws"
)

func main() {
	cfg := config.New()
	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Service, cfg.OTLP.Endpoint)
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(shutdownCtx)
	}()

	database, err := db.Connect(cfg.DB.DSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		log.Printf("redis unavailable, like counts fall back to db: %v", err)
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	defer publisher.Close()
	if reason := rabbitmq.NoopReason(publisher); reason != "" {
		log.Printf("event publisher mode=noop reason=%q", reason)
	} else {
		log.Printf("event publisher mode=%s", rabbitmq.PublisherMode(publisher))
	}

	profileClient := profile.NewClient(cfg.Profile.BaseURL)

	swipeRepo := repositories.NewSwipeRepo(database)
	matchRepo := repositories.NewMatchRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	blockRepo := repositories.NewBlockRepo(database)

	hub := ws.NewHub(publisher)
	core := service.NewService(swipeRepo, matchRepo, messageRepo, blockRepo, profileClient, redisCache, hub, publisher)

	handler := handlers.NewHandler(core)
	gateway := ws.NewGateway(hub, profileClient)
	emitter := telemetry.NewAuditEmitter(publisher, rabbitmq.KeyAudit, cfg.Service, cfg.Environment)

	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.Service))
	router.Use(observability.HTTPMetricsMiddleware())

	api := router.Group("/api")
	handler.RegisterRoutes(api)

	router.GET("/ws", gateway.Handle)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDebugRoutes(router, emitter, cfg.Debug)

	if err := router.Run(":" + cfg.HTTP.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
