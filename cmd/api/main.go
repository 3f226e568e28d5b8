package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"zelux-backend/config"
	"zelux-backend/internal/handler"
	"zelux-backend/internal/notify"
	"zelux-backend/internal/redis"
	"zelux-backend/internal/repository"
	"zelux-backend/internal/server"
	"zelux-backend/internal/services"
	"zelux-backend/internal/storage"
	"zelux-backend/internal/websocket"
	"zelux-backend/pkg/database"
	"zelux-backend/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		l.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := repository.InitSchema(db); err != nil {
		l.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	tokens := services.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpiryMin)*time.Minute)
	authService := services.NewAuthService(userRepo, services.NewPasswordCodec(bcrypt.DefaultCost), tokens)
	guard := services.NewAccessGuard(tokens, userRepo)

	if cfg.AdminEmail != "" {
		res, err := database.Seed(ctx, authService, database.SeedConfig{
			AdminEmail:    cfg.AdminEmail,
			AdminFullName: cfg.AdminFullName,
			AdminPassword: cfg.AdminPassword,
		})
		if err != nil {
			l.Fatalf("Failed to provision admin: %v", err)
		}
		if res.Created {
			l.Infof("Admin account created: %s", res.Admin.Email)
		} else {
			l.Infof("Admin account already present: %s", res.Admin.Email)
		}
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	var sinks []notify.Sink
	if cfg.WebhookURL != "" {
		timeout := time.Duration(cfg.WebhookTimeoutSec) * time.Second
		sinks = append(sinks, notify.NewWebhookSink(cfg.WebhookURL, &http.Client{Timeout: timeout}))
	} else {
		l.Warnf("WEBHOOK_URL not set, contact messages will not be relayed")
	}

	if cfg.S3Enabled() {
		s3Client, err := storage.NewClient(ctx, storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			l.Fatalf("Failed to create S3 client: %v", err)
		}
		sinks = append(sinks, notify.NewArchiveSink(s3Client, cfg.S3ArchivePrefix))
	}

	var (
		redisClient *goredis.Client
		limiter     *redis.RateLimiter
	)
	if cfg.RedisEnabled {
		redisClient, err = redis.Connect(ctx, redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			l.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		limiter = redis.NewRateLimiter(redisClient, redis.RateLimitConfig{
			AuthLimit:    cfg.AuthRateLimit,
			ContactLimit: cfg.ContactRateLimit,
		})
		sinks = append(sinks, notify.NewPublishSink(redis.NewPublisher(redisClient), notify.ContactChannel))

		bridge := websocket.NewRedisBridge(redis.NewSubscriber(redisClient), hub)
		go func() {
			if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				l.Errorf("Live feed bridge stopped: %v", err)
			}
		}()
	} else {
		sinks = append(sinks, websocket.NewHubSink(hub))
	}

	dispatcher := notify.NewDispatcher(l, time.Duration(cfg.WebhookTimeoutSec)*time.Second, sinks...)
	l.Infof("Contact notifications: %v", dispatcher.Sinks())

	contactService := services.NewContactService(messageRepo, dispatcher, l)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Contact: handler.NewContactHandler(contactService),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		}, l),
		Stream: websocket.NewHandler(guard, hub, l),
	}, guard, limiter)

	srv.OnShutdown(func(ctx context.Context) {
		if err := dispatcher.Wait(ctx); err != nil {
			l.Warnf("Pending contact notifications dropped: %v", err)
		}
		stop()
	})

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited: %v", err)
	}
}
