package main

import (
	"context"
	config "efood-checkout/configs"
	database "efood-checkout/internal/pkg/db"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/jwt"
	"efood-checkout/internal/pkg/logger"
	"efood-checkout/internal/pkg/rabbitmq"
	"efood-checkout/internal/pkg/redis"
	s3aws "efood-checkout/internal/pkg/storage/s3"
	"efood-checkout/internal/pkg/validation"
	serverApp "efood-checkout/internal/server"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	if err := logger.Setup(env.LogLevel, env.LogFormat); err != nil {
		logger.Error.Println("Error setting up logger", err)
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		return
	}
	defer func() { _ = redisClient.Close() }()

	deps := &serverApp.Dependencies{
		Env:   env,
		Redis: redisClient,
		Efood: efood.NewClient(&efood.Config{
			BaseURL:      env.CatalogBaseURL,
			PurchasePath: env.CatalogPurchasePath,
			Timeout:      env.CatalogTimeout,
		}),
	}

	// Setup RabbitMQ (optional, order events are dropped without it)
	rabbit, err := setupRabbitMQ(ctx, env)
	if err != nil {
		logger.Warning.Println("RabbitMQ unavailable, order events disabled:", err)
	} else {
		deps.Rabbit = rabbit
		deps.Publisher = rabbitmq.NewPublisher(ctx, rabbit)
		defer func() {
			_ = deps.Publisher.Close()
			_ = rabbit.Close()
		}()
	}

	// Setup Database (optional, order history is disabled without it)
	db, err := setupDB(env, redisClient)
	if err != nil {
		logger.Warning.Println("Database unavailable, order history disabled:", err)
	} else {
		deps.DB = db
		defer func() { _ = db.Close() }()
	}

	// Setup S3 (optional)
	if env.AWSBucketName != "" {
		s3Client, err := setupS3(ctx, env, redisClient)
		if err != nil {
			logger.Warning.Println("S3 unavailable, receipts disabled:", err)
		} else {
			deps.S3 = s3Client
		}
	}

	setupServer(ctx, env, deps)
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		DB:       env.RedisDB,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
		URI:      env.RabbitURI,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   env.DBSSLMode,
		Driver:    env.DBDriver,
		Cache:     env.DBCache,
		Rds:       rds.Client,
		CacheTime: env.DBCacheTime,
	})
}

func setupS3(ctx context.Context, env *config.Config, rds redis.IRedis) (*s3aws.S3Client, error) {
	return s3aws.NewS3Client(ctx, s3aws.S3Config{
		AWSRegion:          env.AWSRegion,
		AWSAccessKeyID:     env.AWSAccessKeyID,
		AWSSecretAccessKey: env.AWSSecretAccessKey,
		Endpoint:           env.AWSEndpoint,
	}, env.AWSBucketName, rds)
}

func setupServer(ctx context.Context, env *config.Config, deps *serverApp.Dependencies) {
	if err := validation.Setup(); err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}
	jwt.Setup(env.JWTSecret, env.SessionTTL)

	e := gin.Default()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.AppPort),
		Handler: e,
	}

	serverApp.Setup(e, ctx, deps)
	if env.AppEnv.RunsWorkers() {
		stopWorkers, err := serverApp.InitWorker(ctx, deps)
		if err != nil {
			logger.Warning.Println("Workers not started:", err)
		} else {
			defer stopWorkers()
		}
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}
