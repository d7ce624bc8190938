package main

import (
	"context"
	"fmt"

	"report-runtime/config"
	configKafka "report-runtime/config/kafka"
	configMinio "report-runtime/config/minio"
	configPostgre "report-runtime/config/postgre"
	configRedis "report-runtime/config/redis"
	"report-runtime/internal/httpserver"
	"report-runtime/pkg/discord"
	"report-runtime/pkg/log"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	ctx := context.Background()

	srvCfg := httpserver.Config{
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Config:      cfg,
	}

	// 3. Saved report state backend
	switch cfg.State.Backend {
	case config.StateBackendPostgres:
		db, err := configPostgre.Connect(ctx, cfg.Postgres)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
			return
		}
		defer configPostgre.Disconnect()
		logger.Infof(ctx, "PostgreSQL connected to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		srvCfg.PostgresDB = db
	case config.StateBackendRedis:
		client, err := configRedis.Connect(cfg.Redis)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
			return
		}
		defer configRedis.Disconnect()
		logger.Infof(ctx, "Redis connected to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
		srvCfg.RedisClient = client
	default:
		logger.Infof(ctx, "Saved report state kept in memory (%d bytes max)", cfg.State.MaxBytes)
	}

	// 4. Export storage (optional)
	if cfg.MinIO.Enabled {
		client, err := configMinio.Connect(ctx, &cfg.MinIO)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
			return
		}
		defer configMinio.Disconnect()
		logger.Infof(ctx, "MinIO connected to %s (bucket %s)", cfg.MinIO.Endpoint, cfg.MinIO.Bucket)
		srvCfg.MinIO = client
	}

	// 5. Lifecycle events (optional)
	if cfg.Kafka.Enabled {
		producer, err := configKafka.ConnectProducer(cfg.Kafka)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect Kafka producer: %v", err)
			return
		}
		defer configKafka.DisconnectProducer()
		logger.Infof(ctx, "Kafka producer publishing to %s", cfg.Kafka.Topic)
		srvCfg.KafkaProducer = producer
	}

	// 6. Discord (optional)
	discordClient, err := discord.New(logger, discord.Webhook{
		ID:    cfg.Discord.WebhookID,
		Token: cfg.Discord.WebhookToken,
	})
	if err != nil {
		logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
	} else {
		srvCfg.Discord = discordClient
	}

	// 7. Control API and report runtime
	httpServer, err := httpserver.New(logger, srvCfg)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Errorf(ctx, "Failed to run report runtime: %v", err)
		return
	}
}
