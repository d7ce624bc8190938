package httpserver

import (
	"database/sql"
	"errors"

	"report-runtime/config"
	"report-runtime/internal/presenter"
	"report-runtime/internal/report"
	"report-runtime/pkg/discord"
	pkgKafka "report-runtime/pkg/kafka"
	"report-runtime/pkg/log"
	pkgMinio "report-runtime/pkg/minio"
	pkgRedis "report-runtime/pkg/redis"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string
	config      *config.Config

	// Storage Configuration (each optional, selected by config)
	postgresDB  *sql.DB
	redisClient pkgRedis.IRedis
	minioClient pkgMinio.MinIO

	// Messaging & Notification Configuration
	kafkaProducer pkgKafka.IProducer
	discord       discord.IDiscord

	// Report domain, built by mapHandlers
	reportUC  report.UseCase
	presenter presenter.Presenter
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string
	Config      *config.Config

	// Storage Configuration
	PostgresDB  *sql.DB
	RedisClient pkgRedis.IRedis
	MinIO       pkgMinio.MinIO

	// Messaging & Notification Configuration
	KafkaProducer pkgKafka.IProducer
	Discord       discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		config:      cfg.Config,

		postgresDB:  cfg.PostgresDB,
		redisClient: cfg.RedisClient,
		minioClient: cfg.MinIO,

		kafkaProducer: cfg.KafkaProducer,
		discord:       cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate checks required dependencies and that the selected state backend
// has a client.
func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.config == nil {
		return errors.New("config is required")
	}

	switch srv.config.State.Backend {
	case config.StateBackendRedis:
		if srv.redisClient == nil {
			return errors.New("redisClient is required for the redis state backend")
		}
	case config.StateBackendPostgres:
		if srv.postgresDB == nil {
			return errors.New("postgresDB is required for the postgres state backend")
		}
	}

	return nil
}
