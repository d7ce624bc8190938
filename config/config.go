package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Report page being driven
	Report ReportConfig

	// Async job backend cadence
	Job JobConfig

	// Saved report state
	State StateConfig

	// PostgreSQL - saved report state (state.backend=postgres)
	Postgres PostgresConfig

	// Redis - saved report state (state.backend=redis)
	Redis RedisConfig

	// MinIO - exported widget data and debug archives
	MinIO MinIOConfig

	// Kafka - widget/report lifecycle events
	Kafka KafkaConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the configuration for the control API
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
	// ControlKey guards the mutating routes; empty leaves them open.
	ControlKey string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// ReportConfig describes the report page and how it is opened.
type ReportConfig struct {
	// URL is the report page URL; history entries are URL#token.
	URL        string
	WidgetsURL string
	FormURL    string
	DebugURL   string
	// Origin prefixes job export URLs.
	Origin    string
	AuthToken string
	CSRFToken string

	// Embedded mode renders a single widget selected by slug.
	Embedded      bool
	EmbedSlug     string
	EmbedCriteria string

	// Scheduled reload, in minutes and seconds.
	ReloadMinutes int
	OffsetSeconds int

	Static        bool
	Live          bool
	Print         bool
	AutoRun       bool
	PrintCriteria string
	RestoreToken  string
	DebugConfirm  bool
}

// JobConfig is the polling cadence for the async job backend, in milliseconds.
type JobConfig struct {
	PollIntervalMS       int
	QuietDelayMS         int
	ExportPollIntervalMS int
	Timeout              int // in seconds
}

// StateConfig selects the saved report store.
type StateConfig struct {
	Backend   string
	KeyPrefix string
	MaxBytes  int
}

// KafkaConfig is the configuration for Kafka
type KafkaConfig struct {
	Enabled  bool
	Brokers  []string
	Topic    string
	ClientID string
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MinIOConfig is the configuration for MinIO
type MinIOConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// PostgresConfig is the configuration for Postgres
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Schema   string
}

type DiscordConfig struct {
	WebhookID    string
	WebhookToken string
}

// State backends.
const (
	StateBackendMemory   = "memory"
	StateBackendRedis    = "redis"
	StateBackendPostgres = "postgres"
)

// Load loads configuration using Viper
func Load() (*Config, error) {
	viper.SetConfigName("report-runtime")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/report-runtime/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Host = viper.GetString("http_server.host")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.ControlKey = viper.GetString("http_server.control_key")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Report
	cfg.Report.URL = viper.GetString("report.url")
	cfg.Report.WidgetsURL = viper.GetString("report.widgets_url")
	cfg.Report.FormURL = viper.GetString("report.form_url")
	cfg.Report.DebugURL = viper.GetString("report.debug_url")
	cfg.Report.Origin = viper.GetString("report.origin")
	cfg.Report.AuthToken = viper.GetString("report.auth_token")
	cfg.Report.CSRFToken = viper.GetString("report.csrf_token")
	cfg.Report.Embedded = viper.GetBool("report.embedded")
	cfg.Report.EmbedSlug = viper.GetString("report.embed_slug")
	cfg.Report.EmbedCriteria = viper.GetString("report.embed_criteria")
	cfg.Report.ReloadMinutes = viper.GetInt("report.reload_minutes")
	cfg.Report.OffsetSeconds = viper.GetInt("report.offset_seconds")
	cfg.Report.Static = viper.GetBool("report.static")
	cfg.Report.Live = viper.GetBool("report.live")
	cfg.Report.Print = viper.GetBool("report.print")
	cfg.Report.AutoRun = viper.GetBool("report.auto_run")
	cfg.Report.PrintCriteria = viper.GetString("report.print_criteria")
	cfg.Report.RestoreToken = viper.GetString("report.restore_token")
	cfg.Report.DebugConfirm = viper.GetBool("report.debug_confirm")

	// Job
	cfg.Job.PollIntervalMS = viper.GetInt("job.poll_interval_ms")
	cfg.Job.QuietDelayMS = viper.GetInt("job.quiet_delay_ms")
	cfg.Job.ExportPollIntervalMS = viper.GetInt("job.export_poll_interval_ms")
	cfg.Job.Timeout = viper.GetInt("job.timeout")

	// State
	cfg.State.Backend = viper.GetString("state.backend")
	cfg.State.KeyPrefix = viper.GetString("state.key_prefix")
	cfg.State.MaxBytes = viper.GetInt("state.max_bytes")

	// PostgreSQL
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")
	cfg.Postgres.Schema = viper.GetString("postgres.schema")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// MinIO
	cfg.MinIO.Enabled = viper.GetBool("minio.enabled")
	cfg.MinIO.Endpoint = viper.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("minio.access_key")
	cfg.MinIO.SecretKey = viper.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = viper.GetBool("minio.use_ssl")
	cfg.MinIO.Region = viper.GetString("minio.region")
	cfg.MinIO.Bucket = viper.GetString("minio.bucket")

	// Kafka
	cfg.Kafka.Enabled = viper.GetBool("kafka.enabled")
	cfg.Kafka.Brokers = viper.GetStringSlice("kafka.brokers")
	cfg.Kafka.Topic = viper.GetString("kafka.topic")
	cfg.Kafka.ClientID = viper.GetString("kafka.client_id")

	// Discord
	cfg.Discord.WebhookID = viper.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = viper.GetString("discord.webhook_token")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// HTTP Server
	viper.SetDefault("http_server.host", "")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")

	// Logger
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// 1. Report
	viper.SetDefault("report.reload_minutes", 0)
	viper.SetDefault("report.offset_seconds", 0)
	viper.SetDefault("report.debug_confirm", true)

	// 2. Job cadence
	viper.SetDefault("job.poll_interval_ms", 1000)
	viper.SetDefault("job.quiet_delay_ms", 500)
	viper.SetDefault("job.export_poll_interval_ms", 200)
	viper.SetDefault("job.timeout", 30)

	// 3. State
	viper.SetDefault("state.backend", StateBackendMemory)
	viper.SetDefault("state.key_prefix", "report-state:")
	viper.SetDefault("state.max_bytes", 5*1024*1024)

	// 4. PostgreSQL
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.dbname", "postgres")
	viper.SetDefault("postgres.sslmode", "prefer")
	viper.SetDefault("postgres.schema", "report_runtime")

	// 5. Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// 6. MinIO
	viper.SetDefault("minio.enabled", false)
	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.access_key", "minioadmin")
	viper.SetDefault("minio.secret_key", "minioadmin")
	viper.SetDefault("minio.use_ssl", false)
	viper.SetDefault("minio.region", "us-east-1")
	viper.SetDefault("minio.bucket", "report-exports")

	// 7. Kafka
	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topic", "report.events")
	viper.SetDefault("kafka.client_id", "report-runtime")
}

func validate(cfg *Config) error {
	if cfg.Report.WidgetsURL == "" {
		return fmt.Errorf("report.widgets_url is required")
	}
	if cfg.Report.Embedded && cfg.Report.EmbedSlug == "" {
		return fmt.Errorf("report.embed_slug is required when report.embedded is set")
	}
	if cfg.Report.ReloadMinutes < 0 {
		return fmt.Errorf("report.reload_minutes must not be negative")
	}
	if cfg.Report.OffsetSeconds < 0 {
		return fmt.Errorf("report.offset_seconds must not be negative")
	}
	if cfg.Job.PollIntervalMS <= 0 || cfg.Job.QuietDelayMS <= 0 || cfg.Job.ExportPollIntervalMS <= 0 {
		return fmt.Errorf("job poll intervals must be greater than 0")
	}

	switch cfg.State.Backend {
	case StateBackendMemory, StateBackendRedis, StateBackendPostgres:
	default:
		return fmt.Errorf("state.backend must be one of memory, redis, postgres")
	}

	if cfg.Kafka.Enabled {
		if len(cfg.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers must have at least one broker")
		}
		if cfg.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic is required")
		}
	}

	return nil
}
