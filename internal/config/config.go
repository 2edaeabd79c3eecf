package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Parser ParserConfig
	Sweep  SweepConfig
	S3     S3Config
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ParserConfig holds LDI parser settings.
type ParserConfig struct {
	EnableCache   bool `mapstructure:"enable_cache"`
	EnableLogging bool `mapstructure:"enable_logging"`
	CacheTTLHours int  `mapstructure:"cache_ttl_hours"`
}

// SweepConfig holds background cache sweeper settings.
type SweepConfig struct {
	IntervalSecs int `mapstructure:"interval_secs"`
}

// Interval returns the sweep interval as a duration.
func (s *SweepConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSecs) * time.Second
}

// S3Config holds settings for optional archival of uploaded LDI PDFs.
type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the ENCOMENDAS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENCOMENDAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "encomendas")
	v.SetDefault("db.password", "encomendas_secret")
	v.SetDefault("db.name", "encomendas_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Parser defaults
	v.SetDefault("parser.enable_cache", true)
	v.SetDefault("parser.enable_logging", true)
	v.SetDefault("parser.cache_ttl_hours", 24)

	// Sweep defaults
	v.SetDefault("sweep.interval_secs", 3600)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "sa-east-1")
	v.SetDefault("s3.bucket", "encomendas-ldi-archive")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "ENCOMENDAS_SERVER_PORT",
		"server.read_timeout":    "ENCOMENDAS_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "ENCOMENDAS_SERVER_WRITE_TIMEOUT",
		"server.environment":     "ENCOMENDAS_SERVER_ENVIRONMENT",
		"db.host":                "ENCOMENDAS_DB_HOST",
		"db.port":                "ENCOMENDAS_DB_PORT",
		"db.user":                "ENCOMENDAS_DB_USER",
		"db.password":            "ENCOMENDAS_DB_PASSWORD",
		"db.name":                "ENCOMENDAS_DB_NAME",
		"db.sslmode":             "ENCOMENDAS_DB_SSLMODE",
		"db.max_open":            "ENCOMENDAS_DB_MAX_OPEN",
		"db.max_idle":            "ENCOMENDAS_DB_MAX_IDLE",
		"parser.enable_cache":    "ENCOMENDAS_PARSER_ENABLE_CACHE",
		"parser.enable_logging":  "ENCOMENDAS_PARSER_ENABLE_LOGGING",
		"parser.cache_ttl_hours": "ENCOMENDAS_PARSER_CACHE_TTL_HOURS",
		"sweep.interval_secs":    "ENCOMENDAS_SWEEP_INTERVAL_SECS",
		"s3.enabled":             "ENCOMENDAS_S3_ENABLED",
		"s3.region":              "ENCOMENDAS_S3_REGION",
		"s3.bucket":              "ENCOMENDAS_S3_BUCKET",
		"s3.endpoint":            "ENCOMENDAS_S3_ENDPOINT",
		"s3.access_key":          "ENCOMENDAS_S3_ACCESS_KEY",
		"s3.secret_key":          "ENCOMENDAS_S3_SECRET_KEY",
		"log.level":              "ENCOMENDAS_LOG_LEVEL",
		"log.format":             "ENCOMENDAS_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ENCOMENDAS_SERVER_PORT is not set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ENCOMENDAS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Parser = ParserConfig{
		EnableCache:   v.GetBool("parser.enable_cache"),
		EnableLogging: v.GetBool("parser.enable_logging"),
		CacheTTLHours: v.GetInt("parser.cache_ttl_hours"),
	}
	cfg.Sweep = SweepConfig{
		IntervalSecs: v.GetInt("sweep.interval_secs"),
	}
	cfg.S3 = S3Config{
		Enabled:   v.GetBool("s3.enabled"),
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
