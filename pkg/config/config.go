package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Mirror drivers accepted by MIRROR_DRIVER.
const (
	MirrorDriverNone     = "none"
	MirrorDriverRedis    = "redis"
	MirrorDriverPostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	Locale    string

	Database DatabaseConfig
	Mirror   MirrorConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Sync     SyncConfig
	Auth     AuthConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
}

// DatabaseConfig points at the embedded SQLite file.
type DatabaseConfig struct {
	Path string
}

// MirrorConfig selects the remote store the local rows are copied to.
type MirrorConfig struct {
	Driver string
	Prefix string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PostgresConfig is only used when MIRROR_DRIVER=postgres.
type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// SyncConfig tunes the background mirror worker.
type SyncConfig struct {
	Workers    int
	Retries    int
	RetryDelay time.Duration
}

// AuthConfig holds the single studio administrator credential.
type AuthConfig struct {
	Enabled      bool
	Username     string
	PasswordHash string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.Locale = v.GetString("LOCALE")

	cfg.Database = DatabaseConfig{Path: v.GetString("DB_PATH")}

	cfg.Mirror = MirrorConfig{
		Driver: strings.ToLower(strings.TrimSpace(v.GetString("MIRROR_DRIVER"))),
		Prefix: v.GetString("MIRROR_PREFIX"),
	}
	switch cfg.Mirror.Driver {
	case MirrorDriverRedis, MirrorDriverPostgres:
	default:
		cfg.Mirror.Driver = MirrorDriverNone
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Postgres = PostgresConfig{
		Host:         v.GetString("MIRROR_PG_HOST"),
		Port:         v.GetInt("MIRROR_PG_PORT"),
		User:         v.GetString("MIRROR_PG_USER"),
		Password:     v.GetString("MIRROR_PG_PASSWORD"),
		Name:         v.GetString("MIRROR_PG_NAME"),
		SSLMode:      v.GetString("MIRROR_PG_SSL_MODE"),
		MaxOpenConns: v.GetInt("MIRROR_PG_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("MIRROR_PG_MAX_IDLE_CONNS"),
	}

	cfg.Sync = SyncConfig{
		Workers:    v.GetInt("SYNC_WORKERS"),
		Retries:    v.GetInt("SYNC_RETRIES"),
		RetryDelay: parseDuration(v.GetString("SYNC_RETRY_DELAY"), 2*time.Second),
	}

	cfg.Auth = AuthConfig{
		Enabled:      v.GetBool("ENABLE_AUTH"),
		Username:     v.GetString("ADMIN_USERNAME"),
		PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("LOCALE", "en-US")

	v.SetDefault("DB_PATH", "./YogaAdmin.db")

	v.SetDefault("MIRROR_DRIVER", MirrorDriverNone)
	v.SetDefault("MIRROR_PREFIX", "yogaadmin")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("MIRROR_PG_HOST", "localhost")
	v.SetDefault("MIRROR_PG_PORT", 5432)
	v.SetDefault("MIRROR_PG_USER", "postgres")
	v.SetDefault("MIRROR_PG_PASSWORD", "postgres")
	v.SetDefault("MIRROR_PG_NAME", "yoga_mirror")
	v.SetDefault("MIRROR_PG_SSL_MODE", "disable")
	v.SetDefault("MIRROR_PG_MAX_OPEN_CONNS", 4)
	v.SetDefault("MIRROR_PG_MAX_IDLE_CONNS", 2)

	v.SetDefault("SYNC_WORKERS", 1)
	v.SetDefault("SYNC_RETRIES", 3)
	v.SetDefault("SYNC_RETRY_DELAY", "2s")

	v.SetDefault("ENABLE_AUTH", false)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
