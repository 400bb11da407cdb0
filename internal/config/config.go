package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ErrMissingMetaAccessToken = errors.New("config: META_ACCESS_TOKEN is not set")

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Meta        Meta        `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	RecordCache RecordCache `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
}

type Server struct {
	Host               string   `mapstructure:"host"`
	Port               string   `mapstructure:"port"`
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL     string        `mapstructure:"meta_base_url"`
	URL         string        `mapstructure:"-"`
	Version     string        `mapstructure:"meta_version"`
	AccessToken string        `mapstructure:"meta_access_token"`
	AppID       string        `mapstructure:"meta_app_id"`
	AppSecret   string        `mapstructure:"meta_app_secret"`
	Timeout     time.Duration `mapstructure:"meta_timeout"`
	PageLimit   int           `mapstructure:"meta_page_limit"`
}

// CanExchangeToken indica se há credenciais do app para trocar o token por um de longa duração
func (m Meta) CanExchangeToken() bool {
	return m.AppID != "" && m.AppSecret != ""
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Auth habilita a autenticação por JWT quando Secret não está vazio
type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func (a Auth) Enabled() bool {
	return a.Secret != ""
}

const (
	RecordCacheBackendPostgres = "postgres"
	RecordCacheBackendRedis    = "redis"
)

var ErrInvalidRecordCacheBackend = errors.New("config: RECORD_CACHE_BACKEND must be postgres or redis")

type RecordCache struct {
	Enabled         bool   `mapstructure:"record_cache_enabled"`
	Backend         string `mapstructure:"record_cache_backend"`
	RetentionCron   string `mapstructure:"record_cache_retention_cron"`
	RetentionDays   int    `mapstructure:"record_cache_retention_days"`
	AttributionDays int    `mapstructure:"record_cache_attribution_days"` // dias recentes que a Meta ainda revisa
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/health_agent?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_TIMEOUT", "30s")
	viper.SetDefault("META_PAGE_LIMIT", 500)

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("RECORD_CACHE_ENABLED", false)
	viper.SetDefault("RECORD_CACHE_BACKEND", RecordCacheBackendPostgres)
	viper.SetDefault("RECORD_CACHE_RETENTION_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("RECORD_CACHE_RETENTION_DAYS", 30)
	viper.SetDefault("RECORD_CACHE_ATTRIBUTION_DAYS", 7)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("config: .env not read by viper, using environment: ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize deriva os campos calculados e valida a configuração
func (c *Config) finalize() error {
	if c.Meta.AccessToken == "" {
		return ErrMissingMetaAccessToken
	}

	c.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimSuffix(c.Meta.BaseURL, "/"), c.Meta.Version)

	if c.Meta.PageLimit <= 0 {
		c.Meta.PageLimit = 500
	}

	c.RecordCache.Backend = strings.ToLower(strings.TrimSpace(c.RecordCache.Backend))
	switch c.RecordCache.Backend {
	case "":
		c.RecordCache.Backend = RecordCacheBackendPostgres
	case RecordCacheBackendPostgres, RecordCacheBackendRedis:
	default:
		return ErrInvalidRecordCacheBackend
	}

	if c.RecordCache.AttributionDays < 0 {
		c.RecordCache.AttributionDays = 0
	}

	for i, origin := range c.Server.CorsAllowedOrigins {
		c.Server.CorsAllowedOrigins[i] = strings.TrimSpace(origin)
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	return nil
}

// loadEnvFile carrega o arquivo .env do diretório atual ou de um dos pais
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: could not get working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("config: .env loaded from ", location)
			return
		}
	}

	logrus.Debug("config: no .env file found, relying on environment")
}
