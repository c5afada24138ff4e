package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Skills   SkillsConfig
	CORS     CORSConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName     string
	Version     string
	Environment string
	HTTPPort    string
	Debug       bool
}

type DatabaseConfig struct {
	Driver      string
	AutoMigrate bool

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
	Store      string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	// HashPasswords switches credential storage from plaintext to bcrypt.
	HashPasswords bool
}

type SkillsConfig struct {
	UniqueNames bool
}

type CORSConfig struct {
	AllowOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidValue       = errors.New("invalid configuration value")
)

// Load builds the process configuration from the environment. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_DEBUG", true)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)

	v.SetDefault("SECRET_KEY", "your-secret-key-change-in-production")
	v.SetDefault("SESSION_COOKIE_NAME", "session")
	v.SetDefault("SESSION_MAX_AGE", 86400)
	v.SetDefault("SESSION_SECURE", false)
	v.SetDefault("SESSION_STORE", SessionStoreMemory)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_HASH_PASSWORDS", false)
	v.SetDefault("SKILLS_UNIQUE_NAMES", false)

	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	return v
}

// FromViper is split out of Load so tests can feed a prepared instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Version:     req("APP_VERSION"),
		Environment: opt("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		Debug:       v.GetBool("APP_DEBUG"),
	}

	driver := strings.ToLower(opt("DB_DRIVER"))
	cfg.Database = DatabaseConfig{
		Driver:                driver,
		AutoMigrate:           v.GetBool("DB_AUTO_MIGRATE"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}
	switch driver {
	case DriverPostgres:
		cfg.Database.DBHost = req("DB_HOST")
		cfg.Database.DBPort = req("DB_PORT")
		cfg.Database.DBName = req("DB_NAME")
		cfg.Database.DBUser = req("DB_USER")
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("%w: DB_DRIVER=%q", errInvalidValue, driver)
	}

	store := strings.ToLower(opt("SESSION_STORE"))
	if store != SessionStoreMemory && store != SessionStoreRedis {
		return Config{}, fmt.Errorf("%w: SESSION_STORE=%q", errInvalidValue, store)
	}
	maxAge := v.GetInt("SESSION_MAX_AGE")
	if maxAge <= 0 {
		return Config{}, fmt.Errorf("%w: SESSION_MAX_AGE=%d", errInvalidValue, maxAge)
	}
	cfg.Session = SessionConfig{
		Secret:     req("SECRET_KEY"),
		CookieName: opt("SESSION_COOKIE_NAME"),
		MaxAge:     time.Duration(maxAge) * time.Second,
		Secure:     v.GetBool("SESSION_SECURE"),
		Store:      store,
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{HashPasswords: v.GetBool("AUTH_HASH_PASSWORDS")}
	cfg.Skills = SkillsConfig{UniqueNames: v.GetBool("SKILLS_UNIQUE_NAMES")}
	origins := splitList(opt("CORS_ALLOW_ORIGINS"))
	if len(origins) == 0 {
		return Config{}, fmt.Errorf("%w: CORS_ALLOW_ORIGINS is empty", errInvalidValue)
	}
	cfg.CORS = CORSConfig{AllowOrigins: origins}
	cfg.Log = LogConfig{Level: opt("LOG_LEVEL"), Format: opt("LOG_FORMAT")}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func (c AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
