package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog providers
const (
	CatalogProviderMemory   = "memory"
	CatalogProviderPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Catalog   CatalogConfig
	Discovery DiscoveryConfig
	Session   SessionConfig
	Mapbox    MapboxConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	Env            string
	AllowedOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type CacheConfig struct {
	AvailabilityTTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	BatchSize         int64
	MaxRetries        int
}

// CatalogConfig - выбор реализации каталога и доступности
type CatalogConfig struct {
	Provider string
	MockSeed int64
}

type DiscoveryConfig struct {
	ResolverConcurrency int
	QueryTimeout        time.Duration
	GeolocationTimeout  time.Duration
	DefaultRadiusKm     float64
	MapResolution       int
}

type SessionConfig struct {
	TTL time.Duration
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	RequestTimeout int
	RatePerSecond  float64
	CacheSize      int
}

type MetricsConfig struct {
	Enabled bool
}

// Load читает конфигурацию из .env (если файл есть) и переменных окружения
func Load() (*Config, error) {
	return load(viper.New(), ".env")
}

func load(v *viper.Viper, envFile string) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("API_HOST"),
			Port:           v.GetInt("API_PORT"),
			Env:            v.GetString("API_ENV"),
			AllowedOrigins: v.GetString("API_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			PoolSize: v.GetInt("REDIS_POOL_SIZE"),
		},
		Cache: CacheConfig{
			AvailabilityTTL: time.Duration(v.GetInt("AVAILABILITY_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:         v.GetInt64("WORKER_BATCH_SIZE"),
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
		},
		Catalog: CatalogConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("CATALOG_PROVIDER"))),
			MockSeed: v.GetInt64("MOCK_CATALOG_SEED"),
		},
		Discovery: DiscoveryConfig{
			ResolverConcurrency: v.GetInt("DISCOVERY_RESOLVER_CONCURRENCY"),
			QueryTimeout:        time.Duration(v.GetInt("DISCOVERY_QUERY_TIMEOUT_MS")) * time.Millisecond,
			GeolocationTimeout:  time.Duration(v.GetInt("DISCOVERY_GEOLOCATION_TIMEOUT_MS")) * time.Millisecond,
			DefaultRadiusKm:     v.GetFloat64("DISCOVERY_DEFAULT_RADIUS_KM"),
			MapResolution:       v.GetInt("DISCOVERY_MAP_RESOLUTION"),
		},
		Session: SessionConfig{
			TTL: time.Duration(v.GetInt("SESSION_TTL")) * time.Second,
		},
		Mapbox: MapboxConfig{
			AccessToken:    v.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        v.GetString("MAPBOX_BASE_URL"),
			RequestTimeout: v.GetInt("MAPBOX_REQUEST_TIMEOUT"),
			RatePerSecond:  v.GetFloat64("MAPBOX_RATE_PER_SECOND"),
			CacheSize:      v.GetInt("MAPBOX_CACHE_SIZE"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "quadrago")
	v.SetDefault("DB_NAME", "quadrago")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("AVAILABILITY_CACHE_TTL", 60)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "availability-cache-invalidators")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	v.SetDefault("WORKER_BATCH_SIZE", 50)
	v.SetDefault("WORKER_MAX_RETRIES", 3)

	v.SetDefault("CATALOG_PROVIDER", CatalogProviderMemory)
	v.SetDefault("MOCK_CATALOG_SEED", 42)

	v.SetDefault("DISCOVERY_RESOLVER_CONCURRENCY", 8)
	v.SetDefault("DISCOVERY_QUERY_TIMEOUT_MS", 3000)
	v.SetDefault("DISCOVERY_GEOLOCATION_TIMEOUT_MS", 10000)
	v.SetDefault("DISCOVERY_DEFAULT_RADIUS_KM", 10)
	v.SetDefault("DISCOVERY_MAP_RESOLUTION", 8)

	v.SetDefault("SESSION_TTL", 1800)

	v.SetDefault("MAPBOX_BASE_URL", "https://api.mapbox.com")
	v.SetDefault("MAPBOX_REQUEST_TIMEOUT", 10)
	v.SetDefault("MAPBOX_RATE_PER_SECOND", 10)
	v.SetDefault("MAPBOX_CACHE_SIZE", 1024)

	v.SetDefault("METRICS_ENABLED", true)
}

func (c *Config) validate() error {
	switch c.Catalog.Provider {
	case CatalogProviderMemory, CatalogProviderPostgres:
	default:
		return fmt.Errorf("invalid CATALOG_PROVIDER %q: expected %s or %s",
			c.Catalog.Provider, CatalogProviderMemory, CatalogProviderPostgres)
	}
	if c.Discovery.MapResolution < 0 || c.Discovery.MapResolution > 15 {
		return fmt.Errorf("invalid DISCOVERY_MAP_RESOLUTION %d: expected 0..15", c.Discovery.MapResolution)
	}
	if c.Discovery.DefaultRadiusKm <= 0 {
		return fmt.Errorf("invalid DISCOVERY_DEFAULT_RADIUS_KM %v: must be positive", c.Discovery.DefaultRadiusKm)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
