package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	HTTPPort        string   `yaml:"http_port"`
	CatalogBaseURL  string   `yaml:"catalog_base_url"`
	PageSize        int      `yaml:"page_size"`
	RequestTimeout  Duration `yaml:"request_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	Storage StorageConfig `yaml:"storage"`
}

// Duration makes "10s"-style values work in YAML, which yaml.v3 does
// not handle for time.Duration itself.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

type StorageConfig struct {
	Backend        string `yaml:"backend"`
	SQLitePath     string `yaml:"sqlite_path"`
	MigrationsPath string `yaml:"migrations_path"`
	RedisAddr      string `yaml:"redis_addr"`
	MongoURI       string `yaml:"mongo_uri"`
	MongoDatabase  string `yaml:"mongo_database"`
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := &Config{
		HTTPPort:        "8080",
		CatalogBaseURL:  "https://dummyjson.com",
		PageSize:        10,
		RequestTimeout:  Duration(10 * time.Second),
		ShutdownTimeout: Duration(10 * time.Second),
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			SQLitePath:     "./storefront.db",
			MigrationsPath: "./internal/storage/migrations",
			RedisAddr:      "localhost:6379",
			MongoURI:       "mongodb://localhost:27017",
			MongoDatabase:  "storefront",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.CatalogBaseURL = getEnv("CATALOG_BASE_URL", cfg.CatalogBaseURL)
	cfg.PageSize = getEnvInt("PAGE_SIZE", cfg.PageSize)
	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.SQLitePath = getEnv("SQLITE_PATH", cfg.Storage.SQLitePath)
	cfg.Storage.MigrationsPath = getEnv("MIGRATIONS_PATH", cfg.Storage.MigrationsPath)
	cfg.Storage.RedisAddr = getEnv("REDIS_ADDR", cfg.Storage.RedisAddr)
	cfg.Storage.MongoURI = getEnv("MONGO_URI", cfg.Storage.MongoURI)
	cfg.Storage.MongoDatabase = getEnv("MONGO_DATABASE", cfg.Storage.MongoDatabase)

	switch cfg.Storage.Backend {
	case BackendSQLite, BackendRedis, BackendMongo:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
