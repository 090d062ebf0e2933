package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatasetSourceCSV      = "csv"
	DatasetSourcePostgres = "postgres"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Dataset     DatasetConfig
	Database    DatabaseConfig
	Recommender RecommenderConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port             string
	AllowOrigins     []string
	RequestTimeout   time.Duration
	RateLimitPerSec  float64
	StaticDir        string
	ShutdownTimeout  time.Duration
	RequestBodyLimit string
}

type DatasetConfig struct {
	Source string
	Path   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RecommenderConfig struct {
	DefaultK         int
	DefaultThreshold float64
	SearchLimit      int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	requestTimeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, errors.New("invalid request timeout")
	}

	rateLimit, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64)
	if err != nil || rateLimit < 0 {
		return nil, errors.New("invalid rate limit")
	}

	defaultK, err := strconv.Atoi(getEnv("RECOMMEND_DEFAULT_K", "5"))
	if err != nil || defaultK < 1 {
		return nil, errors.New("invalid default k")
	}

	defaultThreshold, err := strconv.ParseFloat(getEnv("RECOMMEND_DEFAULT_THRESHOLD", "0.6"), 64)
	if err != nil || defaultThreshold < -1 || defaultThreshold > 1 {
		return nil, errors.New("invalid default similarity threshold")
	}

	searchLimit, err := strconv.Atoi(getEnv("SEARCH_LIMIT", "10"))
	if err != nil || searchLimit < 1 {
		return nil, errors.New("invalid search limit")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "EcoEats"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:             getEnv("PORT", "5000"),
			AllowOrigins:     splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
			RequestTimeout:   requestTimeout,
			RateLimitPerSec:  rateLimit,
			StaticDir:        getEnv("STATIC_DIR", ""),
			ShutdownTimeout:  10 * time.Second,
			RequestBodyLimit: getEnv("REQUEST_BODY_LIMIT", "1M"),
		},
		Dataset: DatasetConfig{
			Source: strings.ToLower(getEnv("DATASET_SOURCE", DatasetSourceCSV)),
			Path:   getEnv("DATASET_PATH", "data/nutrition_ds.csv"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "ecoeats"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Recommender: RecommenderConfig{
			DefaultK:         defaultK,
			DefaultThreshold: defaultThreshold,
			SearchLimit:      searchLimit,
		},
	}

	if err := cfg.Dataset.Validate(cfg.Database); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetSource normalizes and assigns a dataset source given outside the
// environment, such as a command line flag.
func (d *DatasetConfig) SetSource(source string) {
	d.Source = strings.ToLower(strings.TrimSpace(source))
}

// Validate checks that the settings the selected source needs are present.
func (d DatasetConfig) Validate(db DatabaseConfig) error {
	switch d.Source {
	case DatasetSourceCSV:
		if d.Path == "" {
			return errors.New("missing dataset path")
		}
	case DatasetSourcePostgres:
		if db.Password == "" {
			return errors.New("missing database password")
		}
	default:
		return errors.New("unknown dataset source")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
