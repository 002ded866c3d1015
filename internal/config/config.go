package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// StorageFile keeps collections in flat JSON files.
	StorageFile = "file"
	// StorageMySQL keeps collections in MySQL through GORM.
	StorageMySQL = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	SecretKey       string
	AdminRole       string
	TokenTTL        time.Duration
	StorageDriver   string
	UsersFile       string
	ProductsFile    string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	CacheTTL        time.Duration
	BcryptCost      int
	LogLevel        string
	LogJSON         bool
	ShutdownTimeout time.Duration
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults.
// Values from a .env file in the working directory are loaded first
// without overriding variables that are already set. A .env file that
// exists but cannot be parsed is an error.
func Load() (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(), nil
}

// LoadDotEnv loads the given env file. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// FromEnv builds Config from the current process environment.
func FromEnv() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "5000"),
		SecretKey:       getEnv("SECRET_KEY", "change-me"),
		AdminRole:       getEnv("ADMIN_ROLE", "admin"),
		TokenTTL:        getEnvDuration("TOKEN_TTL", 24*time.Hour),
		StorageDriver:   getEnv("STORAGE_DRIVER", StorageFile),
		UsersFile:       getEnv("USERS_FILE", "data/user.json"),
		ProductsFile:    getEnv("PRODUCTS_FILE", "data/product.json"),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/shop?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		CacheTTL:        getEnvDuration("CACHE_TTL", 5*time.Minute),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogJSON:         getEnvBool("LOG_JSON", true),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("90s", "24h").
func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
