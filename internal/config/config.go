package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	APIKey          string
	JWTSecret       string
	TokenTTL        time.Duration
	DataDir         string
	StoreDriver     string
	MySQLDSN        string
	SQLitePath      string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	CORSOrigins     []string
	SwaggerHost     string
	ShutdownTimeout time.Duration
}

// Store drivers accepted in STORE_DRIVER.
const (
	DriverFile   = "file"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Load builds Config from environment with sensible defaults. The API key and
// JWT secret defaults are mock values.
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "3000"),
		APIKey:          getEnv("API_KEY", "123456"),
		JWTSecret:       getEnv("JWT_SECRET", "jwtMock"),
		TokenTTL:        getEnvDuration("TOKEN_TTL", 24*time.Hour),
		DataDir:         getEnv("DATA_DIR", "db"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverFile)),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/warehouse?charset=utf8mb4&parseTime=True&loc=UTC"),
		SQLitePath:      getEnv("SQLITE_PATH", "warehouse.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
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

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
