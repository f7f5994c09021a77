package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	Environment string

	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBConnLimit int

	RedisAddr string
	RedisDB   int
	RedisPass string

	// RequestTimeout bounds each request context. A saturated connection
	// pool then surfaces as a 503 instead of waiting indefinitely for a
	// free connection.
	RequestTimeout time.Duration

	// TokenSecret keys the HMAC stamp on session tokens.
	TokenSecret string

	// DebugCookie allows the auth-token-debug fallback cookie. Never valid
	// in production.
	DebugCookie bool

	SwaggerHost string
}

// Load builds Config from environment. Database credentials and the token
// secret have no fallback: startup fails if they are unset.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    getEnv("ENV", "development"),
		DBHost:         getEnv("DB_HOST", "localhost:3306"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBConnLimit:    getEnvInt("DB_CONN_LIMIT", 10),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT", 10)) * time.Second,
		TokenSecret:    os.Getenv("AUTH_TOKEN_SECRET"),
		DebugCookie:    getEnvBool("DEBUG_COOKIE", false),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
	}

	for name, value := range map[string]string{
		"DB_USER":           cfg.DBUser,
		"DB_PASSWORD":       cfg.DBPassword,
		"DB_NAME":           cfg.DBName,
		"AUTH_TOKEN_SECRET": cfg.TokenSecret,
	} {
		if value == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", name)
		}
	}

	if cfg.IsProduction() && cfg.DebugCookie {
		return nil, fmt.Errorf("DEBUG_COOKIE must not be enabled when ENV=production")
	}

	return cfg, nil
}

// MySQLDSN assembles the gorm DSN from the database settings.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBName)
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
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
