package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Cache   CacheConfig
	TexMath TexMathConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type CacheConfig struct {
	RedisURL string // empty disables the shared cache
	TTL      time.Duration
}

type TexMathConfig struct {
	MaxExpand int
	Trust     bool
	Strict    string
	Wrap      string
}

// IsProduction reports whether the service runs with GO_ENV=production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/texmathd.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      time.Duration(getEnvAsInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
		TexMath: TexMathConfig{
			MaxExpand: getEnvAsInt("TEXMATH_MAX_EXPAND", 1000),
			Trust:     getEnvAsBool("TEXMATH_TRUST", false),
			Strict:    getEnv("TEXMATH_STRICT", "ignore"),
			Wrap:      getEnv("TEXMATH_WRAP", "tex"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
