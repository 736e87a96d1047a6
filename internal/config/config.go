package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPass     string
	DBName     string
	ServerPort string
	RedisURL   string
	Env        string
	RedisTTL   time.Duration

	// Comma separated list of allowed browser origins.
	FrontendURL string

	MinioURL       string
	MinioPublicURL string
	MinioUser      string
	MinioPassword  string
	MinioBucket    string
	MaxFileSize    int64
	// Cron expression for the tmp upload janitor.
	UploadCleanupCron string

	AuthJWTSecret string

	LiveKitAPIKey    string
	LiveKitAPISecret string
	LiveKitURL       string
	LiveKitTokenTTL  time.Duration

	AMQPURL      string
	AMQPExchange string

	OTelEndpoint string
	ServiceName  string

	RateLimitRPS   float64
	RateLimitBurst int

	MessagesBatch int
}

func LoadConfig() Config {
	return Config{
		DBHost:     getEnv("DB_HOST", "postgres"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPass:     getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "discord"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		RedisURL:   getEnv("REDIS_URL", "redis:6379"),
		Env:        getEnv("ENV", "dev"),
		RedisTTL:   getEnvAsDuration("REDIS_TTL", 5*time.Minute),

		FrontendURL: getEnv("FRONTEND_URL", ""),

		MinioURL:          getEnv("MINIO_URL", "localhost:9000"),
		MinioPublicURL:    getEnv("MINIO_PUBLIC_URL", ""),
		MinioUser:         getEnv("MINIO_USER", "minioadmin"),
		MinioPassword:     getEnv("MINIO_PASSWORD", "minioadmin"),
		MinioBucket:       getEnv("MINIO_BUCKET", "discord-files"),
		MaxFileSize:       getEnvAsInt64("MAX_FILE_SIZE", 4*1024*1024), // 4MB default
		UploadCleanupCron: getEnv("UPLOAD_CLEANUP_CRON", "*/15 * * * *"),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),

		LiveKitAPIKey:    getEnv("LIVEKIT_API_KEY", ""),
		LiveKitAPISecret: getEnv("LIVEKIT_API_SECRET", ""),
		LiveKitURL:       getEnv("LIVEKIT_URL", ""),
		LiveKitTokenTTL:  getEnvAsDuration("LIVEKIT_TOKEN_TTL", 6*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "discord.audit"),

		OTelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("SERVICE_NAME", "discord-backend"),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),

		MessagesBatch: getEnvAsInt("MESSAGES_BATCH", 10),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}

// LiveKitConfigured reports whether every setting needed to mint media tokens is present.
func (c *Config) LiveKitConfigured() bool {
	return c.LiveKitAPIKey != "" && c.LiveKitAPISecret != "" && c.LiveKitURL != ""
}
