package config

import (
	"os"
	"strconv"

	"dulpton/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string // empty runs the in-memory store (dev mode)
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Per-IP limits for the API as a whole and the auth endpoints
	APIRateLimit   int
	APIRateWindow  int // seconds
	AuthRateLimit  int
	AuthRateWindow int // seconds

	// Per-user limit on reward collection and claim endpoints
	ActionRateLimit  int
	ActionRateWindow int // seconds
}

func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Warn("DATABASE_URL is not set, falling back to the in-memory store")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		APIRateLimit:     envInt("API_RATE_LIMIT", 60),
		APIRateWindow:    envInt("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:    envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:   envInt("AUTH_RATE_WINDOW_SECONDS", 60),
		ActionRateLimit:  envInt("ACTION_RATE_LIMIT", 30),
		ActionRateWindow: envInt("ACTION_RATE_WINDOW", 60),
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
