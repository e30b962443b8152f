package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr          string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	LogLevel      string
	JWTSecret     string
	JWTTTL        time.Duration
	ListCacheTTL  time.Duration
	BotTokenTTL   time.Duration
	TelegramToken string
	APIBaseURL    string
}

func New() *Config {
	return &Config{
		Addr:          getEnv("ADDR", ":8080"),
		DBPath:        getEnv("DBPATH", "fintrack.db"),
		RedisAddr:     os.Getenv("REDISADDR"),
		RedisPassword: os.Getenv("REDISPASSWORD"),
		LogLevel:      os.Getenv("LOGLEVEL"),
		JWTSecret:     os.Getenv("JWTSECRET"),
		JWTTTL:        getDuration("JWTTTL", 24*time.Hour),
		ListCacheTTL:  getDuration("LISTCACHETTL", 30*time.Second),
		BotTokenTTL:   getDuration("BOTTOKENTTL", 5*time.Minute),
		TelegramToken: os.Getenv("TELEGRAMTOKEN"),
		APIBaseURL:    getEnv("APIBASEURL", "http://localhost:8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
