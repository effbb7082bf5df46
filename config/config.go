package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env               string
	Port              string
	DBURL             string
	RedisAddr         string
	RedisPassword     string
	AccessTokenSecret string
	CapsuleSecret     string
	RPID              string
	RPDisplayName     string
	RPOrigins         []string
	ChallengeTTLMin   int
	LockoutWindowMin  int
	CapsuleTTLSec     int
}

func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DBURL:             mustGetEnv("DB_URL"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		AccessTokenSecret: mustGetEnv("ACCESS_TOKEN_SECRET"),
		CapsuleSecret:     mustGetEnv("CAPSULE_SECRET"),
		RPID:              getEnv("RP_ID", "localhost"),
		RPDisplayName:     getEnv("RP_DISPLAY_NAME", "Step-Up Service"),
		RPOrigins:         getEnvAsList("RP_ORIGINS", "http://localhost:8080"),
		ChallengeTTLMin:   getEnvAsInt("CHALLENGE_TTL_MIN", 5),
		LockoutWindowMin:  getEnvAsInt("LOCKOUT_WINDOW_MIN", 15),
		CapsuleTTLSec:     getEnvAsInt("CAPSULE_TTL_SEC", 10),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsList(key string, defaultVal string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	parts := strings.Split(valStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
