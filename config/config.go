package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	JWT_TTL     time.Duration
	CORS_ORIGIN string

	LOG_LEVEL  string
	LOG_PRETTY bool

	// Hosted auth provider. When AUTH_ISSUER_URL is empty only locally issued tokens are accepted.
	AUTH_ISSUER_URL string
	AUTH_CLIENT_ID  string

	ADMIN_EMAIL    string
	ADMIN_PASSWORD string

	S3_ENDPOINT          string
	S3_REGION            string
	S3_BUCKET            string
	S3_ACCESS_KEY_ID     string
	S3_SECRET_ACCESS_KEY string
	S3_PUBLIC_BASE_URL   string
	S3_TIMEOUT           time.Duration

	UPLOAD_MAX_BYTES int64
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	JWT_TTL = getDuration("JWT_TTL", 12*time.Hour)
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")

	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_PRETTY = getBool("LOG_PRETTY", false)

	AUTH_ISSUER_URL = getEnv("AUTH_ISSUER_URL", "")
	AUTH_CLIENT_ID = getEnv("AUTH_CLIENT_ID", "")

	ADMIN_EMAIL = getEnv("ADMIN_EMAIL", "")
	ADMIN_PASSWORD = getEnv("ADMIN_PASSWORD", "")

	S3_ENDPOINT = mustEnv("S3_ENDPOINT")
	S3_REGION = getEnv("S3_REGION", "us-east-1")
	S3_BUCKET = mustEnv("S3_BUCKET")
	S3_ACCESS_KEY_ID = mustEnv("S3_ACCESS_KEY_ID")
	S3_SECRET_ACCESS_KEY = mustEnv("S3_SECRET_ACCESS_KEY")
	S3_PUBLIC_BASE_URL = getEnv("S3_PUBLIC_BASE_URL", "")
	S3_TIMEOUT = getDuration("S3_TIMEOUT", 30*time.Second)

	UPLOAD_MAX_BYTES = getInt64("UPLOAD_MAX_BYTES", 25<<20)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("Invalid boolean for %s: %q", key, v)
	}
	return b
}

func getInt64(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %q", key, v)
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %q", key, v)
	}
	return d
}
