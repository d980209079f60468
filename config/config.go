package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every external credential and knob the process needs.
// Adapters receive their slice of it through constructors and never read
// the environment themselves, so tests can substitute fakes freely.
type Config struct {
	Port   string
	DBURL  string
	AppURL string

	JWTSecret string

	CORSOrigin string

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string

	BunnyAPIBaseURL string
	BunnyLibraryID  string
	BunnyAccessKey  string

	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
	StoragePublicURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	return &Config{
		Port:   getEnv("PORT", "8080"),
		DBURL:  mustEnv("DB_URL"),
		AppURL: getEnv("APP_URL", "http://localhost:5173"),

		JWTSecret: mustEnv("JWT_SECRET"),

		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),

		StripeSecretKey:     mustEnv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		Currency:            getEnv("CURRENCY", "eur"),

		BunnyAPIBaseURL: getEnv("BUNNY_API_BASE_URL", "https://video.bunnycdn.com"),
		BunnyLibraryID:  mustEnv("BUNNY_LIBRARY_ID"),
		BunnyAccessKey:  mustEnv("BUNNY_ACCESS_KEY"),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:    getEnv("STORAGE_REGION", "us-east-1"),
		StorageBucket:    mustEnv("STORAGE_BUCKET"),
		StorageAccessKey: mustEnv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: mustEnv("STORAGE_SECRET_KEY"),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
	}
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
