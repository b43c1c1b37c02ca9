package config

import (
	"os"
	"time"
)

// Config holds every externally supplied setting. Values come from the
// environment (a .env file is loaded in main before this runs).
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	CashfreeAppID     string
	CashfreeSecretKey string
	CashfreeProd      bool
	GatewayTimeout    time.Duration

	JWTSecret     string
	WebhookSecret string

	RedisAddr string
	UploadDir string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment, applying defaults that
// match a local development setup.
func Load() Config {
	port := getenv("PORT", ":8080")
	if port[0] != ':' {
		port = ":" + port
	}

	return Config{
		Port:     port,
		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "ecommerce"),

		CashfreeAppID:     os.Getenv("CASHFREE_APP_ID"),
		CashfreeSecretKey: os.Getenv("CASHFREE_SECRET_KEY"),
		CashfreeProd:      os.Getenv("CASHFREE_PROD") == "true",
		GatewayTimeout:    15 * time.Second,

		JWTSecret:     getenv("JWT_SECRET", "dev_secret_key"),
		WebhookSecret: getenv("WEBHOOK_SECRET", "dev_webhook_secret"),

		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),
		UploadDir: getenv("UPLOAD_DIR", "static/productpic"),
	}
}
