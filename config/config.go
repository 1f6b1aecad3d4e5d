package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database Configuration
	MongoURI string
	DBName   string

	// Security Configuration
	JWTSecret string

	// Email Configuration
	EmailUser string
	EmailPass string

	// External APIs
	YouTubeAPIKey string

	// Server Configuration
	Port string
}

// LoadConfig loads the configuration from a .env file (if present) and
// environment variables.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	return &Config{
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://127.0.0.1:27017"),
		DBName:        getEnvOrDefault("DB_NAME", "wanderlist"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", ""),
		EmailUser:     getEnvOrDefault("EMAIL_USER", ""),
		EmailPass:     getEnvOrDefault("EMAIL_PASS", ""),
		YouTubeAPIKey: getEnvOrDefault("YOUTUBE_API_KEY", ""),
		Port:          getEnvOrDefault("PORT", "5000"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
