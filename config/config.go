package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string
	JWTKey string

	// RankingRefresh is the cron spec for the trending/top-rated cache
	// refresh; RankingTTLMinutes bounds how stale a served list may be when
	// the scheduler falls behind.
	RankingRefresh    string
	RankingTTLMinutes int

	// YouTubeAPIURL and YouTubeAPIKey configure the Data API endpoint the
	// duration-sync script queries for lesson video lengths.
	YouTubeAPIURL string
	YouTubeAPIKey string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "learnhub"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		RankingRefresh:    getEnv("RANKING_REFRESH", "@every 5m"),
		RankingTTLMinutes: getEnvInt("RANKING_TTL_MINUTES", 10),

		YouTubeAPIURL: getEnv("YOUTUBE_API_URL", "https://www.googleapis.com/youtube/v3/videos"),
		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
