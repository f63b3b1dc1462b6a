package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	OpenAIAPIKey  string
	StorageDir    string
	BaseURL       string
	LogDir        string
}

func Load() *Config {
	// A missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "hospital"),
		DBPassword:    getEnv("DB_PASSWORD", "hospital"),
		DBName:        getEnv("DB_NAME", "hospital_admin"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		StorageDir:    getEnv("STORAGE_DIR", "uploads"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		LogDir:        getEnv("LOG_DIR", "logs"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
