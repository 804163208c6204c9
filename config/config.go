package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config собирает все настройки приложения из переменных окружения.
type Config struct {
	Port      string
	JWTSecret string

	// Окно челленджа
	ChallengeStart time.Time
	TotalDays      int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost string
	RedisPort string
}

func Load() (*Config, error) {
	// .env опционален, в контейнере задаём окружение напрямую
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "supersecretkey"),
		TotalDays:  21,
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "1234"),
		DBName:     getEnv("DB_NAME", "fitchallenge_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		RedisHost:  getEnv("REDIS_HOST", "localhost"),
		RedisPort:  getEnv("REDIS_PORT", "6379"),
	}

	if v := os.Getenv("CHALLENGE_TOTAL_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		cfg.TotalDays = days
	}

	start := getEnv("CHALLENGE_START_DATE", time.Now().UTC().Format("2006-01-02"))
	parsed, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, err
	}
	cfg.ChallengeStart = parsed

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
