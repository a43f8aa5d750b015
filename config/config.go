package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	JWTSecret         string
	TokenTTL          time.Duration
	RabbitMQURL       string
	NotifyExchange    string
	NotifyQueue       string
	DeadLetterQueue   string
	UploadDir         string
	LowStockThreshold int
	DeliveryCharge    float64
}

func LoadConfig() *Config {
	return &Config{
		DBUser:            getEnv("DB_USER", "root"),
		DBPassword:        getEnvFromFile("DB_PASSWORD_FILE", "DB_PASSWORD", "xxxxx"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBName:            getEnv("DB_NAME", "bakery"),
		JWTSecret:         getEnvFromFile("JWT_SECRET_FILE", "JWT_SECRET", "kP3nT8vB2xQ9wL5mRd7jYfHc4aZs6gUe0oVi1NqE8rM="),
		TokenTTL:          24 * time.Hour,
		RabbitMQURL:       getEnv("RABBITMQ_URL", "amqp://admin:rabbitmq@IP:5672/"),
		NotifyExchange:    getEnv("NOTIFY_EXCHANGE", "notifications_exchange"),
		NotifyQueue:       getEnv("NOTIFY_QUEUE", "notifications_queue"),
		DeadLetterQueue:   getEnv("DEAD_LETTER_QUEUE", "dead_letter_queue"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 10), // 库存预警阈值
		DeliveryCharge:    5.0,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFromFile(fileKey, envKey, defaultValue string) string {
	if filePath := os.Getenv(fileKey); filePath != "" {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(envKey, defaultValue)
}
