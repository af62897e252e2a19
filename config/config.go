package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	MongoDB           string `mapstructure:"MONGO_DB"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling.
	ProviderLockTTL        time.Duration `mapstructure:"PROVIDER_LOCK_TTL"`
	ExtendIncrementMinutes int           `mapstructure:"EXTEND_INCREMENT_MINUTES"`

	// Notification worker.
	WorkerEnabled           bool `mapstructure:"WORKER_ENABLED"`
	NotifyWorkerConcurrency int  `mapstructure:"NOTIFY_WORKER_CONCURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "servio")
	viper.SetDefault("PROVIDER_LOCK_TTL", "10s")
	viper.SetDefault("EXTEND_INCREMENT_MINUTES", 30)
	viper.SetDefault("WORKER_ENABLED", true)
	viper.SetDefault("NOTIFY_WORKER_CONCURRENCY", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if AppConfig.ExtendIncrementMinutes <= 0 {
		log.Fatalf("EXTEND_INCREMENT_MINUTES must be positive, got %d", AppConfig.ExtendIncrementMinutes)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ExtendIncrement is the fixed amount a booking grows by on each extension.
func ExtendIncrement() time.Duration {
	return time.Duration(AppConfig.ExtendIncrementMinutes) * time.Minute
}
