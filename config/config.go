package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Google service account used for both Firebase (auth, FCM) and Drive.
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	DriveFolderID         string `mapstructure:"DRIVE_FOLDER_ID"`

	// Stripe tuition payments.
	StripeKey       string `mapstructure:"STRIPE_KEY"`
	TuitionAmount   int64  `mapstructure:"TUITION_AMOUNT"` // smallest currency unit
	TuitionCurrency string `mapstructure:"TUITION_CURRENCY"`

	// Admin dashboard login.
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"` // bcrypt

	// Default slot generation window.
	LessonStartHour   int `mapstructure:"LESSON_START_HOUR"`
	LessonEndHour     int `mapstructure:"LESSON_END_HOUR"`
	LessonDurationMin int `mapstructure:"LESSON_DURATION_MIN"`
	LessonBreakMin    int `mapstructure:"LESSON_BREAK_MIN"`

	ReminderLeadMinutes int `mapstructure:"REMINDER_LEAD_MINUTES"`
	ReminderConcurrency int `mapstructure:"REMINDER_WORKER_CONCURRENCY"`
	CatalogCacheTTLSec  int `mapstructure:"CATALOG_CACHE_TTL_SEC"`
}

var AppConfig Config

func LoadConfig() {
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
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "melodia")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("DRIVE_FOLDER_ID", "")
	viper.SetDefault("TUITION_AMOUNT", 120000)
	viper.SetDefault("TUITION_CURRENCY", "usd")
	viper.SetDefault("LESSON_START_HOUR", 6)
	viper.SetDefault("LESSON_END_HOUR", 19)
	viper.SetDefault("LESSON_DURATION_MIN", 40)
	viper.SetDefault("LESSON_BREAK_MIN", 20)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("REMINDER_WORKER_CONCURRENCY", 10)
	viper.SetDefault("CATALOG_CACHE_TTL_SEC", 300)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
