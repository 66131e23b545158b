package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Base URL short links are minted under, e.g. https://myth3x.pics
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	// Whether self-service signup is open. Default deployment is
	// admin-provisioned accounts only.
	AllowSignup bool `mapstructure:"ALLOW_SIGNUP"`

	// Upload limits
	MaxUploadBytes int64 `mapstructure:"MAX_UPLOAD_BYTES"`
	DailyUploadCap int   `mapstructure:"DAILY_UPLOAD_CAP"`

	// Redis
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// R2 / S3
	R2AccountID       string `mapstructure:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `mapstructure:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `mapstructure:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `mapstructure:"R2_BUCKET_NAME"`
	R2PublicURL       string `mapstructure:"R2_PUBLIC_URL"` // Custom domain
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MAX_UPLOAD_BYTES", 10<<20) // 10 MB
	viper.SetDefault("DAILY_UPLOAD_CAP", 500)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}
