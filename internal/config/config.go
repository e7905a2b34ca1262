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

	// Redis (offline scan queue + rate limiting)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Voucher policy
	VoucherTTLDays int `mapstructure:"VOUCHER_TTL_DAYS"`

	// Expiry sweep cron spec, e.g. "@hourly"
	ExpirySweepSchedule string `mapstructure:"EXPIRY_SWEEP_SCHEDULE"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("VOUCHER_TTL_DAYS", 30)
	viper.SetDefault("EXPIRY_SWEEP_SCHEDULE", "@hourly")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}
