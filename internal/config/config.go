package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	Port           string `mapstructure:"PORT"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	SessionSecret  string `mapstructure:"SESSION_SECRET"`
	SessionStore   string `mapstructure:"SESSION_STORE"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_URL", "sqlite://warble.db")
	viper.SetDefault("SESSION_SECRET", "warble-dev-secret-change-me")
	viper.SetDefault("SESSION_STORE", "cookie")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
