package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	RedisProfilesHost string `env:"REDIS_PROFILES_HOST" envDefault:"localhost"`
	RedisProfilesPort uint16 `env:"REDIS_PROFILES_PORT" envDefault:"6379"   validate:"min=1000,max=65535"`

	PostgresHost     string `env:"POSTGRES_HOST"     envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT"     envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER"     envDefault:"kaichid_user"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"kaichid_password"`
	PostgresDb       string `env:"POSTGRES_DB"       envDefault:"kaichid_db"`

	ProfileCacheTTLSeconds uint `env:"PROFILE_CACHE_TTL_SECONDS" envDefault:"300"  validate:"min=1"`

	// Budget for handling one inbound WS event, profile lookup included.
	DispatchTimeoutMs uint `env:"DISPATCH_TIMEOUT_MS" envDefault:"2000" validate:"min=100"`

	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8085" validate:"min=1000,max=65535"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
