package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log-format" env:"LOG_FORMAT" env-default:"json" validate:"oneof=json text"`
	NoColor   bool   `yaml:"no-color" env:"TICTACTOE_NO_COLOR"`
	Feed      Feed   `yaml:"feed"`
}

// Feed configures the optional spectator event stream.
type Feed struct {
	Enabled bool   `yaml:"enabled" env:"FEED_ENABLED" env-default:"false"`
	Channel string `yaml:"channel" env:"FEED_CHANNEL" env-default:"tictactoe:events" validate:"required_if=Enabled true"`
	Redis   Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost" validate:"required"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379" validate:"required,numeric"`
}

// MustLoad - load configuration from path, or from the environment when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	case errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", statErr)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
