package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string  `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe.log"`
	Storage  string  `yaml:"storage" env:"STORAGE" env-default:"memory"`
	BotMode  bool    `yaml:"bot-mode" env:"BOT_MODE" env-default:"false"`
	Redis    Redis   `yaml:"redis"`
	Players  Players `yaml:"players"`
}

type Redis struct {
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	FinishedTTL time.Duration `yaml:"finished-ttl" env:"REDIS_FINISHED_TTL" env-default:"10m"`
}

// Players - names pre-filled into the setup form.
type Players struct {
	XName   string `yaml:"x-name" env:"PLAYER_X_NAME" env-default:""`
	OName   string `yaml:"o-name" env:"PLAYER_O_NAME" env-default:""`
	BotName string `yaml:"bot-name" env:"BOT_NAME" env-default:"Computer"`
}

// MustLoad - load all configurations from the yml file, or from the environment when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
