package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mwantia/codeconsole/log"
)

// Config holds the console settings read from the environment. Command line
// flags override these values.
type Config struct {
	Catalog    string `env:"CONSOLE_CATALOG"`
	LogLevel   string `env:"CONSOLE_LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"CONSOLE_LOG_FILE"`
	Timestamps bool   `env:"CONSOLE_TIMESTAMPS" envDefault:"true"`
	Watch      bool   `env:"CONSOLE_WATCH"`

	// Credentials for s3:// catalogs
	S3AccessKey string `env:"CONSOLE_S3_ACCESS_KEY"`
	S3SecretKey string `env:"CONSOLE_S3_SECRET_KEY"`

	// ACL token for consul:// catalogs
	ConsulToken string `env:"CONSOLE_CONSUL_TOKEN"`
}

// Load reads an optional .env file from the working directory and parses the
// environment into a Config. Variables already set in the environment win over
// the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	_, err := log.ParseLevel(c.LogLevel)
	return err
}

// Level returns the parsed log level; an invalid value falls back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.Info
	}
	return level
}
