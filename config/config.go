package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	// Directory holding the three city CSV files.
	DataDir string `env:"BIKESHARE_DATA_DIR" envDefault:"."`
	// Number of raw trip records shown per page.
	PageSize int `env:"BIKESHARE_PAGE_SIZE" envDefault:"5"`
	Debug    bool `env:"BIKESHARE_DEBUG" envDefault:"false"`
}

// ReadFromEnv reads config from environment variables, after loading a .env
// file if one is present in the working directory.
func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, wrap.Error(err, "invalid environment variables")
	}

	if config.PageSize < 1 {
		return Config{}, errors.New("BIKESHARE_PAGE_SIZE must be a positive number")
	}

	return config, nil
}
