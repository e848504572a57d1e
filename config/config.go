package config

import (
	"fmt"
	"time"

	"github.com/andyle182810/lightcloud/lightapi"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Application
	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info"`
	LogConsole bool   `env:"LOG_CONSOLE" envDefault:"false"`

	// Lighting API
	APIKey     string        `env:"LIGHT_API_KEY"`
	BaseURL    string        `env:"LIGHT_API_BASE_URL"   envDefault:"https://api.example.com/v1/"`
	Concurrent bool          `env:"LIGHT_API_CONCURRENT" envDefault:"false"`
	Timeout    time.Duration `env:"LIGHT_API_TIMEOUT"    envDefault:"0s"`
}

// New reads the configuration from the process environment.
func New() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// FromEnvironment reads the configuration from environ instead of the process
// environment.
func FromEnvironment(environ map[string]string) (*Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil { //nolint:exhaustruct
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) ClientConfig() lightapi.Config {
	return lightapi.Config{
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Concurrent: c.Concurrent,
	}
}

func (c *Config) ClientOptions() []lightapi.Option {
	opts := make([]lightapi.Option, 0, 1)

	if c.Timeout > 0 {
		opts = append(opts, lightapi.WithTimeout(c.Timeout))
	}

	return opts
}

// NewClient builds a lighting API client from the configuration.
func (c *Config) NewClient(opts ...lightapi.Option) (*lightapi.Client, error) {
	return lightapi.New(c.ClientConfig(), append(c.ClientOptions(), opts...)...)
}
