package config

import "time"

// Config holds runtime settings for the CLI.
type Config struct {
	AuthServerURL  string        `env:"TASKKEEPER_CLIENT_AUTH_URL"`
	TaskServerURL  string        `env:"TASKKEEPER_CLIENT_TASK_URL"`
	RequestTimeout time.Duration `env:"TASKKEEPER_CLIENT_TIMEOUT"`
}

// LoadDefaults points the client at both services on localhost.
func (c *Config) LoadDefaults() {
	c.AuthServerURL = "http://127.0.0.1:8001/auth"
	c.TaskServerURL = "http://127.0.0.1:8002/api"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, environment and command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
