package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of a config file. Durations accept "1h"
// as well as integer nanoseconds. Only keys present in the file override
// the current values.
type FileConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	BasePath                    string          `json:"base_path" yaml:"base_path"`
	DatabaseDSN                 string          `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string          `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RequireExpiry               *bool           `json:"require_expiry" yaml:"require_expiry"`
	BcryptCost                  int             `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	TrustedOrigins              []string        `json:"trusted_origins" yaml:"trusted_origins"`
	RateLimitEnabled            *bool           `json:"rate_limit_enabled" yaml:"rate_limit_enabled"`
	RateLimitRPS                float64         `json:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst              int             `json:"rate_limit_burst" yaml:"rate_limit_burst"`
}

// parseFile loads the file given by -c/-config, if any. The format is
// chosen by extension: .yaml/.yml is YAML, anything else JSON.
func parseFile(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(config *Config) {
	if fc.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = fc.EndpointAddrHTTP
	}
	if fc.BasePath != "" {
		config.BasePath = fc.BasePath
	}
	if fc.DatabaseDSN != "" {
		config.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SecretKey != "" {
		config.SecretKey = fc.SecretKey
	}
	if fc.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.RequireExpiry != nil {
		config.RequireExpiry = *fc.RequireExpiry
	}
	if fc.BcryptCost != 0 {
		config.BcryptCost = fc.BcryptCost
	}
	if fc.TrustedOrigins != nil {
		config.TrustedOrigins = fc.TrustedOrigins
	}
	if fc.RateLimitEnabled != nil {
		config.RateLimitEnabled = *fc.RateLimitEnabled
	}
	if fc.RateLimitRPS != 0 {
		config.RateLimitRPS = fc.RateLimitRPS
	}
	if fc.RateLimitBurst != 0 {
		config.RateLimitBurst = fc.RateLimitBurst
	}
}
