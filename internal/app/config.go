package app

import "errors"

// Config holds everything an App instance needs to run, assembled from CLI
// flags before the harness config file is loaded.
type Config struct {
	ConfigPath string // simspec.hcl
	SuitePath  string // shortcut: one flat directory of .txt suites

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	Workers         int // 0 means take the config file's value
	Validate        bool
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && cfg.SuitePath == "" {
		return nil, errors.New("either a config file or a suite path is required")
	}
	return &cfg, nil
}
