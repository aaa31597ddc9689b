package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CompPath string // .hcl composition file or directory

	Param string // "node.param" address to evaluate, empty for a summary
	At    string // evaluation time as a rational or decimal, default "0/1"
	Watch bool   // keep running and re-probe footage on file changes

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.CompPath == "" {
		return nil, errors.New("CompPath is a required configuration field and cannot be empty")
	}

	if cfg.At == "" {
		cfg.At = "0/1"
	}

	return &cfg, nil
}
