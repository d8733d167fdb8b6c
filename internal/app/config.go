package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BuildPath string // hcl build definition file or directory

	LogFormat   string
	LogLevel    string
	Parallel    bool
	WorkerCount int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.BuildPath == "" {
		return nil, errors.New("BuildPath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		return nil, errors.New("WorkerCount must be at least 1")
	}

	return &cfg, nil
}
