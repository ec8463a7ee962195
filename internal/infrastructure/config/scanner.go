package config

import "time"

// ScannerConfig holds batch and watch settings
type ScannerConfig struct {
	// Concurrent card scans in batch mode
	Workers int `mapstructure:"workers" validate:"min=1,max=64"`

	// Rescan period for the watch command
	Interval time.Duration `mapstructure:"interval" validate:"min=1s"`

	// Maximum opportunities printed per card (0 for all)
	Limit int `mapstructure:"limit" validate:"min=0"`

	// PID file written by the watch command (empty disables it)
	PIDFile string `mapstructure:"pid_file"`
}
