package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watch loads the config file at configPath and calls onChange with every
// successfully reloaded version. Reloads that fail to decode or validate are
// passed to onError and the previous configuration stays in effect.
func Watch(configPath string, onChange func(*Config), onError func(error)) (*Config, error) {
	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	// viper may deliver events from several goroutines
	var mu sync.Mutex
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()

		next, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		onChange(next)
	})
	v.WatchConfig()

	return cfg, nil
}
