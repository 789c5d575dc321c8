package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchConfiguration loads the configuration at configPath and then calls
// onChange with a freshly decoded configuration every time the file is
// written. The watcher lives until the process exits.
func WatchConfiguration(configPath string, logger *zap.Logger, onChange func(*Configuration, error)) (*Configuration, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("configuration changed",
			zap.String("op", "config.WatchConfiguration"),
			zap.String("file", e.Name),
			zap.String("event", e.Op.String()),
		)
		onChange(decode(v))
	})
	v.WatchConfig()

	return conf, nil
}
