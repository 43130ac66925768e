package config

import (
	"github.com/alchemorsel/kitchen/pkg/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Watcher re-reads the config file when it changes. Only the log level is
// applied live; everything else needs a restart.
type Watcher struct {
	v      *viper.Viper
	level  zap.AtomicLevel
	logger *zap.Logger
}

// LoadWatched loads configuration and returns a watcher for the same source
func LoadWatched(configPath string) (*Config, *Watcher, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}

	return cfg, &Watcher{v: v}, nil
}

// Start begins watching. It is a no-op when no config file was read.
func (w *Watcher) Start(level zap.AtomicLevel, log *zap.Logger) {
	w.level = level
	w.logger = log.Named("config")

	if w.v.ConfigFileUsed() == "" {
		w.logger.Debug("No config file in use, hot reload disabled")
		return
	}

	w.v.OnConfigChange(w.handle)
	w.v.WatchConfig()
	w.logger.Info("Watching config file", zap.String("file", w.v.ConfigFileUsed()))
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	cfg, err := decode(w.v)
	if err != nil {
		w.logger.Warn("Ignoring invalid config change", zap.String("file", event.Name), zap.Error(err))
		return
	}

	next := logger.ParseLevel(cfg.App.LogLevel)
	if next == w.level.Level() {
		return
	}

	w.level.SetLevel(next)
	w.logger.Info("Log level changed", zap.String("level", next.String()))
}
