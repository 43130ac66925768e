package gorm

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// zapWriter routes GORM log lines into zap
type zapWriter struct {
	logger *zap.Logger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if strings.Contains(msg, "SLOW SQL") {
		w.logger.Warn(msg)
		return
	}
	w.logger.Debug(msg)
}

// NewLogger builds a GORM logger on top of zap. level is one of
// silent, error, warn or info.
func NewLogger(log *zap.Logger, level string, slowThreshold time.Duration) logger.Interface {
	logLevel := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "info", "debug":
		logLevel = logger.Info
	}

	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}

	return logger.New(
		zapWriter{logger: log.Named("gorm")},
		logger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
