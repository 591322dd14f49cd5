// Package logging builds the zap loggers used by every service.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger flavour
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// New builds a logger tagged with the service name
func New(serviceName string, cfg Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if strings.EqualFold(cfg.Format, "console") {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(defaultLevel(cfg.Level))
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", serviceName)), nil
}

func defaultLevel(level string) string {
	if level == "" {
		return "info"
	}
	return level
}

// Common field constructors, so every participant logs the saga keys the same way.

func EnrollmentID(id string) zap.Field { return zap.String("enrollment_id", id) }

func EventID(id string) zap.Field { return zap.String("event_id", id) }

func Topic(topic string) zap.Field { return zap.String("topic", topic) }

func Handler(id string) zap.Field { return zap.String("handler", id) }
