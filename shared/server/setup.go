package server

import (
	"context"

	"github.com/campusflow/enrollment-system/shared/config"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Setup builds the logger and telemetry of a participant. The returned func
// flushes both.
func Setup(ctx context.Context, cfg config.Common, base telemetry.Config) (*zap.Logger, *telemetry.Telemetry, func(), error) {
	logger, err := logging.New(cfg.ServiceName, cfg.Logging)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to build logger")
	}

	telCfg := base.WithVersion(cfg.Telemetry.ServiceVersion).WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint)

	if !cfg.Telemetry.Enabled {
		return logger, telemetry.NewTelemetry(telCfg), func() { logger.Sync() }, nil
	}

	tel, shutdown, err := telemetry.InitTelemetry(ctx, telCfg)
	if err != nil {
		logger.Sync()
		return nil, nil, nil, errors.Wrap(err, "failed to init telemetry")
	}

	return logger, tel, func() {
		shutdown()
		logger.Sync()
	}, nil
}
