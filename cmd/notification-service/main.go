package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusflow/enrollment-system/notification-service/config"
	"github.com/campusflow/enrollment-system/shared/server"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "notification-service",
		Short:         "Send enrollment confirmations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.ReadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	logger, tel, flush, err := server.Setup(ctx, cfg.Common, telemetry.NotificationServiceConfig)
	if err != nil {
		return err
	}
	defer flush()

	logger.Info("starting", zap.String("env", cfg.Env), zap.String("port", cfg.Port),
		zap.String("notifier", cfg.Notification.Driver), zap.String("bus", cfg.Bus.Driver))

	deps, err := config.BuildDependencies(ctx, cfg, logger)
	if err != nil {
		return errors.Wrap(err, "failed to build dependencies")
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Error("error closing dependencies", zap.Error(err))
		}
	}()

	return server.Run(ctx, server.Participant{
		Name:       cfg.ServiceName,
		Port:       cfg.Port,
		Routes:     deps.NotificationHandlers.RegisterRoutes,
		Subscriber: deps.EventBus,
		Handler:    deps.EventHandler,
		Telemetry:  tel,
		Logger:     logger,
	})
}
