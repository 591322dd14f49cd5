package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusflow/enrollment-system/payments-service/config"
	"github.com/campusflow/enrollment-system/payments-service/infrastructure"
	"github.com/campusflow/enrollment-system/shared/migrations"
	"github.com/campusflow/enrollment-system/shared/server"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the payment participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root := &cobra.Command{
		Use:           "payments-service",
		Short:         serve.Short,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, migrations.NewCommand(infrastructure.Migrations, openDatabase))

	return root
}

func serve(ctx context.Context) error {
	cfg, err := config.ReadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	logger, tel, flush, err := server.Setup(ctx, cfg.Common, telemetry.PaymentsServiceConfig)
	if err != nil {
		return err
	}
	defer flush()

	logger.Info("starting", zap.String("env", cfg.Env), zap.String("port", cfg.Port),
		zap.String("storage", cfg.Storage), zap.String("bus", cfg.Bus.Driver))

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
		Routes:     deps.PaymentHandlers.RegisterRoutes,
		Subscriber: deps.EventBus,
		Handler:    deps.EventHandler,
		Telemetry:  tel,
		Logger:     logger,
	})
}

func openDatabase() (*sql.DB, func(), error) {
	cfg, err := config.ReadConfig()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	return db.DB, func() { db.Close() }, nil
}
