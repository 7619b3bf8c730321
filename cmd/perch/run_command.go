package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"perch/internal/daemon"
	"perch/internal/preflight"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the posting daemon until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemonProcess(cmd.Context(), configFlag)
		},
	}
}

func runDaemonProcess(cmdCtx context.Context, configFlag *string) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(configFlag)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	preflight.Report(logger, preflight.RunAll(signalCtx, cfg))

	manager := buildManager(cfg, logger)
	d, err := daemon.New(cfg, manager, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	if err := d.Start(signalCtx); err != nil {
		return err
	}

	<-signalCtx.Done()
	logger.Info("interrupt received; shutting down")
	d.Stop()
	return nil
}
