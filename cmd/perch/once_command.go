package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOnceCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run a single publish cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			manager := buildManager(cfg, logger)
			manager.RunCycle(cmd.Context())
			return nil
		},
	}
}
