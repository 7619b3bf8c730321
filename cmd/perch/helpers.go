package main

import (
	"fmt"
	"log/slog"

	"perch/internal/archiver"
	"perch/internal/config"
	"perch/internal/logging"
	"perch/internal/publisher"
	"perch/internal/scanner"
	"perch/internal/services/mastodon"
	"perch/internal/workflow"
)

func loadConfig(configFlag *string) (*config.Config, error) {
	path := ""
	if configFlag != nil {
		path = *configFlag
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildManager wires the scanner, API client, archiver, and publisher into a
// workflow manager. Both the daemon and the one-shot command use this.
func buildManager(cfg *config.Config, logger *slog.Logger) *workflow.Manager {
	scan := scanner.New(cfg.Paths.SourceDir, cfg.Paths.ArchiveDir, logger)
	client := mastodon.NewClient(cfg.BaseURL(), cfg.Instance.AccessToken)
	arch := archiver.New(cfg.Paths.ArchiveDir)
	pub := publisher.New(cfg, client, arch, logger)
	return workflow.NewManager(cfg, scan, pub, logger)
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}
