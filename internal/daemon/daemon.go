// Package daemon wraps the workflow manager with single-instance locking
// and lifecycle management.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/gofrs/flock"

	"perch/internal/config"
	"perch/internal/logging"
	"perch/internal/workflow"
)

// Daemon coordinates the background publish loop and enforces
// single-instance execution via a file lock.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	workflow *workflow.Manager

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon around the given workflow manager. The lock file
// lives in the log directory when one is configured, otherwise in the
// archive directory.
func New(cfg *config.Config, wf *workflow.Manager, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || wf == nil || logger == nil {
		return nil, errors.New("daemon requires config, workflow manager, and logger")
	}

	lockDir := cfg.Paths.LogDir
	if strings.TrimSpace(lockDir) == "" {
		lockDir = cfg.Paths.ArchiveDir
	}
	lockPath := filepath.Join(lockDir, ".perch.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		workflow: wf,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and launches the workflow manager.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another perch instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.workflow.Start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return fmt.Errorf("start workflow: %w", err)
	}
	d.cancel = cancel

	d.running.Store(true)
	d.logger.Info("perch daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops background processing and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.workflow.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release instance lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("perch daemon stopped")
}

// Running reports whether the daemon has been started and not yet stopped.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// LockPath returns the path of the instance lock file.
func (d *Daemon) LockPath() string {
	return d.lockPath
}
