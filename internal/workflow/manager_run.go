package workflow

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"perch/internal/logging"
	"perch/internal/services/mastodon"
)

// Start begins background processing: an immediate first cycle, then one
// cycle per interval tick until the context is cancelled or Stop is called.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(runCtx)
	return nil
}

// Stop terminates background processing and waits for completion.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()

	m.logger.Info("scheduler started", logging.Duration("interval", m.interval))
	m.RunCycle(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			m.RunCycle(ctx)
		}
	}
}

// RunCycle executes a single publish cycle. A cycle still in flight causes
// the new one to be skipped with a warning instead of interleaving queue
// mutations. Operational failures are logged and swallowed; the loop always
// continues.
func (m *Manager) RunCycle(ctx context.Context) {
	if !m.cycleInFlight.CompareAndSwap(false, true) {
		m.logger.Warn("previous cycle still in flight; skipping tick",
			logging.String(logging.FieldEventType, "cycle_overlap_skipped"),
		)
		return
	}
	defer m.cycleInFlight.Store(false)

	logger := m.logger.With(logging.String(logging.FieldCycleID, uuid.NewString()))

	if m.queue.IsEmpty() {
		candidates, err := m.scanner.LoadCandidates()
		if err != nil {
			logger.Error("reload candidates failed",
				logging.Error(err),
				logging.String(logging.FieldEventType, "scan_failed"),
				logging.String(logging.FieldErrorHint, "check source directory permissions"),
			)
			return
		}
		m.queue.Reload(candidates)
		if len(candidates) > 0 {
			logger.Info("queue reloaded", logging.Int("candidates", len(candidates)))
		}
	}

	name, ok := m.queue.Next()
	if !ok {
		logger.Info("no images found; skipping cycle",
			logging.String("source_dir", m.cfg.Paths.SourceDir),
		)
		return
	}

	sourcePath := filepath.Join(m.cfg.Paths.SourceDir, name)
	err := m.publisher.Publish(ctx, sourcePath)

	// The selected entry is consumed whether or not the publish succeeded;
	// a failed file is only reconsidered after the next full drain and rescan.
	m.queue.Consume()

	if err != nil {
		attrs := []logging.Attr{
			logging.String(logging.FieldFile, name),
			logging.Error(err),
			logging.String(logging.FieldEventType, "publish_failed"),
		}
		var apiErr *mastodon.APIError
		if errors.As(err, &apiErr) {
			attrs = append(attrs,
				logging.Int(logging.FieldHTTPCode, apiErr.StatusCode),
				logging.String("response_body", apiErr.Body),
			)
		}
		logger.Error("publish attempt failed", logging.Args(attrs...)...)
	}

	logger.Debug("cycle complete", logging.Int("remaining", m.queue.Len()))
}
