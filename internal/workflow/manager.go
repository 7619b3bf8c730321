package workflow

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"perch/internal/config"
	"perch/internal/logging"
	"perch/internal/queue"
)

// Publisher runs one publish attempt for a single source file.
type Publisher interface {
	Publish(ctx context.Context, sourcePath string) error
}

// CandidateLoader produces the ordered candidate list that reloads the queue.
type CandidateLoader interface {
	LoadCandidates() ([]string, error)
}

// Manager owns the work queue and drives publish cycles: one immediately at
// startup, then one per interval tick. All queue and cursor state lives here,
// constructed at startup and never shared as package globals.
type Manager struct {
	cfg       *config.Config
	scanner   CandidateLoader
	publisher Publisher
	queue     *queue.Queue
	logger    *slog.Logger
	interval  time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// cycleInFlight is the single-flight guard: a tick that arrives while a
	// cycle is still running is skipped, never interleaved.
	cycleInFlight atomic.Bool
}

// NewManager constructs a workflow manager with an empty queue.
func NewManager(cfg *config.Config, scanner CandidateLoader, pub Publisher, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		scanner:   scanner,
		publisher: pub,
		queue:     queue.New(),
		logger:    logging.NewComponentLogger(logger, "scheduler"),
		interval:  cfg.Interval(),
	}
}
