// Package preflight runs startup checks for the daemon: directory
// permissions and instance reachability. Failures are reported, never fatal.
package preflight

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"perch/internal/config"
	"perch/internal/logging"
	"perch/internal/services/mastodon"
)

// Result captures the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectory verifies the path exists, is a directory, and is
// readable/writable/traversable by this process.
func CheckDirectory(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckInstance verifies the configured server is reachable. Missing
// credentials are reported as failures here so the operator sees the gap at
// startup instead of on the first publish attempt.
func CheckInstance(ctx context.Context, cfg *config.Config) Result {
	const name = "Instance"

	base := cfg.BaseURL()
	if base == "" {
		return Result{Name: name, Detail: "instance.url not configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := mastodon.NewClient(base, cfg.Instance.AccessToken)
	if err := client.CheckInstance(checkCtx); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	if strings.TrimSpace(cfg.Instance.AccessToken) == "" {
		return Result{Name: name, Detail: "reachable, but instance.access_token is empty; posts will be rejected"}
	}
	return Result{Name: name, Passed: true, Detail: "reachable"}
}

// RunAll executes every startup check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	return []Result{
		CheckDirectory("Source directory", cfg.Paths.SourceDir),
		CheckDirectory("Archive directory", cfg.Paths.ArchiveDir),
		CheckInstance(ctx, cfg),
	}
}

// Report logs one line per result; failures surface as warnings.
func Report(logger *slog.Logger, results []Result) {
	logger = logging.NewComponentLogger(logger, "preflight")
	for _, result := range results {
		if result.Passed {
			logger.Info("check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail),
			)
			continue
		}
		logger.Warn("check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldEventType, "preflight_failed"),
		)
	}
}
