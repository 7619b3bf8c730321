// Package scanner lists candidate image files from the source directory.
package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"perch/internal/logging"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// IsImage reports whether name carries one of the supported image
// extensions, case-insensitively.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := imageExtensions[ext]
	return ok
}

// Scanner produces the ordered candidate list that seeds the work queue.
type Scanner struct {
	sourceDir  string
	archiveDir string
	logger     *slog.Logger
}

// New constructs a scanner over the given source and archive directories.
func New(sourceDir, archiveDir string, logger *slog.Logger) *Scanner {
	return &Scanner{
		sourceDir:  sourceDir,
		archiveDir: archiveDir,
		logger:     logging.NewComponentLogger(logger, "scanner"),
	}
}

// LoadCandidates ensures the source and archive directories exist, then
// returns the image filenames in the source directory in listing order.
// Subdirectories and non-image files are skipped.
func (s *Scanner) LoadCandidates() ([]string, error) {
	for _, dir := range []string{s.sourceDir, s.archiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %q: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(s.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("list source directory %q: %w", s.sourceDir, err)
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !IsImage(entry.Name()) {
			continue
		}
		candidates = append(candidates, entry.Name())
	}

	s.logger.Debug("scan complete",
		logging.String("source_dir", s.sourceDir),
		logging.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// SourceDir returns the directory the scanner reads candidates from.
func (s *Scanner) SourceDir() string {
	return s.sourceDir
}
