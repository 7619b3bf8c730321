package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"perch/internal/config"
	"perch/internal/logging"
	"perch/internal/services/mastodon"
)

// MediaService is the API surface the publisher needs from the instance
// client.
type MediaService interface {
	UploadMedia(ctx context.Context, filename string, content []byte, description string) (mastodon.Media, error)
	CreateStatus(ctx context.Context, caption string, mediaIDs []string, visibility string) (mastodon.Status, error)
}

// Archiver moves a posted file out of the source directory.
type Archiver interface {
	Archive(sourcePath string) (string, error)
}

// Publisher runs one publish attempt: read, upload, post, archive.
type Publisher struct {
	service          MediaService
	archiver         Archiver
	caption          string
	visibility       string
	mediaDescription string
	logger           *slog.Logger
}

// New constructs a publisher from config and collaborators.
func New(cfg *config.Config, service MediaService, arch Archiver, logger *slog.Logger) *Publisher {
	return &Publisher{
		service:          service,
		archiver:         arch,
		caption:          cfg.Post.Caption,
		visibility:       cfg.Post.Visibility,
		mediaDescription: cfg.Post.MediaDescription,
		logger:           logging.NewComponentLogger(logger, "publisher"),
	}
}

// Publish uploads the file at sourcePath, creates a status referencing it,
// and archives the file. Every step is independently fallible and nothing is
// retried. An archive failure after a successful post is logged but does not
// fail the attempt: the post happened, the file is merely left eligible for
// reselection.
func (p *Publisher) Publish(ctx context.Context, sourcePath string) error {
	filename := filepath.Base(sourcePath)

	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	media, err := p.service.UploadMedia(ctx, filename, content, p.mediaDescription)
	if err != nil {
		return fmt.Errorf("upload media: %w", err)
	}
	p.logger.Debug("media uploaded",
		logging.String(logging.FieldFile, filename),
		logging.String("media_id", media.ID),
	)

	status, err := p.service.CreateStatus(ctx, p.caption, []string{media.ID}, p.visibility)
	if err != nil {
		// The uploaded media stays orphaned on the server; there is no cleanup.
		return fmt.Errorf("create status: %w", err)
	}

	archivedPath, err := p.archiver.Archive(sourcePath)
	if err != nil {
		p.logger.Warn("archive failed; file stays in source directory and may be posted again",
			logging.String(logging.FieldFile, filename),
			logging.Error(err),
			logging.String(logging.FieldEventType, "archive_failed"),
		)
	} else {
		p.logger.Debug("file archived",
			logging.String(logging.FieldFile, filename),
			logging.String("archived_path", archivedPath),
		)
	}

	p.logger.Info("image posted",
		logging.String(logging.FieldFile, filename),
		logging.String("status_id", status.ID),
		logging.String("status_url", status.URL),
	)
	return nil
}
