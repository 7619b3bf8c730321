package publisher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"perch/internal/archiver"
	"perch/internal/logging"
	"perch/internal/publisher"
	"perch/internal/services/mastodon"
	"perch/internal/testsupport"
)

type fakeService struct {
	uploads   []string
	statuses  [][]string
	uploadErr error
	statusErr error
}

func (f *fakeService) UploadMedia(_ context.Context, filename string, content []byte, description string) (mastodon.Media, error) {
	if f.uploadErr != nil {
		return mastodon.Media{}, f.uploadErr
	}
	f.uploads = append(f.uploads, filename)
	return mastodon.Media{ID: "42"}, nil
}

func (f *fakeService) CreateStatus(_ context.Context, caption string, mediaIDs []string, visibility string) (mastodon.Status, error) {
	if f.statusErr != nil {
		return mastodon.Status{}, f.statusErr
	}
	f.statuses = append(f.statuses, mediaIDs)
	return mastodon.Status{ID: "100"}, nil
}

func newPublisher(t *testing.T, svc *fakeService, archiveDir string) *publisher.Publisher {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	return publisher.New(cfg, svc, archiver.New(archiveDir), logging.NewNop())
}

func TestPublishUploadsPostsAndArchives(t *testing.T) {
	base := t.TempDir()
	sourcePath := filepath.Join(base, "images", "a.jpg")
	archiveDir := filepath.Join(base, "posted")
	testsupport.WriteFile(t, sourcePath, 16)

	svc := &fakeService{}
	p := newPublisher(t, svc, archiveDir)

	if err := p.Publish(context.Background(), sourcePath); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if len(svc.uploads) != 1 || svc.uploads[0] != "a.jpg" {
		t.Fatalf("unexpected uploads: %v", svc.uploads)
	}
	if len(svc.statuses) != 1 || svc.statuses[0][0] != "42" {
		t.Fatalf("unexpected statuses: %v", svc.statuses)
	}
	if _, err := os.Stat(filepath.Join(archiveDir, "a.jpg")); err != nil {
		t.Fatalf("expected archived file: %v", err)
	}
	if _, err := os.Stat(sourcePath); !os.IsNotExist(err) {
		t.Fatalf("expected source removed, stat err: %v", err)
	}
}

func TestPublishMissingFileAbortsBeforeUpload(t *testing.T) {
	svc := &fakeService{}
	p := newPublisher(t, svc, t.TempDir())

	err := p.Publish(context.Background(), filepath.Join(t.TempDir(), "absent.jpg"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "read image") {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.uploads) != 0 {
		t.Fatal("nothing should have been uploaded")
	}
}

func TestPublishUploadFailureLeavesFileInPlace(t *testing.T) {
	base := t.TempDir()
	sourcePath := filepath.Join(base, "a.jpg")
	testsupport.WriteFile(t, sourcePath, 16)

	svc := &fakeService{uploadErr: &mastodon.APIError{StatusCode: 401, Body: "unauthorized"}}
	p := newPublisher(t, svc, filepath.Join(base, "posted"))

	err := p.Publish(context.Background(), sourcePath)
	if err == nil {
		t.Fatal("expected upload error")
	}
	var apiErr *mastodon.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("expected 401 APIError in chain, got %v", err)
	}
	if _, err := os.Stat(sourcePath); err != nil {
		t.Fatalf("expected file untouched: %v", err)
	}
}

func TestPublishStatusFailureDoesNotArchive(t *testing.T) {
	base := t.TempDir()
	sourcePath := filepath.Join(base, "a.jpg")
	archiveDir := filepath.Join(base, "posted")
	testsupport.WriteFile(t, sourcePath, 16)

	svc := &fakeService{statusErr: errors.New("boom")}
	p := newPublisher(t, svc, archiveDir)

	if err := p.Publish(context.Background(), sourcePath); err == nil {
		t.Fatal("expected status error")
	}
	if _, err := os.Stat(sourcePath); err != nil {
		t.Fatalf("expected file untouched: %v", err)
	}
	if _, err := os.Stat(filepath.Join(archiveDir, "a.jpg")); !os.IsNotExist(err) {
		t.Fatal("file must not be archived after a failed post")
	}
}

type failingArchiver struct{}

func (failingArchiver) Archive(string) (string, error) {
	return "", errors.New("cross-device move refused")
}

func TestPublishArchiveFailureStillCountsAsPosted(t *testing.T) {
	base := t.TempDir()
	sourcePath := filepath.Join(base, "a.jpg")
	testsupport.WriteFile(t, sourcePath, 16)

	cfg := testsupport.NewConfig(t)
	svc := &fakeService{}
	p := publisher.New(cfg, svc, failingArchiver{}, logging.NewNop())

	if err := p.Publish(context.Background(), sourcePath); err != nil {
		t.Fatalf("archive failure must not fail the attempt: %v", err)
	}
	if _, err := os.Stat(sourcePath); err != nil {
		t.Fatalf("expected file still in source dir: %v", err)
	}
}
