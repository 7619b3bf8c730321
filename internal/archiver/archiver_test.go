package archiver_test

import (
	"os"
	"path/filepath"
	"testing"

	"perch/internal/archiver"
	"perch/internal/testsupport"
)

func TestArchiveMovesFilePreservingBaseName(t *testing.T) {
	base := t.TempDir()
	sourcePath := filepath.Join(base, "images", "a.jpg")
	archiveDir := filepath.Join(base, "posted")
	testsupport.WriteFile(t, sourcePath, 64)

	a := archiver.New(archiveDir)
	target, err := a.Archive(sourcePath)
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}
	if target != filepath.Join(archiveDir, "a.jpg") {
		t.Fatalf("unexpected target path: %q", target)
	}

	if _, err := os.Stat(sourcePath); !os.IsNotExist(err) {
		t.Fatalf("expected source removed, stat err: %v", err)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("expected target to exist: %v", err)
	}
	if info.Size() != 64 {
		t.Fatalf("unexpected target size: %d", info.Size())
	}
}

func TestArchiveCreatesMissingArchiveDir(t *testing.T) {
	base := t.TempDir()
	sourcePath := filepath.Join(base, "a.png")
	archiveDir := filepath.Join(base, "deep", "nested", "posted")
	testsupport.WriteFile(t, sourcePath, 8)

	a := archiver.New(archiveDir)
	if _, err := a.Archive(sourcePath); err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(archiveDir, "a.png")); err != nil {
		t.Fatalf("expected archived file: %v", err)
	}
}

func TestArchiveReplacesExistingTarget(t *testing.T) {
	base := t.TempDir()
	sourcePath := filepath.Join(base, "a.gif")
	archiveDir := filepath.Join(base, "posted")
	testsupport.WriteFile(t, sourcePath, 32)
	testsupport.WriteFile(t, filepath.Join(archiveDir, "a.gif"), 8)

	a := archiver.New(archiveDir)
	target, err := a.Archive(sourcePath)
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat target: %v", err)
	}
	if info.Size() != 32 {
		t.Fatalf("expected target replaced, size %d", info.Size())
	}
}

func TestArchiveMissingSourceFails(t *testing.T) {
	a := archiver.New(t.TempDir())
	if _, err := a.Archive(filepath.Join(t.TempDir(), "absent.jpg")); err == nil {
		t.Fatal("expected error for missing source")
	}
}
