// Package archive extracts dataset zip archives into per-run scratch
// directories for the organizer to consume.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ScratchDir returns a fresh extraction directory name under parent. The
// run ID keeps concurrent conversion runs from sharing scratch space.
func ScratchDir(parent, runID string) string {
	return filepath.Join(parent, "extracted_"+runID)
}

// NewRunID returns the identifier used for scratch directory naming and the
// run report.
func NewRunID() string {
	return uuid.NewString()
}

// ExtractZip extracts every entry of the archive at zipPath into destDir,
// creating destDir if needed. Entries escaping destDir are rejected.
func ExtractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}

	for _, entry := range reader.File {
		if err := extractEntry(entry, destDir); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry writes one archive entry under destDir.
func extractEntry(entry *zip.File, destDir string) error {
	dst := filepath.Join(destDir, filepath.FromSlash(entry.Name))

	// Reject entries that traverse outside the destination.
	if !strings.HasPrefix(dst, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry %q escapes destination: %w", entry.Name, os.ErrInvalid)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dst, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", entry.Name, err)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("extracting %s: %w", entry.Name, err)
	}
	return nil
}
