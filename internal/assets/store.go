// Package assets provides durable storage for uploaded image files. Stored
// assets are addressed by stable string references that double as
// HTTP-servable paths.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists binary image assets. Save returns a stable reference;
// Remove deletes the asset behind a reference and treats a missing asset as
// already removed.
type Store interface {
	Save(ctx context.Context, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, ref string) error
}

// DiskStore keeps assets as individual files under a root directory. File
// names are random UUIDs so two uploads of identical bytes never share a
// file and deletes stay independent.
type DiskStore struct {
	root string
}

// NewDiskStore returns a DiskStore rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{root: dir}
}

func (s *DiskStore) Save(_ context.Context, data []byte, contentType string) (string, error) {
	ext, err := extensionFor(contentType)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.root, name)

	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing asset: %w", err)
	}

	return "images/" + name, nil
}

func (s *DiskStore) Remove(_ context.Context, ref string) error {
	name, ok := fileNameFor(ref)
	if !ok {
		return fmt.Errorf("invalid asset reference %q", ref)
	}

	if err := os.Remove(filepath.Join(s.root, name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("removing asset: %w", err)
	}
	return nil
}

// fileNameFor extracts the bare file name from a reference and rejects
// anything that could escape the root directory.
func fileNameFor(ref string) (string, bool) {
	name, found := strings.CutPrefix(ref, "images/")
	if !found || name == "" {
		return "", false
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return "", false
	}
	return name, true
}

func extensionFor(contentType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/png":
		return ".png", nil
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
}
