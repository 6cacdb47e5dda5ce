package report

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore keeps artifacts under a single uploads root on the local
// filesystem.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (s *DiskStore) Abs(relPath string) string {
	return filepath.Join(s.root, relPath)
}

func (s *DiskStore) Save(relPath string, data []byte) error {
	abs := s.Abs(relPath)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return err
	}
	return os.WriteFile(abs, data, 0o644)
}

// Remove deletes the artifact; a file that is already gone is not an
// error.
func (s *DiskStore) Remove(relPath string) error {
	err := os.Remove(s.Abs(relPath))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DiskStore) Exists(relPath string) bool {
	_, err := os.Stat(s.Abs(relPath))
	return err == nil
}
