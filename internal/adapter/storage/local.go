package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

// LocalStorage is the backup directory: dumps are written here and the
// rotation scan walks it. It is not recursive.
type LocalStorage struct {
	basePath string
}

func NewLocal(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Create opens name for writing, truncating any file of the same name.
func (l *LocalStorage) Create(name string) (io.WriteCloser, error) {
	f, err := os.OpenFile(l.GetPath(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	return f, nil
}

// List returns the regular files in the directory. Size and ModTime come
// from the filesystem; Timestamp is left for the caller to fill in.
func (l *LocalStorage) List(ctx context.Context) ([]domain.BackupFile, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []domain.BackupFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", entry.Name(), err)
		}
		files = append(files, domain.BackupFile{
			Name:    entry.Name(),
			Path:    l.GetPath(entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

func (l *LocalStorage) Stat(ctx context.Context, name string) (domain.BackupFile, error) {
	info, err := os.Stat(l.GetPath(name))
	if err != nil {
		return domain.BackupFile{}, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return domain.BackupFile{
		Name:    name,
		Path:    l.GetPath(name),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (l *LocalStorage) Delete(ctx context.Context, name string) error {
	if err := os.Remove(l.GetPath(name)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (l *LocalStorage) GetPath(filename string) string {
	return filepath.Join(l.basePath, filename)
}
