package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
)

// Extension is appended to the slot name of every snapshot file.
const Extension = ".save"

// FileStore writes every slot into its own file below a directory.
// Writes go to a temporary file first and are renamed into place, so a
// reader never observes a partially written snapshot.
type FileStore struct {
	mu        sync.Mutex
	directory string
}

func NewFileStore(directory string) (*FileStore, error) {
	if directory == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		directory = filepath.Join(home, ".vshell")
	}

	return &FileStore{
		directory: directory,
	}, nil
}

// Returns the identifier name defined for this store
func (*FileStore) Name() string {
	return "file"
}

func (fs *FileStore) Open(ctx context.Context) error {
	if err := os.MkdirAll(fs.directory, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return nil
}

func (fs *FileStore) Close(ctx context.Context) error {
	return nil
}

func (fs *FileStore) Write(ctx context.Context, slot string, content []byte) error {
	target, err := fs.path(slot)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	tmp, err := os.CreateTemp(fs.directory, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), target)
}

func (fs *FileStore) Read(ctx context.Context, slot string) ([]byte, error) {
	target, err := fs.path(slot)
	if err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	content, err := os.ReadFile(target)
	if os.IsNotExist(err) {
		return nil, errors.SnapshotNotExist(err, slot)
	}
	return content, err
}

func (fs *FileStore) path(slot string) (string, error) {
	if slot == "" || strings.ContainsAny(slot, `/\`) || slot == "." || slot == ".." {
		return "", fmt.Errorf("%w: invalid slot '%s'", data.ErrInvalid, slot)
	}
	return filepath.Join(fs.directory, slot+Extension), nil
}
