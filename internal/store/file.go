package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// File permissions
const (
	DefaultDirPermissions  = 0750
	DefaultFilePermissions = 0600
)

// FileStore keeps every key in one JSON document on disk. Writes replace the
// document atomically so a crash never leaves a half-written file behind.
type FileStore struct {
	path   string
	logger zerolog.Logger

	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// NewFileStore opens (or creates) the JSON document at path.
func NewFileStore(path string, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	s := &FileStore{path: path, logger: logger, data: make(map[string]string)}
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	s.data = data
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *FileStore) Put(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	next := maps.Clone(s.data)
	next[key] = value
	if err := s.write(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.data[key]; !ok {
		return nil
	}
	next := maps.Clone(s.data)
	delete(next, key)
	if err := s.write(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Watch reloads the document when another process replaces it and calls
// onChange after each reload that changed a value. It blocks until ctx is done.
func (s *FileStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: atomic replaces swap the inode under the file name.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			changed, err := s.reload()
			if err != nil {
				s.logger.Warn().Err(err).Str("path", s.path).Msg("reload store file")
				continue
			}
			if changed && onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn().Err(err).Msg("store file watcher error")
		}
	}
}

// reload re-reads the document and reports whether it differs from memory
func (s *FileStore) reload() (bool, error) {
	data, err := s.read()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || maps.Equal(s.data, data) {
		return false, nil
	}
	s.data = data
	return true, nil
}

func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(raw) == 0 {
		return make(map[string]string), nil
	}

	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", s.path, err)
	}
	return data, nil
}

// write replaces the document with full durability guarantees using renameio
func (s *FileStore) write(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(DefaultFilePermissions))
	if err != nil {
		return fmt.Errorf("create pending store file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			s.logger.Debug().Err(err).Msg("cleanup pending store file")
		}
	}()

	if _, err := pendingFile.Write(raw); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace store file: %w", err)
	}
	return nil
}
