// Package kv provides the string key-value stores that back the post feed
// and UI preferences.
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps every key in one JSON object on disk. Each write replaces
// the file atomically, so a crash never leaves a half-written store.
type FileStore struct {
	path   string
	backup string // where a corrupt file was moved on open

	mu   sync.Mutex
	data map[string]string
}

// OpenFile loads the store at path, creating parent directories as needed.
// A missing file is an empty store. A file that is not a JSON object is moved
// aside to path.corrupt-<timestamp> and the store opens empty; see Recovered.
func OpenFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	s := &FileStore{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store %s: %w", path, err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.data = map[string]string{}
		backup := path + ".corrupt-" + time.Now().Format("20060102T150405")
		// If the rename fails the next write replaces the corrupt file.
		if os.Rename(path, backup) == nil {
			s.backup = backup
		}
		return s, nil
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Recovered returns where an unreadable store file was moved when it was
// opened, if that happened.
func (s *FileStore) Recovered() (string, bool) {
	return s.backup, s.backup != ""
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	s.data[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.flush(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) flush() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}
