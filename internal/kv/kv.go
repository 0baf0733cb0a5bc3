// Package kv implements the small synchronous key-value store that
// backs folder metadata and the legacy document list.
//
// The whole store is one JSON file: every key maps to a raw JSON
// value, the file is read once on Open, and every write rewrites the
// file atomically (temp file + rename). This mirrors the
// read-modify-write, overwrite-whole-collection semantics the
// metadata layer expects; there is no retry logic, any I/O failure is
// fatal to the caller.
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a file-backed JSON key-value store.
// Safe for concurrent use within one process; concurrent processes
// writing the same file race last-write-wins.
type Store struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// Open loads the store file at path, creating an empty store if the
// file does not exist. The parent directory must exist.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("open kv store: corrupt file %s: %w", path, err)
	}
	return s, nil
}

// Get unmarshals the value for key into v.
// Returns false if the key is absent.
func (s *Store) Get(key string, v any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return true, nil
}

// Put marshals v and stores it under key, flushing the whole file.
func (s *Store) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv put %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flushLocked()
}

// Delete removes key and flushes. No-op if the key is absent.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flushLocked()
}

// Has reports whether key is present without decoding its value.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// flushLocked writes the store file atomically. Callers hold s.mu.
func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("kv flush: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("kv flush: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("kv flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv flush: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv flush: %w", err)
	}
	return nil
}
