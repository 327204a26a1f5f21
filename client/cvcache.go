package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileCache is a small persistent string map stored as one JSON file.
type FileCache struct {
	path string
	mu   sync.Mutex
}

// DefaultCachePath is folio/cache.json under the user cache directory.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "folio", "cache.json"), nil
}

func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Get returns the value for key. A missing or unreadable file reads as empty.
func (c *FileCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil {
		return "", false
	}
	v, ok := entries[key]
	return v, ok
}

// Set stores value under key, rewriting the file atomically.
func (c *FileCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil {
		entries = map[string]string{}
	}
	entries[key] = value
	return c.write(entries)
}

// Delete removes key. Deleting a missing key is not an error.
func (c *FileCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil {
		entries = map[string]string{}
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return c.write(entries)
}

func (c *FileCache) write(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

func (c *FileCache) load() (map[string]string, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
