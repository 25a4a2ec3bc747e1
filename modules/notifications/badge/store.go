package badge

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// FileWatermarkStore persists the viewed watermark as a unix-millisecond
// timestamp in a single file, surviving restarts. Writes keep the newest
// value so concurrent writers converge on last-write-wins.
type FileWatermarkStore struct {
	mu   sync.Mutex
	path string
}

func NewFileWatermarkStore(path string) *FileWatermarkStore {
	return &FileWatermarkStore{path: path}
}

func (s *FileWatermarkStore) LastViewed() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *FileWatermarkStore) SetLastViewed(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.readLocked()
	if err == nil && current.After(t) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.FormatInt(t.UnixMilli(), 10)), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileWatermarkStore) readLocked() (time.Time, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	millis, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return time.Time{}, nil
	}
	return time.UnixMilli(millis), nil
}

type MemoryWatermarkStore struct {
	mu     sync.Mutex
	viewed time.Time
}

func NewMemoryWatermarkStore() *MemoryWatermarkStore {
	return &MemoryWatermarkStore{}
}

func (s *MemoryWatermarkStore) LastViewed() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewed, nil
}

func (s *MemoryWatermarkStore) SetLastViewed(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.After(s.viewed) {
		s.viewed = t
	}
	return nil
}
