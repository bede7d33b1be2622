package json

import (
	"codeberg.org/miketth/niriwindows/pkg/niriwindows"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const flushInterval = time.Minute

type StatusCache struct {
	status *niriwindows.Status
	file   *os.File
	lock   sync.Mutex
	dirty  bool
}

func NewStatusCache(filename string) (*StatusCache, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &StatusCache{file: file}

	if err := store.load(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("load: %w", err)
	}

	return store, nil
}

func (s *StatusCache) Close() error {
	return s.file.Close()
}

func (s *StatusCache) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, err := s.file.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	var status niriwindows.Status
	err = json.NewDecoder(s.file).Decode(&status)
	switch {
	case errors.Is(err, io.EOF):
		// freshly created file
		return nil
	case err != nil:
		return fmt.Errorf("decode json: %w", err)
	}

	s.status = &status
	return nil
}

// Flush writes the cached status to disk if it changed since the last flush.
func (s *StatusCache) Flush() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty || s.status == nil {
		return nil
	}

	_, err := s.file.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	err = json.NewEncoder(s.file).Encode(s.status)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

// SaveLooper flushes periodically and once more on shutdown, then closes the
// file.
func (s *StatusCache) SaveLooper(ctx context.Context) error {
	defer s.file.Close()

	for {
		select {
		case <-ctx.Done():
			err := s.Flush()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-time.After(flushInterval):
			err := s.Flush()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *StatusCache) LastStatus() (niriwindows.Status, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.status == nil {
		return niriwindows.Status{}, false, nil
	}
	return *s.status, true, nil
}

func (s *StatusCache) SaveStatus(status niriwindows.Status) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.status = &status
	s.dirty = true
	return nil
}
