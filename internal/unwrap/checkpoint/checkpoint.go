// Package checkpoint persists the highest EVM block whose unwraps are all settled.
package checkpoint

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps the checkpoint as a decimal integer in a single file.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	saved uint64
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.Named("checkpoint").With(zap.String("path", path)),
	}
}

// Load returns the stored checkpoint. A missing, empty or unreadable file yields ok == false.
func (s *FileStore) Load() (block uint64, ok bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("checkpoint unreadable", zap.Error(err))
		}
		return 0, false
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return 0, false
	}
	block, err = strconv.ParseUint(text, 10, 64)
	if err != nil {
		s.logger.Warn("checkpoint corrupted", zap.String("content", text), zap.Error(err))
		return 0, false
	}

	s.mu.Lock()
	if block > s.saved {
		s.saved = block
	}
	s.mu.Unlock()
	return block, true
}

// Resume returns the first block to replay: the checkpoint loaded at startup or saved
// since, or skip when that is lower. The file is not read again.
func (s *FileStore) Resume(skip uint64) uint64 {
	block := s.Saved()
	if block < skip {
		return skip
	}
	return block
}

// Writable checks that Save will be able to create its temporary file next to the
// checkpoint.
func (s *FileStore) Writable() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp checkpoint: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp checkpoint: %w", err)
	}
	return nil
}

// Save atomically replaces the stored checkpoint. Values not above the last saved
// one are ignored.
func (s *FileStore) Save(block uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if block <= s.saved {
		return nil
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp checkpoint: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.FormatUint(block, 10)); err != nil {
		tmp.Close()
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close checkpoint: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace checkpoint: %w", err)
	}

	s.saved = block
	s.logger.Info("checkpoint advanced", zap.Uint64("block", block))
	return nil
}

// Saved returns the highest checkpoint persisted or loaded so far.
func (s *FileStore) Saved() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}
