package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/saulo-duarte/quizzer/internal/config"
)

// FileStorage keeps the cache in a single JSON document. With encryption on,
// every value is sealed with config.Encrypt before it reaches the disk.
type FileStorage struct {
	mu      sync.Mutex
	path    string
	encrypt bool
}

func NewFileStorage(path string, encrypt bool) (*FileStorage, error) {
	if encrypt && !config.CryptoEnabled() {
		return nil, config.ErrCryptoNotInitialized
	}
	return &FileStorage{path: path, encrypt: encrypt}, nil
}

func (s *FileStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	if !ok {
		return "", false, nil
	}
	if s.encrypt {
		plain, err := config.Decrypt(v)
		if err != nil {
			return "", false, fmt.Errorf("decrypt %q: %w", key, err)
		}
		v = plain
	}
	return v, true, nil
}

func (s *FileStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if s.encrypt {
		sealed, err := config.Encrypt(value)
		if err != nil {
			return fmt.Errorf("encrypt %q: %w", key, err)
		}
		value = sealed
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *FileStorage) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return values, nil
}

// save writes through a temp file so a crash never leaves half a document.
func (s *FileStorage) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
