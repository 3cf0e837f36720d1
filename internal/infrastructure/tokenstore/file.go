package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

const fileName = "tokens.json"

// FileStore keeps the token pair in <dir>/<scope>/tokens.json so it survives
// console restarts. Each scope is an independent key/value area.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store for scope under dir. The directory is created
// lazily on the first Set.
func NewFileStore(dir, scope string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("tokenstore: empty directory")
	}
	if scope == "" || strings.ContainsAny(scope, `/\`) || scope == "." || scope == ".." {
		return nil, fmt.Errorf("tokenstore: invalid scope %q", scope)
	}
	return &FileStore{path: filepath.Join(dir, scope, fileName)}, nil
}

// Path is the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(_ context.Context) (domain.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{Access: values[AccessTokenKey], Refresh: values[RefreshTokenKey]}, nil
}

func (s *FileStore) Set(_ context.Context, pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[AccessTokenKey] = pair.Access
	values[RefreshTokenKey] = pair.Refresh
	return s.write(values)
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	delete(values, AccessTokenKey)
	delete(values, RefreshTokenKey)
	if len(values) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("tokenstore: remove %s: %w", s.path, err)
		}
		return nil
	}
	return s.write(values)
}

func (s *FileStore) read() (map[string]string, error) {
	values := map[string]string{}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: read %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("tokenstore: decode %s: %w", s.path, err)
	}
	return values, nil
}

// write replaces the file atomically so a crash never leaves half a document.
func (s *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: create dir: %w", err)
	}
	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("tokenstore: encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return fmt.Errorf("tokenstore: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tokenstore: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tokenstore: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tokenstore: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("tokenstore: rename: %w", err)
	}
	return nil
}
