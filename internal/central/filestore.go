package central

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileTokenStore caches the token pair as a JSON document on disk, one file
// per customer+client pair. The file is not encrypted.
type FileTokenStore struct {
	Dir        string
	CustomerID string
	ClientID   string
}

// Load reads the cached token pair. A missing cache file is (nil, nil).
func (s *FileTokenStore) Load(ctx context.Context) (*Token, error) {
	if s == nil {
		return nil, errors.New("token store is not configured")
	}
	_ = ctx

	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cached token: %w", err)
	}

	token := &Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("decode cached token: %w", err)
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return nil, nil
	}
	return token, nil
}

// Store writes the token pair, creating the cache directory when needed.
func (s *FileTokenStore) Store(ctx context.Context, token *Token) error {
	if s == nil {
		return errors.New("token store is not configured")
	}
	if token == nil {
		return errors.New("token is required")
	}
	_ = ctx

	path := s.path()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token cache dir: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

func (s *FileTokenStore) path() string {
	dir := s.Dir
	if strings.TrimSpace(dir) == "" {
		dir = defaultTokenDir()
	}
	name := fmt.Sprintf("tok_%s_%s.json", sanitize(s.CustomerID), sanitize(s.ClientID))
	return filepath.Join(dir, name)
}

func defaultTokenDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "temp"
	}
	return filepath.Join(home, ".gocentral", "tokens")
}

func sanitize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return replacer.Replace(value)
}
