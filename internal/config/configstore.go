// Package config is brume's configuration layer: a TOML-backed key/value
// store adapted from the teacher's internal/adapters/driven/config/file
// ConfigStore, plus a typed Settings wrapper and .env loading via
// github.com/joho/godotenv so BEARER_TOKEN/BRUME_OPENAI_API_KEY can be
// set in a local dotenv file during development.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*Store)(nil)

// Store is a TOML-backed config store rooted at a single config.toml file.
type Store struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// Dir returns the config directory: $BRUME_CONFIG_DIR, or
// ~/.config/brume when unset.
func Dir() string {
	if v := os.Getenv("BRUME_CONFIG_DIR"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".brume"
	}
	return filepath.Join(home, ".config", "brume")
}

// Open loads config.toml in dir ("" uses Dir()), creating dir if needed.
// A missing config.toml yields an empty store; the file is first written
// by Set or Save.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = Dir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, domain.Wrap(domain.KindFilesystem, "creating config directory", err)
	}
	s := &Store{filePath: filepath.Join(dir, "config.toml"), data: make(map[string]any)}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadDotenv loads a .env file from the working directory if present.
// Called once at CLI startup, before config/env resolution.
func LoadDotenv() {
	_ = godotenv.Load()
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *Store) GetString(key string) string {
	v, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.save()
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return domain.Wrap(domain.KindParse, "serializing config TOML", err)
	}
	if err := os.WriteFile(s.filePath, data, 0o600); err != nil {
		return domain.Wrap(domain.KindFilesystem, "writing config file", err)
	}
	return nil
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]any)
			return nil
		}
		return domain.Wrap(domain.KindFilesystem, "reading config file", err)
	}

	loaded := make(map[string]any)
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return domain.Wrap(domain.KindParse, "parsing config TOML", err)
	}
	s.data = loaded
	return nil
}

func (s *Store) Path() string { return s.filePath }
