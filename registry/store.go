package registry

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrNoStore is returned when a registry without a store is asked to load or
// persist.
var ErrNoStore = errors.New("registry: no store")

// FileName is the name of the bindings file inside the config directory.
const FileName = "input.yaml"

//go:embed defaults.yaml
var defaultsYAML []byte

// Store loads and saves the registry's bindings.
type Store interface {
	Load() (Mappings, error)
	Save(Mappings) error
	String() string
}

// Defaults returns the built-in bindings shipped with the module.
func Defaults() (Mappings, error) {
	m, err := Decode(defaultsYAML)
	if err != nil {
		return Mappings{}, fmt.Errorf("registry: defaults: %w", err)
	}
	return m, nil
}

// Decode parses a bindings document. Unknown fields are rejected. An empty
// document yields empty mappings.
func Decode(data []byte) (Mappings, error) {
	var m Mappings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Mappings{}, err
	}
	if err := m.Validate(); err != nil {
		return Mappings{}, err
	}
	return m, nil
}

// Encode renders m as a bindings document.
func Encode(m Mappings) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultPath is the per-platform bindings file for game, e.g.
// ~/.config/<game>/linux/input.yaml.
func DefaultPath(game string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("registry: config dir: %w", err)
	}
	return filepath.Join(dir, game, runtime.GOOS, FileName), nil
}

// FileStore keeps bindings in a YAML file. A missing file loads the built-in
// defaults.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) String() string {
	return s.path
}

func (s *FileStore) Load() (Mappings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults()
	}
	if err != nil {
		return Mappings{}, fmt.Errorf("registry: read %s: %w", s.path, err)
	}
	m, err := Decode(data)
	if err != nil {
		return Mappings{}, fmt.Errorf("registry: decode %s: %w", s.path, err)
	}
	return m, nil
}

// Save writes m next to the target and renames it into place so readers never
// see a partial file.
func (s *FileStore) Save(m Mappings) error {
	data, err := Encode(m)
	if err != nil {
		return fmt.Errorf("registry: encode %s: %w", s.path, err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("registry: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("registry: save %s: %w", s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("registry: save %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("registry: save %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("registry: save %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps bindings in memory. Saves counts successful Save calls.
type MemoryStore struct {
	Mappings Mappings
	Saves    int
	// Err, when set, is returned by Save and Load.
	Err error
}

func NewMemoryStore(m Mappings) *MemoryStore {
	return &MemoryStore{Mappings: m.Clone()}
}

func (s *MemoryStore) String() string {
	return "memory"
}

func (s *MemoryStore) Load() (Mappings, error) {
	if s.Err != nil {
		return Mappings{}, s.Err
	}
	return s.Mappings.Clone(), nil
}

func (s *MemoryStore) Save(m Mappings) error {
	if s.Err != nil {
		return s.Err
	}
	s.Mappings = m.Clone()
	s.Saves++
	return nil
}
