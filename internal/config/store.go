package config

import (
	"fmt"
	"os"
	"sync"
)

// ProfileStore abstracts profile persistence for testability.
type ProfileStore interface {
	Load() (*Profile, error)
	Save(*Profile) error
}

// FileProfileStore implements ProfileStore using a YAML file.
// An empty File means the built-in default profile.
type FileProfileStore struct {
	File string
}

func NewFileProfileStore(file string) *FileProfileStore {
	return &FileProfileStore{File: file}
}

func (fs *FileProfileStore) Load() (*Profile, error) {
	return Load(fs.File)
}

func (fs *FileProfileStore) Save(p *Profile) error {
	if fs.File == "" {
		return fmt.Errorf("no profile file set")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(fs.File, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", fs.File, err)
	}
	return nil
}

// InMemoryProfileStore implements ProfileStore for testing (no disk I/O).
type InMemoryProfileStore struct {
	mu      sync.Mutex
	profile *Profile
}

func NewInMemoryProfileStore(p *Profile) *InMemoryProfileStore {
	return &InMemoryProfileStore{profile: p}
}

func (ms *InMemoryProfileStore) Load() (*Profile, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.profile == nil {
		return Default(), nil
	}
	// Return a copy to avoid mutation
	return ms.profile.clone(), nil
}

func (ms *InMemoryProfileStore) Save(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.profile = p.clone()
	return nil
}

func (p *Profile) clone() *Profile {
	cpy := *p
	cpy.Allow = append([]string(nil), p.Allow...)
	cpy.Exclude = append([]string(nil), p.Exclude...)
	cpy.Rules = append(cpy.Rules[:0:0], p.Rules...)
	return &cpy
}
