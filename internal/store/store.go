// Package store persists the listing collection as a single flat JSON
// document. It is deliberately not a database: each mutation is a full
// read-modify-write of the file, serialized within the process by a mutex.
// Two processes sharing one data file can still race and lose updates; that
// is a known limitation of the deployment model, not something this package
// tries to hide.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hoang-11jjk/RealEstatePro/internal/models"
)

// ErrNotFound is returned when an operation targets an id with no record.
var ErrNotFound = errors.New("property not found")

// Store is the repository abstraction over the listing collection. A real
// database backend can replace FileStore without touching the query engine
// or moderation logic.
type Store interface {
	All() []models.Property
	Get(id int64) (models.Property, error)
	Insert(p models.Property) (models.Property, error)
	Patch(id int64, fields map[string]any) (models.Property, error)
	Delete(id int64) error
}

// document is the persisted file layout.
type document struct {
	Properties []models.Property `json:"properties"`
}

// FileStore implements Store over a flat JSON file.
type FileStore struct {
	path string

	mu         sync.Mutex
	properties []models.Property
	lastID     int64
}

// Open loads the collection from path. A missing or malformed file yields an
// empty store, never an error: corruption recovery is reinitialization.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	raw, err := os.ReadFile(path)
	if err == nil {
		var doc document
		if jsonErr := json.Unmarshal(raw, &doc); jsonErr == nil {
			s.properties = doc.Properties
		}
	}
	if s.properties == nil {
		s.properties = []models.Property{}
	}
	for _, p := range s.properties {
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
	}
	return s, nil
}

// All returns a snapshot of the collection in storage order
// (most-recently-created first).
func (s *FileStore) All() []models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Property, len(s.properties))
	copy(out, s.properties)
	return out
}

// Get returns the record with the given id.
func (s *FileStore) Get(id int64) (models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Property{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Insert prepends a new record and assigns its id. Ids are unix-millisecond
// seeded so existing data files keep their ordering semantics, but strictly
// monotonic, so rapid concurrent creations cannot collide.
func (s *FileStore) Insert(p models.Property) (models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	p.ID = id
	s.lastID = id

	updated := make([]models.Property, 0, len(s.properties)+1)
	updated = append(updated, p)
	updated = append(updated, s.properties...)

	if err := s.save(updated); err != nil {
		return models.Property{}, err
	}
	s.properties = updated
	return p, nil
}

// Patch merges partial fields into the record with the given id. The id
// itself is immutable.
func (s *FileStore) Patch(id int64, fields map[string]any) (models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Property{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	patched := s.properties[idx]
	if err := patched.Apply(fields); err != nil {
		return models.Property{}, err
	}

	updated := make([]models.Property, len(s.properties))
	copy(updated, s.properties)
	updated[idx] = patched

	if err := s.save(updated); err != nil {
		return models.Property{}, err
	}
	s.properties = updated
	return patched, nil
}

// Delete permanently removes the record with the given id.
func (s *FileStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	updated := make([]models.Property, 0, len(s.properties)-1)
	updated = append(updated, s.properties[:idx]...)
	updated = append(updated, s.properties[idx+1:]...)

	if err := s.save(updated); err != nil {
		return err
	}
	s.properties = updated
	return nil
}

// indexOf must be called with the mutex held.
func (s *FileStore) indexOf(id int64) int {
	for i, p := range s.properties {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// save writes the collection atomically from a reader's perspective: marshal,
// write to a temp file in the same directory, rename over the target. Readers
// never observe a truncation window.
func (s *FileStore) save(properties []models.Property) error {
	data, err := json.MarshalIndent(document{Properties: properties}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal property collection: %w", err)
	}

	operation := func() error {
		dir := filepath.Dir(s.path)
		tmp, err := os.CreateTemp(dir, ".properties-*.json")
		if err != nil {
			return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
		}
		tmpName := tmp.Name()
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("failed to write temp file %s: %w", tmpName, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("failed to close temp file %s: %w", tmpName, err)
		}
		if err := os.Rename(tmpName, s.path); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("failed to replace %s: %w", s.path, err)
		}
		return nil
	}

	return Try(operation)
}
