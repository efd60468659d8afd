package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ad1tya-dev/BiteMe/models"
)

// ErrStorage marks failures of the persistence medium itself: file
// unreadable, unwritable, or content that does not parse as a document.
// Callers compare with errors.Is.
var ErrStorage = errors.New("storage error")

// Store owns the single persisted JSON document. Every mutation runs as one
// load -> mutate -> persist cycle under an exclusive lock, so two concurrent
// cycles can never interleave and lose an update. Reads take a shared lock
// and always see a non-torn document.
type Store struct {
	mu   sync.RWMutex
	path string
}

// Open returns a store backed by the document at path. A missing file is
// initialized with an empty valid document; an unreadable or malformed one
// is an ErrStorage.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: stat %s: %v", ErrStorage, path, err)
		}
		if err := s.persist(models.NewDocument()); err != nil {
			return nil, err
		}
		return s, nil
	}
	// Fail fast on a document we will never be able to load.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Update runs fn against the current document and persists the result. The
// lock covers the whole read-modify-write, which is what keeps concurrent
// cart merges from overwriting each other. If fn returns an error nothing is
// persisted.
func (s *Store) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.persist(doc)
}

// View runs fn against a freshly loaded document under a shared lock. fn
// must not retain or mutate the document.
func (s *Store) View(ctx context.Context, fn func(doc *models.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *Store) load() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorage, s.path, err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrStorage, s.path, err)
	}
	// Older documents may omit collections; every persisted document must
	// carry all four, possibly empty.
	if doc.Foods == nil {
		doc.Foods = []models.Food{}
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Cart == nil {
		doc.Cart = []models.CartLine{}
	}
	if doc.Orders == nil {
		doc.Orders = []models.Order{}
	}
	return &doc, nil
}

// persist writes the document to a temp file in the same directory and
// renames it over the target, so a crash mid-write never leaves a truncated
// document behind.
func (s *Store) persist(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal document: %v", ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrStorage, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write %s: %v", ErrStorage, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close %s: %v", ErrStorage, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: rename %s: %v", ErrStorage, tmp.Name(), err)
	}
	return nil
}
