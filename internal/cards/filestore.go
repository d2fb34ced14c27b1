package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// FileStore keeps cards in a single JSON file keyed by lowercased
// name. It suits small local card pools and test fixtures; the full
// catalog belongs in the SQLite or Postgres store.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	cards map[string]*RawCard
}

// NewFileStore opens the JSON file at path, creating an empty store
// if the file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{path: path, cards: make(map[string]*RawCard)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read card file: %w", err)
	}
	if err := json.Unmarshal(data, &store.cards); err != nil {
		return nil, fmt.Errorf("parse card file %s: %w", path, err)
	}
	return store, nil
}

func (s *FileStore) Get(_ context.Context, name string) (*RawCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[strings.ToLower(name)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *card
	return &copied, nil
}

func (s *FileStore) Put(_ context.Context, card *RawCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *card
	s.cards[strings.ToLower(card.Name)] = &copied
	return s.flushLocked()
}

// ImportFile merges every card from another JSON card file into the
// store and reports how many records were added or replaced.
func (s *FileStore) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read import file: %w", err)
	}
	incoming := make(map[string]*RawCard)
	if err := json.Unmarshal(data, &incoming); err != nil {
		// Tolerate plain arrays as well as keyed maps.
		var list []*RawCard
		if err := json.Unmarshal(data, &list); err != nil {
			return 0, fmt.Errorf("parse import file %s: %w", path, err)
		}
		for _, card := range list {
			incoming[strings.ToLower(card.Name)] = card
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, card := range incoming {
		s.cards[key] = card
	}
	if err := s.flushLocked(); err != nil {
		return 0, err
	}
	return len(incoming), nil
}

// Len reports the number of stored cards.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.cards, "", "  ")
	if err != nil {
		return fmt.Errorf("encode card file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write card file: %w", err)
	}
	return nil
}
