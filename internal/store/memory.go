package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps match documents in process memory. It is the store the
// CLI and tests run against, and the reference behavior the postgres store
// mirrors.
type MemoryStore struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]*MatchDocument
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{matches: make(map[uuid.UUID]*MatchDocument)}
}

func (s *MemoryStore) Create(ctx context.Context, matchID uuid.UUID, state json.RawMessage) (*MatchDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.matches[matchID]; exists {
		return nil, fmt.Errorf("match %s already exists", matchID)
	}
	doc := &MatchDocument{
		MatchID:   matchID,
		Version:   1,
		State:     append(json.RawMessage(nil), state...),
		UpdatedAt: time.Now().UTC(),
	}
	s.matches[matchID] = doc
	return copyDoc(doc), nil
}

func (s *MemoryStore) Load(ctx context.Context, matchID uuid.UUID) (*MatchDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, found := s.matches[matchID]
	if !found {
		return nil, ErrNotFound
	}
	return copyDoc(doc), nil
}

func (s *MemoryStore) Commit(ctx context.Context, matchID uuid.UUID, expectedVersion int64, state json.RawMessage) (*MatchDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, found := s.matches[matchID]
	if !found {
		return nil, ErrNotFound
	}
	if doc.Version != expectedVersion {
		return nil, fmt.Errorf("expected version %d, have %d: %w", expectedVersion, doc.Version, ErrVersionConflict)
	}
	doc.Version++
	doc.State = append(json.RawMessage(nil), state...)
	doc.UpdatedAt = time.Now().UTC()
	return copyDoc(doc), nil
}

func (s *MemoryStore) Delete(ctx context.Context, matchID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.matches[matchID]; !found {
		return ErrNotFound
	}
	delete(s.matches, matchID)
	return nil
}

func copyDoc(doc *MatchDocument) *MatchDocument {
	out := *doc
	out.State = append(json.RawMessage(nil), doc.State...)
	return &out
}
