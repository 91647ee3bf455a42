// Package store persists match documents. The engine mutates a GameState in
// memory; between player decisions the serialized document is committed here
// with an optimistic version check, so two racing commits against the same
// match cannot silently interleave.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no match exists for the given ID.
	ErrNotFound = errors.New("match not found")

	// ErrVersionConflict is returned when a commit's expected version does
	// not match the stored one. The caller reloads and retries.
	ErrVersionConflict = errors.New("match version conflict")
)

// MatchDocument is one persisted match: the serialized game state plus the
// commit metadata around it.
type MatchDocument struct {
	MatchID   uuid.UUID       `json:"matchId"`
	Version   int64           `json:"version"`
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store is the persistence boundary for matches.
type Store interface {
	// Create inserts a new match at version 1.
	Create(ctx context.Context, matchID uuid.UUID, state json.RawMessage) (*MatchDocument, error)

	// Load returns the current document for a match.
	Load(ctx context.Context, matchID uuid.UUID) (*MatchDocument, error)

	// Commit replaces the state if the stored version equals expectedVersion,
	// returning the incremented document. Otherwise ErrVersionConflict.
	Commit(ctx context.Context, matchID uuid.UUID, expectedVersion int64, state json.RawMessage) (*MatchDocument, error)

	// Delete removes a match.
	Delete(ctx context.Context, matchID uuid.UUID) error
}
