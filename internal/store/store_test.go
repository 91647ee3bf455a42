package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndLoad(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	matchID := uuid.New()

	created, err := s.Create(ctx, matchID, json.RawMessage(`{"turn":1}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	loaded, err := s.Load(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, matchID, loaded.MatchID)
	assert.JSONEq(t, `{"turn":1}`, string(loaded.State))
}

func TestMemoryStoreDuplicateCreate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	matchID := uuid.New()

	_, err := s.Create(ctx, matchID, json.RawMessage(`{}`))
	require.NoError(t, err)

	_, err = s.Create(ctx, matchID, json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestMemoryStoreCommitBumpsVersion(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	matchID := uuid.New()

	_, err := s.Create(ctx, matchID, json.RawMessage(`{"turn":1}`))
	require.NoError(t, err)

	doc, err := s.Commit(ctx, matchID, 1, json.RawMessage(`{"turn":2}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.Version)

	loaded, err := s.Load(ctx, matchID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"turn":2}`, string(loaded.State))
}

func TestMemoryStoreCommitVersionConflict(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	matchID := uuid.New()

	_, err := s.Create(ctx, matchID, json.RawMessage(`{"turn":1}`))
	require.NoError(t, err)

	_, err = s.Commit(ctx, matchID, 1, json.RawMessage(`{"turn":2}`))
	require.NoError(t, err)

	// A writer holding the stale version must not clobber the newer state.
	_, err = s.Commit(ctx, matchID, 1, json.RawMessage(`{"turn":99}`))
	assert.ErrorIs(t, err, ErrVersionConflict)

	loaded, err := s.Load(ctx, matchID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"turn":2}`, string(loaded.State))
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Load(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Commit(ctx, uuid.New(), 1, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, uuid.New()), ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	matchID := uuid.New()

	_, err := s.Create(ctx, matchID, json.RawMessage(`{}`))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, matchID))

	_, err = s.Load(ctx, matchID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesState(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	matchID := uuid.New()

	state := []byte(`{"turn":1}`)
	_, err := s.Create(ctx, matchID, state)
	require.NoError(t, err)

	// Mutating the caller's buffer must not reach the stored document.
	state[9] = '9'

	loaded, err := s.Load(ctx, matchID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"turn":1}`, string(loaded.State))
}
