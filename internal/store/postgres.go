package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const matchesSchema = `
CREATE TABLE IF NOT EXISTS matches (
	match_id   UUID PRIMARY KEY,
	version    BIGINT NOT NULL,
	state      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore persists match documents in a postgres table with an
// optimistic version column. Commit only writes when the stored version
// matches the one the caller loaded.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, matchesSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating matches table: %w", err)
	}
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Create(ctx context.Context, matchID uuid.UUID, state json.RawMessage) (*MatchDocument, error) {
	doc := &MatchDocument{
		MatchID:   matchID,
		Version:   1,
		State:     state,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO matches (match_id, version, state, updated_at) VALUES ($1, $2, $3, $4)`,
		doc.MatchID, doc.Version, doc.State, doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting match %s: %w", matchID, err)
	}
	s.logger.Info("match created", zap.String("matchId", matchID.String()))
	return doc, nil
}

func (s *PostgresStore) Load(ctx context.Context, matchID uuid.UUID) (*MatchDocument, error) {
	doc := &MatchDocument{MatchID: matchID}
	err := s.pool.QueryRow(ctx,
		`SELECT version, state, updated_at FROM matches WHERE match_id = $1`,
		matchID).Scan(&doc.Version, &doc.State, &doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading match %s: %w", matchID, err)
	}
	return doc, nil
}

func (s *PostgresStore) Commit(ctx context.Context, matchID uuid.UUID, expectedVersion int64, state json.RawMessage) (*MatchDocument, error) {
	now := time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE matches SET version = version + 1, state = $1, updated_at = $2
		 WHERE match_id = $3 AND version = $4`,
		state, now, matchID, expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("committing match %s: %w", matchID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a stale version.
		var current int64
		err := s.pool.QueryRow(ctx,
			`SELECT version FROM matches WHERE match_id = $1`, matchID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("checking match %s after failed commit: %w", matchID, err)
		}
		return nil, fmt.Errorf("expected version %d, have %d: %w", expectedVersion, current, ErrVersionConflict)
	}
	s.logger.Debug("match committed",
		zap.String("matchId", matchID.String()),
		zap.Int64("version", expectedVersion+1))
	return &MatchDocument{
		MatchID:   matchID,
		Version:   expectedVersion + 1,
		State:     state,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) Delete(ctx context.Context, matchID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM matches WHERE match_id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("deleting match %s: %w", matchID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	s.logger.Info("match deleted", zap.String("matchId", matchID.String()))
	return nil
}
