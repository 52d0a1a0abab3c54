// Package repo holds the only state this app keeps itself: signed-in sessions.
// Trips and activities live in the trips API and are never stored here.
// Each store has an interface and a Postgres implementation; memory.go has an
// in-process implementation for development and tests.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-itinerary/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SessionRepo defines the persistence operations for Sessions.
type SessionRepo interface {
	// Create stores a new session and returns it with ID and CreatedAt set.
	Create(ctx context.Context, sess domain.Session) (domain.Session, error)

	// Get returns the session with the given ID.
	// Returns domain.ErrNotFound if no such session exists.
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)

	// Delete removes a session. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes every session whose expiry is at or before now
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// pgSessionRepo is the Postgres implementation of SessionRepo.
type pgSessionRepo struct {
	db db
}

// NewSessionRepo constructs a SessionRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSessionRepo(db db) SessionRepo {
	return &pgSessionRepo{db: db}
}

// Create inserts a session row and returns the persisted record.
func (r *pgSessionRepo) Create(ctx context.Context, sess domain.Session) (domain.Session, error) {
	const q = `
		INSERT INTO sessions (username, api_token, expires_at)
		VALUES (@username, @api_token, @expires_at)
		RETURNING id, username, api_token, created_at, expires_at`

	args := pgx.NamedArgs{
		"username":   sess.Username,
		"api_token":  sess.Token,
		"expires_at": sess.ExpiresAt,
	}

	result, err := scanSession(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}
	return result, nil
}

// Get retrieves a session by primary key.
func (r *pgSessionRepo) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	const q = `
		SELECT id, username, api_token, created_at, expires_at
		FROM sessions
		WHERE id = @id`

	result, err := scanSession(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Get: %w", err)
	}
	return result, nil
}

// Delete removes a session by primary key.
func (r *pgSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM sessions WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteExpired prunes sessions past their expiry.
func (r *pgSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `DELETE FROM sessions WHERE expires_at <= @now`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"now": now})
	if err != nil {
		return 0, fmt.Errorf("repo.SessionRepo.DeleteExpired: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanSession maps a single database row into a domain.Session.
func scanSession(s scanner) (domain.Session, error) {
	var (
		sess domain.Session
		id   pgtype.UUID
	)

	err := s.Scan(&id, &sess.Username, &sess.Token, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, err
	}

	sess.ID = uuid.UUID(id.Bytes)
	return sess, nil
}
