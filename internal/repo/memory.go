package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-itinerary/internal/domain"
)

// memorySessionRepo keeps sessions in a map. Sessions are lost on restart.
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
	now      func() time.Time
}

// NewMemorySessionRepo returns an in-process SessionRepo, used when no
// DATABASE_URL is configured.
func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{
		sessions: make(map[uuid.UUID]domain.Session),
		now:      time.Now,
	}
}

func (r *memorySessionRepo) Create(_ context.Context, sess domain.Session) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess.ID = uuid.New()
	sess.CreatedAt = r.now().UTC()
	r.sessions[sess.ID] = sess
	return sess, nil
}

func (r *memorySessionRepo) Get(_ context.Context, id uuid.UUID) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("repo.memorySessionRepo.Get: %w", domain.ErrNotFound)
	}
	return sess, nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("repo.memorySessionRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.sessions, id)
	return nil
}

func (r *memorySessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, sess := range r.sessions {
		if sess.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
