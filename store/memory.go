package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps everything in process memory. It is what tests and
// experiments use when nothing needs to outlive the process.
type MemoryStore struct {
	mu    sync.Mutex
	user  *User
	stats map[string]Stats
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stats: make(map[string]Stats),
		now:   time.Now,
	}
}

func (s *MemoryStore) GetOrCreateUser(ctx context.Context) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		u := NewAnonymousUser(s.now())
		s.user = &u
	}
	return *s.user, nil
}

func (s *MemoryStore) RenameUser(ctx context.Context, userID, username string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	name, err := ValidateUsername(username)
	if err != nil {
		return User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || s.user.ID != userID {
		return User{}, ErrNotFound
	}
	s.user.Username = name
	return *s.user, nil
}

func (s *MemoryStore) GetStats(ctx context.Context, userID string) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats[userID], nil
}

func (s *MemoryStore) RecordResult(ctx context.Context, userID string, result Result) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.stats[userID].Apply(result)
	s.stats[userID] = updated
	return updated, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
