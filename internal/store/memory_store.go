package store

import (
	"context"
	"sort"
	"sync"

	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/models"
)

// memoryStore keeps records in a map guarded by a mutex. Identities grow
// monotonically and are never handed out twice, even after deletes.
type memoryStore[T any, P models.Record[T]] struct {
	mu      sync.RWMutex
	lastID  uint
	records map[uint]T
}

// NewMemoryStore creates a new in-process EntityStore.
func NewMemoryStore[T any, P models.Record[T]]() EntityStore[T] {
	return newMemoryStore[T, P]()
}

func newMemoryStore[T any, P models.Record[T]]() *memoryStore[T, P] {
	return &memoryStore[T, P]{records: make(map[uint]T)}
}

func (s *memoryStore[T, P]) Save(_ context.Context, rec *T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(rec), nil
}

func (s *memoryStore[T, P]) saveLocked(rec *T) *T {
	stored := *rec
	id := P(&stored).GetID()
	if id == 0 {
		s.lastID++
		id = s.lastID
		P(&stored).SetID(id)
	} else if id > s.lastID {
		s.lastID = id
	}
	s.records[id] = stored

	P(rec).SetID(id)
	out := stored
	return &out
}

func (s *memoryStore[T, P]) FindAll(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *memoryStore[T, P]) FindByID(_ context.Context, id uint) (*T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

func (s *memoryStore[T, P]) DeleteByID(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// memoryCredentialStore holds the store lock across the uniqueness check and
// the write, so concurrent saves cannot both claim a username.
type memoryCredentialStore struct {
	*memoryStore[models.User, *models.User]
}

// NewMemoryCredentialStore creates a new in-process CredentialStore.
func NewMemoryCredentialStore() CredentialStore {
	return &memoryCredentialStore{memoryStore: newMemoryStore[models.User, *models.User]()}
}

func (s *memoryCredentialStore) FindByUsername(_ context.Context, username string) (*models.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.records {
		if u.Username == username {
			user := u
			return &user, true, nil
		}
	}
	return nil, false, nil
}

func (s *memoryCredentialStore) Save(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.records {
		if u.Username == user.Username && id != user.ID {
			return nil, apperrors.ErrDuplicateUsername
		}
	}
	return s.saveLocked(user), nil
}
