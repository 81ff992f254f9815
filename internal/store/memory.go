package store

import (
	"context"
	"strings"
	"sync"

	"creditline/internal/domain"
)

// MemoryStore keeps every record in process memory. Contents are lost on
// restart. It is safe for concurrent use.
type MemoryStore struct {
	mu           sync.RWMutex
	applications []domain.Application // Insertion order
	appIndex     map[string]int       // id -> position in applications
	users        []domain.User
	userIndex    map[string]int // case-folded email -> position in users
}

var _ Repository = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		appIndex:  make(map[string]int),
		userIndex: make(map[string]int),
	}
}

func (s *MemoryStore) ListApplications(_ context.Context) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Application, 0, len(s.applications))
	for _, app := range s.applications {
		out = append(out, app.Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetApplication(_ context.Context, id string) (domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.appIndex[id]
	if !ok {
		return domain.Application{}, applicationNotFound(id)
	}
	return s.applications[idx].Clone(), nil
}

func (s *MemoryStore) ListApplicationsByEmail(_ context.Context, email string) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Application{}
	for _, app := range s.applications {
		if strings.EqualFold(app.Email, email) {
			out = append(out, app.Clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateApplication(_ context.Context, app domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.appIndex[app.ID]; exists {
		return domain.NewConflictError("Application " + app.ID + " already exists")
	}
	s.appIndex[app.ID] = len(s.applications)
	s.applications = append(s.applications, app.Clone())
	return nil
}

func (s *MemoryStore) SaveApplication(_ context.Context, app domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.appIndex[app.ID]
	if !ok {
		return applicationNotFound(app.ID)
	}
	s.applications[idx] = app.Clone()
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.userIndex[strings.ToLower(email)]
	if !ok {
		return domain.User{}, userNotFound(email)
	}
	return s.users[idx], nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := s.userIndex[key]; exists {
		return domain.NewConflictError("Email already registered")
	}
	s.userIndex[key] = len(s.users)
	s.users = append(s.users, user)
	return nil
}
