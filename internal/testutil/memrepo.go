// Package testutil provides in-memory fakes shared by tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/apitemplate/go-user-api/internal/domain/entity"
	"github.com/apitemplate/go-user-api/internal/domain/repository"
)

// MemoryUserRepo is an in-memory repository.UserRepository mirroring the
// Mongo implementation's semantics: unique case-insensitive email, password
// excluded from GetByID and List, password persisted on Update only when set.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
	seq   int
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]entity.User)}
}

func (r *MemoryUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.users {
		if strings.EqualFold(ex.Email, u.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%04d", r.seq)
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Password = ""
	return &u, nil
}

func (r *MemoryUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MemoryUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, ex := range r.users {
		if id != u.ID && strings.EqualFold(ex.Email, u.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	stored.Name = u.Name
	stored.Email = u.Email
	if u.Password != "" {
		stored.Password = u.Password
	}
	if u.AvatarURL != "" {
		stored.AvatarURL = u.AvatarURL
	}
	stored.UpdatedAt = time.Now().UTC()
	r.users[u.ID] = stored
	u.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *MemoryUserRepo) List(_ context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		u.Password = ""
		out = append(out, u)
	}
	return out, nil
}

var _ repository.UserRepository = (*MemoryUserRepo)(nil)
