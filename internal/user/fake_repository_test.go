package user_test

import (
	"context"
	"sync"

	"github.com/saulo-duarte/quizzer/internal/user"
)

// memoryRepository enforces the same unique indexes as the users table.
type memoryRepository struct {
	mu     sync.Mutex
	nextID uint
	rows   []user.User

	// hideExisting makes lookups miss so the insert-time constraint is exercised.
	hideExisting bool
	failWith     error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 1}
}

func (r *memoryRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	for _, row := range r.rows {
		if row.Username == u.Username {
			return user.ErrDuplicateUsername
		}
		if row.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, *u)
	return nil
}

func (r *memoryRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return r.find(func(u user.User) bool { return u.Username == username })
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return r.find(func(u user.User) bool { return u.Email == email })
}

func (r *memoryRepository) find(match func(user.User) bool) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	if r.hideExisting {
		return nil, nil
	}
	for _, row := range r.rows {
		if match(row) {
			u := row
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
