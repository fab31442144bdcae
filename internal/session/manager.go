// Package session owns the client's authenticated state and its durable cache.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizzer/internal/client"
)

var ErrNotAuthenticated = errors.New("not logged in")

// Authenticator is the part of the API the manager needs.
type Authenticator interface {
	Register(ctx context.Context, username, password, email string) (*client.AuthResult, error)
	Login(ctx context.Context, username, password string) (*client.AuthResult, error)
	ValidateToken(ctx context.Context, token string) (*client.User, error)
}

type Manager struct {
	mu    sync.RWMutex
	store Storage
	auth  Authenticator
	log   *logrus.Entry

	token string
	user  *client.User
}

type Option func(*Manager)

func WithLogger(log *logrus.Entry) Option {
	return func(m *Manager) { m.log = log }
}

func NewManager(store Storage, auth Authenticator, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		auth:  auth,
		log:   logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore loads the cached credentials and keeps them only if the server still
// accepts the token for the same user. It returns false with a nil error when
// nothing was cached. Any failure clears the cache.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	token, user, found, err := m.readCache(ctx)
	if err != nil || !found {
		m.reset(ctx)
		return false, err
	}

	verified, err := m.auth.ValidateToken(ctx, token)
	if err != nil {
		m.log.WithError(err).Info("Cached session rejected, clearing")
		m.reset(ctx)
		return false, err
	}
	if verified.ID != user.ID {
		m.reset(ctx)
		return false, fmt.Errorf("cached user %d does not match token subject %d", user.ID, verified.ID)
	}

	m.mu.Lock()
	m.token, m.user = token, user
	m.mu.Unlock()
	return true, nil
}

func (m *Manager) Login(ctx context.Context, username, password string) (client.User, error) {
	res, err := m.auth.Login(ctx, username, password)
	return m.adopt(ctx, res, err)
}

func (m *Manager) Register(ctx context.Context, username, password, email string) (client.User, error) {
	res, err := m.auth.Register(ctx, username, password, email)
	return m.adopt(ctx, res, err)
}

// Logout forgets the session locally. Memory state is always cleared even when
// the storage backend fails.
func (m *Manager) Logout(ctx context.Context) error {
	return m.clear(ctx)
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) User() (client.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return client.User{}, false
	}
	return *m.user, true
}

func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != "" && m.user != nil
}

// RequireToken returns the bearer token or ErrNotAuthenticated.
func (m *Manager) RequireToken() (string, error) {
	if !m.Authenticated() {
		return "", ErrNotAuthenticated
	}
	return m.Token(), nil
}

func (m *Manager) adopt(ctx context.Context, res *client.AuthResult, err error) (client.User, error) {
	if err != nil {
		m.reset(ctx)
		return client.User{}, err
	}

	userJSON, err := json.Marshal(res.User)
	if err != nil {
		m.reset(ctx)
		return client.User{}, err
	}
	if err := m.store.Set(ctx, KeyToken, res.Token); err != nil {
		m.reset(ctx)
		return client.User{}, fmt.Errorf("cache token: %w", err)
	}
	if err := m.store.Set(ctx, KeyUser, string(userJSON)); err != nil {
		m.reset(ctx)
		return client.User{}, fmt.Errorf("cache user: %w", err)
	}

	user := res.User
	m.mu.Lock()
	m.token, m.user = res.Token, &user
	m.mu.Unlock()
	return user, nil
}

func (m *Manager) readCache(ctx context.Context) (string, *client.User, bool, error) {
	token, ok, err := m.store.Get(ctx, KeyToken)
	if err != nil || !ok || token == "" {
		return "", nil, false, err
	}
	raw, ok, err := m.store.Get(ctx, KeyUser)
	if err != nil || !ok {
		return "", nil, false, err
	}
	var user client.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return "", nil, false, fmt.Errorf("decode cached user: %w", err)
	}
	return token, &user, true, nil
}

// reset clears the session after a failure; a storage error is only logged so
// the original failure stays the one reported.
func (m *Manager) reset(ctx context.Context) {
	if err := m.clear(ctx); err != nil {
		m.log.WithError(err).Error("Failed to clear cached session")
	}
}

func (m *Manager) clear(ctx context.Context) error {
	m.mu.Lock()
	m.token, m.user = "", nil
	m.mu.Unlock()

	return errors.Join(
		m.store.Delete(ctx, KeyToken),
		m.store.Delete(ctx, KeyUser),
	)
}
