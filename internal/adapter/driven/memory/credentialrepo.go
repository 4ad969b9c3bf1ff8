// Package memory provides in-process implementations of driven ports.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is an in-memory CredentialStore. Contents are lost when the
// process exits. All access is serialized through a read/write mutex.
type CredentialRepo struct {
	mu    sync.RWMutex
	users map[string]model.User
	keys  []string // insertion order
}

// NewCredentialRepo creates an empty CredentialRepo.
func NewCredentialRepo() *CredentialRepo {
	return &CredentialRepo{users: make(map[string]model.User)}
}

// Create stores user under user.Username.
func (r *CredentialRepo) Create(_ context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("create user %q: %w", user.Username, driven.ErrUserAlreadyExists)
	}
	r.users[user.Username] = user
	r.keys = append(r.keys, user.Username)
	return nil
}

// Get returns a copy of the record stored under key.
func (r *CredentialRepo) Get(_ context.Context, key string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[key]
	if !ok {
		return nil, fmt.Errorf("get user %q: %w", key, driven.ErrUserNotFound)
	}
	return &user, nil
}

// Update replaces the record stored under key.
func (r *CredentialRepo) Update(_ context.Context, key string, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[key]; !ok {
		return fmt.Errorf("update user %q: %w", key, driven.ErrUserNotFound)
	}
	r.users[key] = user
	return nil
}

// Delete removes the record stored under key.
func (r *CredentialRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[key]; !ok {
		return fmt.Errorf("delete user %q: %w", key, driven.ErrUserNotFound)
	}
	delete(r.users, key)
	r.keys = slices.DeleteFunc(r.keys, func(k string) bool { return k == key })
	return nil
}

// List returns all keys in insertion order.
func (r *CredentialRepo) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.keys), nil
}
