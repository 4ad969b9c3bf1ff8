package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*UserRepo)(nil)

// UserRepo is a persistent CredentialStore. Passwords are stored exactly as
// sealed by the configured CredentialVerifier.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts user under user.Username.
func (r *UserRepo) Create(ctx context.Context, user model.User) error {
	const query = `INSERT INTO users (lookup_key, username, password) VALUES (?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query, user.Username, user.Username, user.Password)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %q: %w", user.Username, driven.ErrUserAlreadyExists)
		}
		return fmt.Errorf("create user %q: %w", user.Username, err)
	}

	return nil
}

// Get returns the record stored under key.
func (r *UserRepo) Get(ctx context.Context, key string) (*model.User, error) {
	const query = `SELECT username, password FROM users WHERE lookup_key = ?`

	var user model.User
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user %q: %w", key, driven.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", key, err)
	}

	return &user, nil
}

// Update replaces username and password of the record stored under key.
func (r *UserRepo) Update(ctx context.Context, key string, user model.User) error {
	const query = `UPDATE users SET username = ?, password = ? WHERE lookup_key = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, user.Username, user.Password, key)
	if err != nil {
		return fmt.Errorf("update user %q: %w", key, err)
	}

	return requireAffected(result, fmt.Errorf("update user %q: %w", key, driven.ErrUserNotFound))
}

// Delete removes the record stored under key.
func (r *UserRepo) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM users WHERE lookup_key = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("delete user %q: %w", key, err)
	}

	return requireAffected(result, fmt.Errorf("delete user %q: %w", key, driven.ErrUserNotFound))
}

// List returns every lookup key in insertion order.
func (r *UserRepo) List(ctx context.Context) ([]string, error) {
	const query = `SELECT lookup_key FROM users ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan user key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return keys, nil
}

// requireAffected returns notFound when result touched no rows.
func requireAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
