package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
)

// AccountService combines the credential store, the credential verifier and
// the token service into the account and authentication operations exposed
// over HTTP. Every protected call is verified independently; there is no
// session state.
type AccountService struct {
	store    driven.CredentialStore
	verifier driven.CredentialVerifier
	tokens   *TokenService
}

// NewAccountService creates a new AccountService with the required dependencies.
func NewAccountService(store driven.CredentialStore, verifier driven.CredentialVerifier, tokens *TokenService) *AccountService {
	return &AccountService{
		store:    store,
		verifier: verifier,
		tokens:   tokens,
	}
}

// Register creates an account. Returns driven.ErrUserAlreadyExists if the
// username is taken; the existing record is left untouched.
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	sealed, err := s.verifier.Seal(password)
	if err != nil {
		return err
	}
	return s.store.Create(ctx, model.User{Username: username, Password: sealed})
}

// ListUsernames returns the lookup key of every account.
func (s *AccountService) ListUsernames(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// Get returns the account stored under key.
func (s *AccountService) Get(ctx context.Context, key string) (*model.User, error) {
	return s.store.Get(ctx, key)
}

// Replace overwrites the account stored under key with a new username and
// password. The key keeps addressing the record afterwards.
func (s *AccountService) Replace(ctx context.Context, key, username, password string) error {
	sealed, err := s.verifier.Seal(password)
	if err != nil {
		return err
	}
	return s.store.Update(ctx, key, model.User{Username: username, Password: sealed})
}

// Delete removes the account stored under key.
func (s *AccountService) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

// Authenticate checks username and password and issues a token on success.
// An unknown username and a wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (model.AccessToken, error) {
	user, err := s.store.Get(ctx, username)
	if errors.Is(err, driven.ErrUserNotFound) {
		return model.AccessToken{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.AccessToken{}, fmt.Errorf("load user %q: %w", username, err)
	}

	if !s.verifier.Verify(user.Password, password) {
		return model.AccessToken{}, ErrInvalidCredentials
	}

	return s.tokens.Issue(username)
}

// Authorize verifies a presented token and returns the username it carries.
func (s *AccountService) Authorize(token string) (string, error) {
	return s.tokens.Verify(token)
}
