package application

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
)

// Password schemes accepted by NewCredentialVerifier.
const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.CredentialVerifier = PlaintextVerifier{}
	_ driven.CredentialVerifier = BcryptVerifier{}
)

// NewCredentialVerifier returns the verifier for the named scheme.
func NewCredentialVerifier(scheme string) (driven.CredentialVerifier, error) {
	switch scheme {
	case SchemePlaintext, "":
		return PlaintextVerifier{}, nil
	case SchemeBcrypt:
		return BcryptVerifier{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// PlaintextVerifier stores passwords as given. It matches the behaviour of
// existing deployments; new ones should use BcryptVerifier.
type PlaintextVerifier struct{}

// Seal returns password unchanged.
func (PlaintextVerifier) Seal(password string) (string, error) {
	return password, nil
}

// Verify compares in constant time.
func (PlaintextVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// BcryptVerifier stores salted bcrypt hashes.
type BcryptVerifier struct {
	Cost int
}

// Seal hashes password with the configured cost.
func (v BcryptVerifier) Seal(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether presented hashes to stored.
func (BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}
