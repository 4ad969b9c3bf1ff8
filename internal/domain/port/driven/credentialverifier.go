package driven

// CredentialVerifier turns a presented password into the form kept by a
// CredentialStore and checks presented passwords against it. Swapping the
// implementation changes the storage scheme without touching callers.
type CredentialVerifier interface {
	// Seal returns the value to store for password.
	Seal(password string) (string, error)

	// Verify reports whether presented matches the stored value.
	Verify(stored, presented string) bool
}
