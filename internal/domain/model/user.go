package model

// User is a registered account. Password holds whatever the configured
// CredentialVerifier produced when the account was sealed: the password itself
// for the plaintext scheme, a bcrypt hash otherwise.
type User struct {
	Username string
	Password string
}
