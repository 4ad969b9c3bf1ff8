package model

import "time"

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// AccessToken is a signed, time-bounded bearer token bound to a username.
type AccessToken struct {
	Token     string
	Type      string
	Subject   string
	ExpiresAt time.Time
}
