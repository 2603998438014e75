package auth

import "time"

// Terminal is a registered punch clock device. Terminals authenticate with a
// shared secret and receive a short-lived token scoped to their factory.
type Terminal struct {
	ID           string
	TerminalCode string
	FactoryID    string
	SecretHash   string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
