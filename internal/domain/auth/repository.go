package auth

import "context"

// TerminalRepository defines data access for punch clock devices.
type TerminalRepository interface {
	// GetByCode retrieves a terminal by its device code. Returns
	// ErrTerminalNotFound when unknown.
	GetByCode(ctx context.Context, terminalCode string) (Terminal, error)
}

// AuthService authenticates punch terminals and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
