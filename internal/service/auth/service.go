package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/kintai-works/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	auth.TerminalRepository
	jwtService jwt.Service
}

func NewAuthService(terminalRepo auth.TerminalRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		TerminalRepository: terminalRepo,
		jwtService:         jwtService,
	}
}

// Login implements auth.AuthService. Terminals are devices, not people: a
// failed secret check reports the same error as an unknown code so a probing
// client cannot enumerate terminal codes.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	terminal, err := a.TerminalRepository.GetByCode(ctx, req.TerminalCode)
	if err != nil {
		if errors.Is(err, auth.ErrTerminalNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get terminal: %w", err)
	}

	if !terminal.IsActive {
		return auth.LoginResponse{}, auth.ErrTerminalDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(terminal.SecretHash), []byte(req.Secret)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(terminal.ID, terminal.TerminalCode, terminal.FactoryID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TerminalID:  terminal.ID,
		FactoryID:   terminal.FactoryID,
	}, nil
}
