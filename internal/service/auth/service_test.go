package auth

import (
	"context"
	"testing"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeTerminalRepo struct {
	terminals map[string]auth.Terminal
}

func (f *fakeTerminalRepo) GetByCode(ctx context.Context, terminalCode string) (auth.Terminal, error) {
	terminal, ok := f.terminals[terminalCode]
	if !ok {
		return auth.Terminal{}, auth.ErrTerminalNotFound
	}
	return terminal, nil
}

func newTestService(t *testing.T, active bool) auth.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("factory-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeTerminalRepo{terminals: map[string]auth.Terminal{
		"F1LINE3-02": {
			ID:           "term-1",
			TerminalCode: "F1LINE3-02",
			FactoryID:    "factory-1",
			SecretHash:   string(hash),
			IsActive:     active,
			CreatedAt:    time.Now(),
		},
	}}

	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	return NewAuthService(repo, jwtService)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t, true)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		TerminalCode: "F1LINE3-02",
		Secret:       "factory-secret",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "term-1", resp.TerminalID)
	assert.Equal(t, "factory-1", resp.FactoryID)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
}

func TestLogin_WrongSecret(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		TerminalCode: "F1LINE3-02",
		Secret:       "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownCodeReportsSameError(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		TerminalCode: "NOPE-01",
		Secret:       "factory-secret",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_DisabledTerminal(t *testing.T) {
	svc := newTestService(t, false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		TerminalCode: "F1LINE3-02",
		Secret:       "factory-secret",
	})
	assert.ErrorIs(t, err, auth.ErrTerminalDisabled)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{})
	assert.Error(t, err)
}
