package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

type terminalRepository struct {
	db *database.DB
}

func NewTerminalRepository(db *database.DB) auth.TerminalRepository {
	return &terminalRepository{db: db}
}

// GetByCode implements auth.TerminalRepository.
func (t *terminalRepository) GetByCode(ctx context.Context, terminalCode string) (auth.Terminal, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, terminal_code, factory_id, secret_hash, is_active, created_at, updated_at
		FROM terminals
		WHERE terminal_code = $1
	`

	var terminal auth.Terminal
	err := q.QueryRow(ctx, query, terminalCode).Scan(
		&terminal.ID,
		&terminal.TerminalCode,
		&terminal.FactoryID,
		&terminal.SecretHash,
		&terminal.IsActive,
		&terminal.CreatedAt,
		&terminal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Terminal{}, auth.ErrTerminalNotFound
		}
		return auth.Terminal{}, fmt.Errorf("failed to get terminal: %w", err)
	}
	return terminal, nil
}
