package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kintai-works/kintai-backend-go/internal/domain/allowance"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

type allowanceRuleRepository struct {
	db *database.DB
}

func NewAllowanceRuleRepository(db *database.DB) allowance.AllowanceRuleRepository {
	return &allowanceRuleRepository{db: db}
}

// GetActiveByCategory implements allowance.AllowanceRuleRepository.
func (a *allowanceRuleRepository) GetActiveByCategory(ctx context.Context, category allowance.Category) ([]allowance.AllowanceRule, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, category, condition_type, condition_value, calculation_type,
		       amount, rate, is_active, created_at, updated_at
		FROM allowance_rules
		WHERE category = $1 AND is_active = TRUE
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to get allowance rules: %w", err)
	}
	defer rows.Close()

	var rules []allowance.AllowanceRule
	for rows.Next() {
		var rule allowance.AllowanceRule
		if err := rows.Scan(
			&rule.ID, &rule.Category, &rule.ConditionType, &rule.ConditionValue, &rule.CalculationType,
			&rule.Amount, &rule.Rate, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan allowance rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allowance rules: %w", err)
	}
	return rules, nil
}

// Create implements allowance.AllowanceRuleRepository.
func (a *allowanceRuleRepository) Create(ctx context.Context, rule allowance.AllowanceRule) (allowance.AllowanceRule, error) {
	q := GetQuerier(ctx, a.db)

	rule.ID = uuid.NewString()
	query := `
		INSERT INTO allowance_rules (
			id, category, condition_type, condition_value, calculation_type,
			amount, rate, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rule.ID, string(rule.Category), string(rule.ConditionType), rule.ConditionValue,
		string(rule.CalculationType), rule.Amount, rule.Rate, rule.IsActive,
	).Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return allowance.AllowanceRule{}, fmt.Errorf("failed to create allowance rule: %w", err)
	}
	return rule, nil
}
