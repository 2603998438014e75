package allowance

import "context"

// AllowanceRuleRepository defines data access for allowance rule configuration.
type AllowanceRuleRepository interface {
	// GetActiveByCategory retrieves all active rules for one category.
	GetActiveByCategory(ctx context.Context, category Category) ([]AllowanceRule, error)

	// Create inserts a rule. Used by the fixtures seeder.
	Create(ctx context.Context, rule AllowanceRule) (AllowanceRule, error)
}
