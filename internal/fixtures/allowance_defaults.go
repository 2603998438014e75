package fixtures

import (
	"github.com/kintai-works/kintai-backend-go/internal/domain/allowance"
	"github.com/shopspring/decimal"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

// ==========================================
// DEFAULT ALLOWANCE RULES
// ==========================================

// GetDefaultAllowanceRules returns the standard factory allowance rule set.
// Rate based categories (overtime, night work, holiday work) carry their
// premium on the rule for reporting; the calculator applies the statutory
// rates itself. Early work and night shift rules are the ones the calculator
// reads: fixed per-day amounts in yen.
func GetDefaultAllowanceRules() []allowance.AllowanceRule {
	return []allowance.AllowanceRule{
		{
			Category:        allowance.CategoryOvertime,
			ConditionType:   allowance.ConditionHoursThreshold,
			ConditionValue:  strPtr("480"),
			CalculationType: allowance.CalculationRate,
			Rate:            decimal.NewFromFloat(0.25),
			IsActive:        true,
		},
		{
			Category:        allowance.CategoryNightWork,
			ConditionType:   allowance.ConditionTimeRange,
			ConditionValue:  strPtr("22:00-05:00"),
			CalculationType: allowance.CalculationRate,
			Rate:            decimal.NewFromFloat(0.25),
			IsActive:        true,
		},
		{
			Category:        allowance.CategoryHolidayWork,
			ConditionType:   allowance.ConditionHoliday,
			CalculationType: allowance.CalculationRate,
			Rate:            decimal.NewFromFloat(0.35),
			IsActive:        true,
		},

		// Early arrival before the first shift window
		{
			Category:        allowance.CategoryEarlyWork,
			ConditionType:   allowance.ConditionTimeRange,
			ConditionValue:  strPtr("05:00-07:00"),
			CalculationType: allowance.CalculationFixedAmount,
			Amount:          decimal.NewFromInt(500),
			IsActive:        true,
		},
		{
			Category:        allowance.CategoryEarlyWork,
			ConditionType:   allowance.ConditionTimeRange,
			ConditionValue:  strPtr("07:00-08:00"),
			CalculationType: allowance.CalculationFixedAmount,
			Amount:          decimal.NewFromInt(300),
			IsActive:        true,
		},

		// Flat per-day premium for employees assigned to the night shift
		{
			Category:        allowance.CategoryNightShift,
			ConditionType:   allowance.ConditionShift,
			ConditionValue:  strPtr("night"),
			CalculationType: allowance.CalculationFixedAmount,
			Amount:          decimal.NewFromInt(1000),
			IsActive:        true,
		},
	}
}
