package holiday

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEntryNotFound = errors.New("holiday schedule entry not found")
)

// ViolationKind identifies which holiday bookkeeping rule a request broke.
type ViolationKind string

const (
	ViolationDoubleCompensatory    ViolationKind = "double_compensatory"
	ViolationChainedCompensatory   ViolationKind = "chained_compensatory"
	ViolationInvalidOriginal       ViolationKind = "invalid_original_holiday"
	ViolationSameDateCompensatory  ViolationKind = "same_date_compensatory"
	ViolationSubstituteExists      ViolationKind = "substitute_already_exists"
	ViolationSubstituteExpired     ViolationKind = "substitute_expired"
	ViolationSubstituteAlreadyUsed ViolationKind = "substitute_already_used"
)

// RuleViolation is an expected, user-facing validation failure. No entry is
// persisted when one is returned.
type RuleViolation struct {
	Kind   ViolationKind
	Date   time.Time
	Reason string
}

func (v *RuleViolation) Error() string {
	return fmt.Sprintf("%s (%s): %s", v.Kind, v.Date.Format("2006-01-02"), v.Reason)
}

func NewViolation(kind ViolationKind, date time.Time, reason string) *RuleViolation {
	return &RuleViolation{Kind: kind, Date: date, Reason: reason}
}
