package holiday

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleType classifies a schedule entry. A "holiday" entry for a date is
// what makes that date a recognized holiday; the static calendar is only a
// fallback.
type ScheduleType string

const (
	TypeShift           ScheduleType = "shift"
	TypeHoliday         ScheduleType = "holiday"
	TypePaidLeave       ScheduleType = "paid_leave"
	TypeAbsence         ScheduleType = "absence"
	TypeCompensatory    ScheduleType = "compensatory"
	TypeSubstitute      ScheduleType = "substitute"
	TypeCondolenceLeave ScheduleType = "condolence_leave"
	TypeHolidayWork     ScheduleType = "holiday_work"
)

// CompensatoryType distinguishes the two holiday-swap flavors: furikyu
// (compensatory, arranged in advance, no premium) and daikyu (substitute,
// granted after the fact, premium still owed).
type CompensatoryType string

const (
	CompensatorySwap CompensatoryType = "compensatory"
	SubstituteSwap   CompensatoryType = "substitute"
)

// Status is the lifecycle state of a schedule entry.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// BusinessRules is the free-form per-entry rule map, stored as JSONB.
type BusinessRules struct {
	AllowanceRate *decimal.Decimal `json:"allowance_rate,omitempty"`
	ExpiryDays    *int             `json:"expiry_days,omitempty"`
	ExemptionType string           `json:"exemption_type,omitempty"`
}

// Value implements driver.Valuer for JSONB storage.
func (br BusinessRules) Value() (driver.Value, error) {
	return json.Marshal(br)
}

// Scan implements sql.Scanner for JSONB storage.
func (br *BusinessRules) Scan(value interface{}) error {
	if value == nil {
		*br = BusinessRules{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("business_rules: unsupported scan type")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, br)
}

// ScheduleEntry is one holiday bookkeeping record. Date fields never change
// after creation; cancellation flips IsActive, history is never deleted.
type ScheduleEntry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Type       ScheduleType

	IsCompensatory   bool
	OriginalDate     *time.Time
	CompensatoryType *CompensatoryType

	Status        Status
	BusinessRules BusinessRules
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSubstituteRate is the holiday-work premium a substitute entry stores
// when the request carries no override.
var DefaultSubstituteRate = decimal.NewFromFloat(0.35)

// DefaultSubstituteExpiryDays is the window within which a scheduled
// substitute day off must be taken.
const DefaultSubstituteExpiryDays = 60

// PremiumRate returns the entry's stored allowance rate, falling back to the
// statutory default.
func (e *ScheduleEntry) PremiumRate() decimal.Decimal {
	if e.BusinessRules.AllowanceRate != nil {
		return *e.BusinessRules.AllowanceRate
	}
	return DefaultSubstituteRate
}

// ExpiresAt returns the last day the substitute day off may still be used.
// ok is false for entries without an original date.
func (e *ScheduleEntry) ExpiresAt() (time.Time, bool) {
	if e.OriginalDate == nil {
		return time.Time{}, false
	}
	days := DefaultSubstituteExpiryDays
	if e.BusinessRules.ExpiryDays != nil {
		days = *e.BusinessRules.ExpiryDays
	}
	return e.OriginalDate.AddDate(0, 0, days), true
}
