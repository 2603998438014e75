package holiday

import (
	"context"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/holiday"
)

// StaticCalendar is the fallback holiday calendar: a fixed table of national
// holidays, keyed by date. It backs IsHoliday only when no holiday-type
// schedule entry covers the date.
type StaticCalendar struct {
	dates map[string]bool
}

// NewStaticCalendar returns a calendar over the given dates (YYYY-MM-DD).
func NewStaticCalendar(dates []string) *StaticCalendar {
	m := make(map[string]bool, len(dates))
	for _, d := range dates {
		m[d] = true
	}
	return &StaticCalendar{dates: m}
}

// NewJapanCalendar2025 returns the national holiday table for 2025.
func NewJapanCalendar2025() *StaticCalendar {
	return NewStaticCalendar([]string{
		"2025-01-01", // 元日
		"2025-01-13", // 成人の日
		"2025-02-11", // 建国記念の日
		"2025-02-23", // 天皇誕生日
		"2025-02-24", // 振替休日
		"2025-03-20", // 春分の日
		"2025-04-29", // 昭和の日
		"2025-05-03", // 憲法記念日
		"2025-05-04", // みどりの日
		"2025-05-05", // こどもの日
		"2025-05-06", // 振替休日
		"2025-07-21", // 海の日
		"2025-08-11", // 山の日
		"2025-09-15", // 敬老の日
		"2025-09-23", // 秋分の日
		"2025-10-13", // スポーツの日
		"2025-11-03", // 文化の日
		"2025-11-23", // 勤労感謝の日
		"2025-11-24", // 振替休日
	})
}

// IsPublicHoliday implements holiday.Calendar.
func (c *StaticCalendar) IsPublicHoliday(_ context.Context, date time.Time) (bool, error) {
	return c.dates[date.Format("2006-01-02")], nil
}

// CompositeCalendar consults calendars in order and reports a holiday as soon
// as one of them does.
type CompositeCalendar struct {
	calendars []holiday.Calendar
}

func NewCompositeCalendar(calendars ...holiday.Calendar) *CompositeCalendar {
	return &CompositeCalendar{calendars: calendars}
}

// IsPublicHoliday implements holiday.Calendar.
func (c *CompositeCalendar) IsPublicHoliday(ctx context.Context, date time.Time) (bool, error) {
	for _, cal := range c.calendars {
		ok, err := cal.IsPublicHoliday(ctx, date)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
