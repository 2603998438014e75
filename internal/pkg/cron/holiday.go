package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/holiday"
)

type HolidayJobs struct {
	holidayService holiday.HolidayService
}

func NewHolidayJobs(holidayService holiday.HolidayService) *HolidayJobs {
	return &HolidayJobs{holidayService: holidayService}
}

func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("expire_stale_substitutes", 1*time.Hour, j.ExpireStaleSubstitutes)
}

// ExpireStaleSubstitutes cancels substitute day-off entries whose expiry
// window has passed without the day being taken.
func (j *HolidayJobs) ExpireStaleSubstitutes(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting substitute expiry job")

	expired, err := j.holidayService.ExpireStaleSubstitutes(ctx, time.Now())
	if err != nil {
		return err
	}

	if expired == 0 {
		slog.Info("Cron: No expired substitutes found")
		return nil
	}

	slog.Info("Cron: Cancelled expired substitutes", "count", expired)
	return nil
}
