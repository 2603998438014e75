package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kintai-works/kintai-backend-go/internal/config"
	"github.com/kintai-works/kintai-backend-go/internal/domain/allowance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/fixtures"
	appHTTP "github.com/kintai-works/kintai-backend-go/internal/handler/http"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/cron"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-works/kintai-backend-go/internal/repository/postgresql"
	allowanceService "github.com/kintai-works/kintai-backend-go/internal/service/allowance"
	attendanceService "github.com/kintai-works/kintai-backend-go/internal/service/attendance"
	authService "github.com/kintai-works/kintai-backend-go/internal/service/auth"
	holidayService "github.com/kintai-works/kintai-backend-go/internal/service/holiday"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	dayRepo := postgresql.NewAttendanceDayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	ruleRepo := postgresql.NewAllowanceRuleRepository(db)
	entryRepo := postgresql.NewScheduleEntryRepository(db)
	terminalRepo := postgresql.NewTerminalRepository(db)

	if err := seedAllowanceRules(context.Background(), ruleRepo); err != nil {
		fmt.Println("Error seeding allowance rules:", err)
		return
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	// National holidays plus factory-specific closure days from config
	calendar := holidayService.NewCompositeCalendar(
		holidayService.NewJapanCalendar2025(),
		holidayService.NewStaticCalendar(cfg.Payroll.ClosureDates),
	)
	holidaySvc := holidayService.NewHolidayService(entryRepo, calendar, cfg.Payroll.SubstituteRate, cfg.Payroll.SubstituteExpiryDays)
	calculator := allowanceService.NewCalculator(holidaySvc, attendance.Granularity(cfg.Payroll.Granularity))
	attendanceSvc := attendanceService.NewAttendanceService(dayRepo, employeeRepo, ruleRepo, calculator)
	authSvc := authService.NewAuthService(terminalRepo, JWTService)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)

	scheduler := cron.NewScheduler()
	cron.NewHolidayJobs(holidaySvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		attendanceHandler,
		holidayHandler,
		cfg.App.Env,
		parseLogLevel(cfg.App.LogLevel),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// seedAllowanceRules inserts the default rule set on first boot. A table
// with any active rule in any category is left alone.
func seedAllowanceRules(ctx context.Context, ruleRepo allowance.AllowanceRuleRepository) error {
	categories := []allowance.Category{
		allowance.CategoryOvertime,
		allowance.CategoryNightWork,
		allowance.CategoryHolidayWork,
		allowance.CategoryEarlyWork,
		allowance.CategoryNightShift,
	}

	for _, category := range categories {
		rules, err := ruleRepo.GetActiveByCategory(ctx, category)
		if err != nil {
			return err
		}
		if len(rules) > 0 {
			return nil
		}
	}

	for _, rule := range fixtures.GetDefaultAllowanceRules() {
		if _, err := ruleRepo.Create(ctx, rule); err != nil {
			return err
		}
	}
	slog.Info("Seeded default allowance rules")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
