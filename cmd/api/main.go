package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/regularization"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/hris-attendance-go/internal/service/calendar"
	regularizationService "github.com/cmlabs-hris/hris-attendance-go/internal/service/regularization"
	reportService "github.com/cmlabs-hris/hris-attendance-go/internal/service/report"
	wfhService "github.com/cmlabs-hris/hris-attendance-go/internal/service/wfh"
)

// repositories is the storage backend chosen by STORE.
type repositories struct {
	txManager       database.TxManager
	attendance      attendance.AttendanceRepository
	employees       employee.EmployeeRepository
	offices         office.OfficeRepository
	holidays        calendar.HolidayRepository
	grants          leave.GrantRepository
	wfh             wfh.WFHRequestRepository
	regularizations regularization.RegularizationRepository
	close           func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	policy, err := policyFromConfig(cfg.Attendance)
	if err != nil {
		slog.Error("invalid attendance policy", "error", err)
		os.Exit(1)
	}

	repos, err := openRepositories(cfg, policy.Location)
	if err != nil {
		slog.Error("failed to open store", "store", cfg.App.Store, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	clk := clock.System()
	resolver := calendarService.NewResolver(repos.holidays, policy.WeekendDays)
	materializer := attendanceService.NewMaterializer(repos.employees, repos.attendance, repos.grants, resolver, policy, clk)
	wfhSvc := wfhService.NewWFHService(repos.wfh, repos.offices, policy.Location, clk)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.txManager,
		repos.attendance,
		repos.offices,
		materializer,
		wfhSvc,
		policy,
		clk,
	)
	regularizationSvc := regularizationService.NewRegularizationService(
		repos.txManager,
		repos.regularizations,
		repos.attendance,
		materializer,
		policy,
		clk,
	)
	reportSvc := reportService.NewReportService(repos.employees, materializer, policy.Location, clk)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc, policy.Location),
		appHTTP.NewWFHHandler(wfhSvc, policy.Location),
		appHTTP.NewRegularizationHandler(regularizationSvc, policy.Location),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Env:            cfg.App.Env,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, clk, policy.Location).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "store", cfg.App.Store, "timezone", policy.Location.String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	}
}

func policyFromConfig(c config.AttendanceConfig) (attendance.Policy, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	cutoff, err := attendance.ParseLateCutoff(c.LateCutoff)
	if err != nil {
		return attendance.Policy{}, err
	}
	return attendance.Policy{
		Location:             loc,
		MinimumWorkHours:     c.MinimumWorkHours,
		LateCutoff:           cutoff,
		WeekendDays:          c.WeekendDays,
		GeofenceRadiusMeters: c.GeofenceRadiusMeters,
		IncompleteAsAbsent:   c.IncompleteAsAbsent,
		MaxClockSkew:         c.MaxClockSkew,
		MaxShiftLength:       c.MaxShiftLength,
	}, nil
}

func openRepositories(cfg *config.Config, loc *time.Location) (repositories, error) {
	switch cfg.App.Store {
	case "memory":
		store := memory.NewStore(loc)
		if cfg.App.SeedFile != "" {
			if err := store.LoadSeedFile(cfg.App.SeedFile); err != nil {
				return repositories{}, err
			}
		} else {
			slog.Warn("memory store started without MEMORY_SEED_FILE; the employee directory is empty")
		}
		return repositories{
			txManager:       memory.NewTxManager(store),
			attendance:      memory.NewAttendanceRepository(store),
			employees:       memory.NewEmployeeRepository(store),
			offices:         memory.NewOfficeRepository(store),
			holidays:        memory.NewHolidayRepository(store),
			grants:          memory.NewGrantRepository(store),
			wfh:             memory.NewWFHRequestRepository(store),
			regularizations: memory.NewRegularizationRepository(store),
			close:           func() {},
		}, nil

	default:
		db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.PoolOptions{
			MaxConns:    cfg.Database.MaxConns,
			MinConns:    cfg.Database.MinConns,
			TimeZone:    loc.String(),
			PingTimeout: 5 * time.Second,
		})
		if err != nil {
			return repositories{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repositories{
			txManager:       postgresql.NewTxManager(db),
			attendance:      postgresql.NewAttendanceRepository(db, loc),
			employees:       postgresql.NewEmployeeRepository(db, loc),
			offices:         postgresql.NewOfficeRepository(db),
			holidays:        postgresql.NewHolidayRepository(db, loc),
			grants:          postgresql.NewGrantRepository(db, loc),
			wfh:             postgresql.NewWFHRequestRepository(db, loc),
			regularizations: postgresql.NewRegularizationRepository(db, loc),
			close:           db.Close,
		}, nil
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
