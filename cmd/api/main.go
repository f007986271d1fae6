package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database/migrations"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/notifier"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-payroll-go/internal/service/attendance"
	leaveService "github.com/cmlabs-hris/attendance-payroll-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/attendance-payroll-go/internal/service/payroll"
	userService "github.com/cmlabs-hris/attendance-payroll-go/internal/service/user"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := migrations.MigrateUp(db.Pool); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	transactor := postgresql.NewTransactor(db)

	templates, err := email.NewTemplates()
	if err != nil {
		return err
	}
	dispatcher := notifier.New(email.NewEmailService(cfg.SMTP), notifier.Config{
		WorkerCount: cfg.Notifier.Workers,
		QueueSize:   cfg.Notifier.QueueSize,
		SendTimeout: cfg.Notifier.SendTimeout,
	})
	defer dispatcher.Stop()

	clk := clock.RealClock{}
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	userSvc := userService.NewUserService(userRepo, cfg.Attendance.FaceDescriptorLength)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userSvc, clk, cfg.Office)
	payrollSvc := payrollService.NewPayrollService(
		salaryRepo,
		payrollRepo,
		attendanceRepo,
		userSvc,
		transactor,
		dispatcher,
		templates,
		clk,
		payrollService.DefaultBatchLimit,
	)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, userSvc, transactor, dispatcher, templates, clk)

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, userSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
