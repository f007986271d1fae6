package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/config"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance AttendanceHandler
	User       UserHandler
	Payroll    PayrollHandler
	Leave      LeaveHandler
}

func NewRouter(app config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	if app.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(app.RequestTimeout))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/today/{identity}", h.Attendance.Today)
				r.Post("/mark", h.Attendance.Mark)
				r.Post("/register-face", h.Attendance.RegisterFace)
				r.Get("/users/{identity}/months/{month}", h.Attendance.ListUserMonth)
				r.Get("/", h.Attendance.List)
			})

			r.Get("/users/{identity}", h.User.Get)

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/generate", h.Payroll.GeneratePayslip)
				r.Get("/{employeeID}/{month}", h.Payroll.GetPayslip)

				// Admin only
				r.With(middleware.AdminOnly).Post("/generate-all", h.Payroll.GenerateMonthlyPayroll)
			})

			r.Route("/salary", func(r chi.Router) {
				r.Get("/{employeeID}", h.Payroll.GetSalary)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Payroll.AddSalary)
					r.Put("/", h.Payroll.UpdateSalary)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/users/{userID}", h.Leave.ListByUser)
				r.Get("/{id}", h.Leave.Get)
				r.Put("/{id}", h.Leave.Update)
				r.Delete("/{id}", h.Leave.Delete)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Leave.List)
					r.Put("/status", h.Leave.SetStatus)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
