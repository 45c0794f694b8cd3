package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment details the router needs.
type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Logger         *slog.Logger
}

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	wfhHandler WFHHandler,
	regularizationHandler RegularizationHandler,
	reportHandler ReportHandler,
	opts RouterOptions,
) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logFormat := httplog.SchemaECS.Concise(false)
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			ReplaceAttr: logFormat.ReplaceAttr,
		})).With(
			slog.String("app", "hris-attendance"),
			slog.String("version", "v1.0.0"),
			slog.String("env", opts.Env),
		)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/classify", attendanceHandler.ClassifyDay)

				// Self-service
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/check-in", attendanceHandler.CheckIn)
					r.Post("/check-out", attendanceHandler.CheckOut)
					r.Get("/my", attendanceHandler.GetMyDaily)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/employees/{employeeID}", attendanceHandler.GetEmployeeDaily)
					r.Get("/missing-checkouts", attendanceHandler.ListMissingCheckouts)
				})

				r.Get("/{id}", attendanceHandler.Get)
			})

			r.Route("/wfh-requests", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/", wfhHandler.Create)
					r.Get("/my", wfhHandler.ListMy)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", wfhHandler.List)
					r.Post("/{id}/review", wfhHandler.Review)
				})

				r.Get("/{id}", wfhHandler.Get)
			})

			r.Route("/regularizations", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/", regularizationHandler.Create)
					r.Get("/my", regularizationHandler.ListMy)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", regularizationHandler.List)
					r.Post("/{id}/review", regularizationHandler.Review)
				})

				r.Get("/{id}", regularizationHandler.Get)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary", reportHandler.Summary)

				r.With(middleware.AdminOnly).Get("/overview", reportHandler.DailyOverview)
			})
		})
	})

	return r
}
