package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const appVersion = "v1.0.0"

func NewRouter(jwtService jwt.Service, deadlineHandler DeadlineHandler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worktime-backend"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
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
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/tasks/{taskID}", func(r chi.Router) {
				r.Get("/delay", deadlineHandler.GetTaskDelay)
				r.Get("/acknowledgement", deadlineHandler.GetAcknowledgement)
			})

			// Developers see their own data; managers see everyone's
			r.Route("/developers/{developerID}", func(r chi.Router) {
				r.Use(middleware.RequireSelfOrRole("developerID", jwt.RoleAdmin, jwt.RoleProjectManager))
				r.Get("/delays", deadlineHandler.ListDeveloperDelays)
				r.Get("/calendar", deadlineHandler.GetDeveloperCalendar)
			})

			r.Post("/worktime/compute", deadlineHandler.Compute)
		})
	})
	return r
}
