package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/store-ratings/internal/api/handlers"
	"github.com/baharkarakas/store-ratings/internal/auth"
	"github.com/baharkarakas/store-ratings/internal/config"
	"github.com/baharkarakas/store-ratings/internal/metrics"
	"github.com/baharkarakas/store-ratings/internal/middleware"
	"github.com/baharkarakas/store-ratings/internal/models"
	repo "github.com/baharkarakas/store-ratings/internal/repository"
	"github.com/baharkarakas/store-ratings/internal/services"
)

type RouterDeps struct {
	Cfg   config.Config
	TM    *auth.TokenManager
	Repos repo.Repositories
}

func NewRouter(d RouterDeps) http.Handler {
	authH := handlers.NewAuthHandler(services.NewAuthService(d.Repos.Users, d.TM))
	adminH := handlers.NewAdminHandler(services.NewAdminService(d.Repos))
	ownerH := handlers.NewOwnerHandler(services.NewOwnerService(d.Repos.Stores, d.Repos.Ratings))
	userH := handlers.NewUserHandler(services.NewRatingService(d.Repos.Stores, d.Repos.Ratings))
	gate := middleware.NewAuthMiddleware(d.TM)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/signup", authH.Signup)
		r.Post("/auth/login", authH.Login)
		r.With(gate.Require()).Post("/auth/update-password", authH.UpdatePassword)

		// ---------- admin ----------
		r.Route("/admin", func(r chi.Router) {
			r.Use(gate.Require(models.RoleAdmin))
			r.Post("/users", adminH.CreateUser)
			r.Post("/stores", adminH.CreateStore)
			r.Get("/dashboard", adminH.Dashboard)
			r.Get("/users", adminH.ListUsers)
			r.Get("/stores", adminH.ListStores)
			r.Get("/users/{id}", adminH.GetUser)
		})

		// ---------- store owner ----------
		r.Route("/store", func(r chi.Router) {
			r.Use(gate.Require(models.RoleStoreOwner))
			r.Get("/dashboard", ownerH.Dashboard)
		})

		// ---------- user ----------
		r.Route("/user", func(r chi.Router) {
			r.Use(gate.Require(models.RoleUser))
			r.Get("/stores", userH.ListStores)
			r.Post("/ratings", userH.SubmitRating)
		})
	})

	return r
}
