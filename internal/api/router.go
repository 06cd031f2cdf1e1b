package api

import (
	"net/http"

	"github.com/coursify/marketplace-api/internal/api/handlers"
	"github.com/coursify/marketplace-api/internal/api/middleware"
	"github.com/coursify/marketplace-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	courseHandler := handlers.NewCourseHandler(services.Course)
	lessonHandler := handlers.NewLessonHandler(services.Lesson)
	purchaseHandler := handlers.NewPurchaseHandler(services.Purchase)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Tokens))
				r.Get("/me", authHandler.Me)
			})
		})

		// Public catalog routes
		r.Get("/courses", courseHandler.List)
		r.Get("/courses/{id}", courseHandler.Get)
		r.Get("/courses/{id}/lessons", lessonHandler.ListByCourse)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Tokens))

			// Course routes (mutations are owner-only, enforced in the service)
			r.Post("/courses", courseHandler.Create)
			r.Get("/courses/mine", courseHandler.ListMine)
			r.Put("/courses/{id}", courseHandler.Update)
			r.Delete("/courses/{id}", courseHandler.Delete)

			// Lesson routes
			r.Post("/courses/{id}/lessons", lessonHandler.Create)
			r.Put("/lessons/{id}", lessonHandler.Update)
			r.Delete("/lessons/{id}", lessonHandler.Delete)

			// Purchase routes
			r.Post("/purchases", purchaseHandler.Purchase)
			r.Get("/purchases", purchaseHandler.List)
		})
	})

	return r
}
