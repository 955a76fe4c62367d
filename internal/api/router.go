package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/storefront/internal/auth"
	"github.com/baharkarakas/storefront/internal/config"
	"github.com/baharkarakas/storefront/internal/metrics"
	"github.com/baharkarakas/storefront/internal/middleware"
	"github.com/baharkarakas/storefront/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	TM         *auth.TokenManager
	ProductSvc *services.ProductService
	OrderSvc   *services.OrderService
	UserSvc    *services.UserService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	ah := NewAuthHandler(d.TM, d.UserSvc)
	r.Post("/auth/login", ah.Login)
	r.Post("/auth/refresh", ah.Refresh)

	ph := NewProductHandler(d.ProductSvc)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", ph.List)
		r.Post("/", ph.Create)
		r.Get("/category/{category}", ph.ByCategory)
		r.Get("/{id}", ph.Get)
		r.Put("/{id}", ph.Update)
		r.Delete("/{id}", ph.Delete)
	})

	oh := NewOrderHandler(d.OrderSvc)
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", oh.List)
		r.Post("/", oh.Create)
		r.Get("/user/{userId}", oh.ByUser)
		r.Get("/{id}", oh.Get)
		r.Put("/{id}", oh.Update)
		r.Delete("/{id}", oh.Delete)
	})

	uh := NewUserHandler(d.UserSvc)
	r.Route("/users", func(r chi.Router) {
		r.Get("/", uh.List)
		r.Post("/", uh.Create)
		// static segment must not be swallowed by {id}
		r.Get("/profile", uh.Profile)
		r.Get("/{id}", uh.Get)
		r.Put("/{id}", uh.Update)
		r.Delete("/{id}", uh.Delete)
	})

	return r
}
