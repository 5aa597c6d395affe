/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend
  5. serialize:  One command at a time; the ledger aggregate requires a
                 single writer per employee and the handler caches live
                 aggregates, so the whole API runs under one mutex

ROUTE GROUPS:
  /api/employees/*   Employee records, commands, and ledger queries

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(serialize())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetEmployee)
				r.Put("/", h.UpdateEmployee)
				r.Delete("/", h.DeleteEmployee)

				// Commands
				r.Put("/salary", h.SetSalary)
				r.Post("/vacation", h.SetVacation)
				r.Post("/holiday", h.SetHoliday)
				r.Post("/thirteenth", h.SetThirteenth)
				r.Post("/variations", h.AddVariation)
				r.Delete("/variations/{variationID}", h.RemoveVariation)
				r.Post("/payments", h.AddPayment)
				r.Delete("/payments/{paymentID}", h.RemovePayment)

				// Queries
				r.Get("/ledger/{year}", h.GetLedger)
				r.Post("/recompute", h.Recompute)
			})
		})
	})

	return r
}

// serialize runs requests one at a time. Commands rewrite a whole
// employee aggregate and the handler's service cache is a plain map, so
// concurrent requests are not safe. At household scale this costs
// nothing.
func serialize() func(http.Handler) http.Handler {
	var mu sync.Mutex
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}
