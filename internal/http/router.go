package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/spendtrack/internal/http/budget"
	"github.com/MrJamesThe3rd/spendtrack/internal/http/card"
	"github.com/MrJamesThe3rd/spendtrack/internal/http/dashboard"
	"github.com/MrJamesThe3rd/spendtrack/internal/http/reference"
	"github.com/MrJamesThe3rd/spendtrack/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	cardsV1 *card.Handler,
	budgetsV1 *budget.Handler,
	dashboardV1 *dashboard.Handler,
	referenceV1 *reference.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1/users/{userID}", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			cardsV1.Routes(r)
		})

		r.Route("/budget", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		r.Route("/dashboard", dashboardV1.Routes)
	})

	router.Route("/api/v1/reference-table", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		referenceV1.Routes(r)
	})

	return router
}
