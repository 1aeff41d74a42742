// Package rest wires the local development HTTP surface. Production traffic
// goes through AppSync; this router exposes the same operations over plain
// HTTP for local work and integration testing.
package rest

import (
	"net/http"

	"kernelworx-backend/infrastructure/di"
	"kernelworx-backend/interfaces/http/rest/handlers"
	"kernelworx-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{container: container}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	cfg := rt.container.Config
	logger := rt.container.Logger

	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(logger))

	if cfg.RateLimitPerMinute > 0 {
		router.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute, logger).Handler)
	}

	if cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	accountHandler := handlers.NewAccountHandler(
		rt.container.AccountService,
		rt.container.TransferService,
		rt.container.Checker,
		logger,
	)
	shareHandler := handlers.NewShareHandler(rt.container.ShareService, rt.container.InviteService, logger)
	adminHandler := handlers.NewAdminHandler(rt.container.AdminService, logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.JWTSecret, cfg.JWTIssuer, logger))

		r.Route("/account", func(r chi.Router) {
			r.Get("/", accountHandler.GetMyAccount)
			r.Patch("/", accountHandler.UpdateMyAccount)
			r.Delete("/", accountHandler.DeleteMyAccount)
		})

		r.Route("/profiles/{profileID}", func(r chi.Router) {
			r.Get("/access", accountHandler.CheckProfileAccess)
			r.Post("/transfer", accountHandler.TransferOwnership)

			r.Route("/shares", func(r chi.Router) {
				r.Get("/", shareHandler.ListShares)
				r.Post("/", shareHandler.CreateShare)
				r.Delete("/{accountID}", shareHandler.RevokeShare)
			})

			r.Post("/invites", shareHandler.CreateInvite)
		})

		r.Route("/invites/{inviteCode}", func(r chi.Router) {
			r.Post("/redeem", shareHandler.RedeemInvite)
			r.Delete("/", shareHandler.RevokeInvite)
		})

		r.Route("/admin/users", func(r chi.Router) {
			r.Get("/", adminHandler.ListUsers)
			r.Get("/search", adminHandler.SearchUsers)
			r.Route("/{accountID}", func(r chi.Router) {
				r.Delete("/", adminHandler.DeleteUser)
				r.Post("/reset-password", adminHandler.ResetUserPassword)
				r.Get("/profiles", adminHandler.GetUserProfiles)
				r.Get("/catalogs", adminHandler.GetUserCatalogs)
				r.Delete("/orders", adminHandler.DeleteUserOrders)
				r.Delete("/campaigns", adminHandler.DeleteUserCampaigns)
				r.Delete("/shares", adminHandler.DeleteUserShares)
				r.Delete("/profiles", adminHandler.DeleteUserProfiles)
				r.Delete("/catalogs", adminHandler.DeleteUserCatalogs)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
