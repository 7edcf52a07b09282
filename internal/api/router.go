package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dvfactor/dv-factor/internal/api/handlers"
	"github.com/dvfactor/dv-factor/internal/api/middleware"
	"github.com/dvfactor/dv-factor/internal/config"
	"github.com/dvfactor/dv-factor/internal/repository"
	"github.com/dvfactor/dv-factor/internal/service"
	"github.com/dvfactor/dv-factor/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, repos *repository.Repositories, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	profileHandler := handlers.NewProfileHandler(services.Profile)
	dashboardHandler := handlers.NewDashboardHandler(services.Edition, services.Participant, services.Bet, services.Employee, repos.PayoutTable)
	editionHandler := handlers.NewEditionHandler(services.Edition, hub)
	participantHandler := handlers.NewParticipantHandler(services.Participant, hub)
	betHandler := handlers.NewBetHandler(services.Bet, hub)
	employeeHandler := handlers.NewEmployeeHandler(services.Employee)
	settlementHandler := handlers.NewSettlementHandler(services.Settlement, repos.PayoutTable, hub)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Profile routes
			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Put("/", profileHandler.UpdateProfile)
			})

			// Dashboard for the current open edition
			r.Get("/dashboard", dashboardHandler.Get)

			// Edition routes
			r.Route("/editions", func(r chi.Router) {
				r.Get("/", editionHandler.List)
				r.Get("/current", editionHandler.GetCurrent)
				r.Get("/{id}", editionHandler.Get)
				r.Post("/{id}/enroll", participantHandler.Enroll)
				r.Get("/{id}/participants", participantHandler.ListByEdition)
				r.Get("/{id}/bets", betHandler.List)
				r.Put("/{id}/bets/mine", betHandler.Place)
				r.Get("/{id}/bets/mine", betHandler.GetMine)
				r.Get("/{id}/settlement", settlementHandler.Get)

				// Admin-only edition management
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", editionHandler.Create)
					r.Post("/{id}/transition", editionHandler.Transition)
					r.Post("/{id}/recalculate-pool", editionHandler.RecalculatePool)
					r.Post("/{id}/reveal-bets", betHandler.Reveal)
					r.Post("/{id}/settle", settlementHandler.Settle)
				})
			})

			// Participant payment management (admin-only)
			r.Route("/participants", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/{id}/confirm-payment", participantHandler.ConfirmPayment)
				r.Post("/{id}/cancel-payment", participantHandler.CancelPayment)
			})

			// Employee routes
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", employeeHandler.Create)
					r.Post("/{id}/resign", employeeHandler.Resign)
				})
			})

			// Payout table routes
			r.Route("/payout-table", func(r chi.Router) {
				r.Get("/", settlementHandler.GetPayoutTable)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", settlementHandler.SeedPayoutTable)
				})
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
