package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"house-admin/internal/config"
	"house-admin/internal/handler"
	"house-admin/internal/middleware"
	"house-admin/internal/model"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Account  *handler.AccountHandler
	Room     *handler.RoomHandler
	Invoice  *handler.InvoiceHandler
	Payment  *handler.PaymentHandler
	Document *handler.DocumentHandler
	Cleaning *handler.CleaningHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)
	r.Use(authMiddleware.Authenticate)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.Post("/forgot-password", h.Auth.ForgotPassword)
			auth.Post("/reset-password", h.Auth.ResetPassword)
		})

		admin := []model.Role{model.RoleAdmin}

		// Outside the /auth bypass prefix so the authenticator actually runs.
		api.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)

		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Get("/accounts", h.Account.List)

		api.With(authMiddleware.RequireAuth).Get("/rooms", h.Room.List)
		api.With(authMiddleware.RequireAuth).Get("/rooms/{room_id}", h.Room.Get)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Post("/rooms", h.Room.Create)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Put("/rooms/{room_id}", h.Room.Update)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Delete("/rooms/{room_id}", h.Room.Delete)

		api.With(authMiddleware.RequireAuth).Get("/invoices/my", h.Invoice.ListMine)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Get("/invoices", h.Invoice.List)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Get("/invoices/{invoice_id}", h.Invoice.Get)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Post("/invoices", h.Invoice.Create)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Put("/invoices/{invoice_id}/paid", h.Invoice.MarkPaid)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Delete("/invoices/{invoice_id}", h.Invoice.Delete)

		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Get("/payments", h.Payment.List)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Get("/payments/{payment_id}", h.Payment.Get)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Post("/payments", h.Payment.Record)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Delete("/payments/{payment_id}", h.Payment.Delete)

		api.With(authMiddleware.RequireAuth).Get("/documents", h.Document.List)
		api.With(authMiddleware.RequireAuth).Get("/documents/{document_id}", h.Document.Get)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Post("/documents", h.Document.Create)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Put("/documents/{document_id}", h.Document.Update)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Delete("/documents/{document_id}", h.Document.Delete)

		api.With(authMiddleware.RequireAuth).Get("/cleaning-tasks", h.Cleaning.List)
		api.With(authMiddleware.RequireAuth).Get("/cleaning-tasks/{task_id}", h.Cleaning.Get)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Post("/cleaning-tasks", h.Cleaning.Create)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleAdmin, model.RoleCleaner)).Put("/cleaning-tasks/{task_id}/done", h.Cleaning.MarkDone)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(admin...)).Delete("/cleaning-tasks/{task_id}", h.Cleaning.Delete)
	})

	return r
}
