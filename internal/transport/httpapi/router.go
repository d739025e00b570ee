package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nmantri/spendwise/internal/transport/httpapi/handler"
	"github.com/nmantri/spendwise/internal/transport/httpapi/middleware"
	"github.com/nmantri/spendwise/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	AuthHandler        *handler.AuthHandler
	TransactionHandler *handler.TransactionHandler
	ReportHandler      *handler.ReportHandler
	SettingsHandler    *handler.SettingsHandler
	ImpexpHandler      *handler.ImpexpHandler
	JWTMiddleware      func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit())

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		if cfg.AuthHandler != nil {
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require JWT authentication)
		if cfg.JWTMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				if cfg.TransactionHandler != nil {
					r.Get("/transactions", cfg.TransactionHandler.ListTransactions)
					r.Post("/transactions", cfg.TransactionHandler.CreateTransaction)
					r.Put("/transactions/{id}", cfg.TransactionHandler.UpdateTransaction)
					r.Delete("/transactions/{id}", cfg.TransactionHandler.DeleteTransaction)
				}

				if cfg.ReportHandler != nil {
					r.Get("/summary", cfg.ReportHandler.GetSummary)
					r.Get("/analysis", cfg.ReportHandler.GetAnalysis)
				}

				if cfg.SettingsHandler != nil {
					r.Route("/settings", func(r chi.Router) {
						r.Get("/", cfg.SettingsHandler.GetSettings)
						r.Put("/categories", cfg.SettingsHandler.SaveCategories)
						r.Put("/currency", cfg.SettingsHandler.SaveCurrency)
						r.Put("/start-date", cfg.SettingsHandler.SaveStartDate)
					})
				}

				if cfg.ImpexpHandler != nil {
					r.Get("/export/csv", cfg.ImpexpHandler.ExportCSV)
					r.Get("/export/json", cfg.ImpexpHandler.ExportJSON)
					r.Post("/import/csv", cfg.ImpexpHandler.ImportCSV)
					r.Post("/import/json", cfg.ImpexpHandler.ImportJSON)
				}
			})
		}
	})

	return r
}
