package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/rollerup-site/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/rollerup-site/internal/http/middleware"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadForm           *handlers.LeadFormHandler
	AdminLeads         *handlers.AdminLeadsHandler
	Content            *handlers.ContentHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// FormRateLimiter throttles POST /leads per client (optional).
	FormRateLimiter *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.Content != nil {
			api.Get("/content", cfg.Content.GetContent)
		}
		api.Post("/leads", handlers.IntakePlaceholder)
		if cfg.LeadForm != nil {
			api.Get("/leads/draft", cfg.LeadForm.Draft)
		}
	})

	if cfg.LeadForm != nil {
		submit := http.Handler(http.HandlerFunc(cfg.LeadForm.SubmitLead))
		if cfg.FormRateLimiter != nil {
			submit = cfg.FormRateLimiter.Middleware(submit)
		}
		r.Method(http.MethodPost, "/leads", submit)
	}

	if cfg.AdminLeads != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminFlag)
			admin.Get("/leads", cfg.AdminLeads.ListLeads)
			admin.Get("/leads/export.csv", cfg.AdminLeads.ExportCSV)
			admin.Get("/leads/export.xlsx", cfg.AdminLeads.ExportXLSX)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
