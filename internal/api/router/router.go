package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	"github.com/wolfman30/patient-intake-gateway/internal/demo"
	httpmiddleware "github.com/wolfman30/patient-intake-gateway/internal/http/middleware"
	"github.com/wolfman30/patient-intake-gateway/internal/intake"
	"github.com/wolfman30/patient-intake-gateway/internal/stats"
	"github.com/wolfman30/patient-intake-gateway/internal/widget"
	"github.com/wolfman30/patient-intake-gateway/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	IntakeHandler  *intake.Handler
	StatsHandler   *stats.Handler
	WidgetHandler  *widget.Handler
	DemoReceiver   *demo.Receiver
	MetricsHandler http.Handler
	AllowedOrigins []string

	// Submission rate limiting (disabled when RateLimitRPS is 0)
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.AllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Booking form
	if cfg.IntakeHandler != nil {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/book", http.StatusFound)
		})
		r.Get("/book", cfg.IntakeHandler.BookingPage)
	}

	// Embeddable widget
	if cfg.WidgetHandler != nil {
		r.Get("/widget.js", cfg.WidgetHandler.Script)
		r.Get("/widget/demo", cfg.WidgetHandler.DemoPage)
	}

	// Submission API, rate limited per client
	r.Group(func(api chi.Router) {
		if cfg.RateLimitRPS > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		}
		if cfg.IntakeHandler != nil {
			api.Post("/api/v1/appointments", cfg.IntakeHandler.CreateAppointment)
		}
		if cfg.StatsHandler != nil {
			api.Get("/api/v1/stats", cfg.StatsHandler.GetStats)
		}
	})

	// Local webhook receiver for demo mode
	if cfg.DemoReceiver != nil {
		r.Mount("/demo", cfg.DemoReceiver.Routes())
	}

	return r
}

// healthCheck returns a simple health check response.
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
