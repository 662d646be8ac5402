package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/patient-intake-gateway/internal/confirmation"
	"github.com/wolfman30/patient-intake-gateway/internal/demo"
	"github.com/wolfman30/patient-intake-gateway/internal/intake"
	"github.com/wolfman30/patient-intake-gateway/internal/stats"
	"github.com/wolfman30/patient-intake-gateway/internal/widget"
	"github.com/wolfman30/patient-intake-gateway/pkg/logging"
)

type noopSubmitter struct{}

func (noopSubmitter) Submit(context.Context, intake.Request) (confirmation.Record, error) {
	return confirmation.Record{"message": "ok", "confirmationId": "X1"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()
	registry := prometheus.NewRegistry()

	cfg := &Config{
		Logger:         logger,
		IntakeHandler:  intake.NewHandler(noopSubmitter{}, nil, logger),
		StatsHandler:   stats.NewHandler(registry, logger),
		WidgetHandler:  widget.NewHandler(),
		DemoReceiver:   demo.NewReceiver(logger),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AllowedOrigins: []string{"*"},
	}

	return New(cfg)
}

func validBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(intake.Form{
		Name:          "Amina Diallo",
		Age:           "45",
		Gender:        "female",
		ContactNumber: "+15551234567",
		Email:         "amina@example.com",
		Problem:       "Recurring migraines",
	})
	if err != nil {
		t.Fatalf("failed to marshal form: %v", err)
	}
	return bytes.NewReader(body)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterRootRedirectsToBook(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/book" {
		t.Errorf("expected redirect to /book, got %q", loc)
	}
}

func TestRouterBookingPage(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/book", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type: %q", ct)
	}
}

func TestRouterCreateAppointment(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", validBody(t))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"status":"confirmed"`) {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}
}

func TestRouterStatsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var snap stats.Snapshot
	if err := json.NewDecoder(rr.Body).Decode(&snap); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterWidgetScript(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/widget.js", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/javascript" {
		t.Errorf("unexpected content type: %q", ct)
	}
}

func TestRouterDemoWebhook(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/demo/webhook", strings.NewReader(
		`{"name":"Amina","age":45,"gender":"female","contactNumber":"+15551234567","email":"a@b.com","problem":"x","submittedAt":"2026-08-24T20:30:00Z"}`,
	))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestRouterRateLimitsSubmissions(t *testing.T) {
	logger := logging.Default()
	cfg := &Config{
		Logger:         logger,
		IntakeHandler:  intake.NewHandler(noopSubmitter{}, nil, logger),
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
	}
	router := New(cfg)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", validBody(t))
	first.RemoteAddr = "203.0.113.9:4000"
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, first)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rr.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", validBody(t))
	second.RemoteAddr = "203.0.113.9:4000"
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, second)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
	}

	// The booking page stays reachable for limited clients.
	page := httptest.NewRequest(http.MethodGet, "/book", nil)
	page.RemoteAddr = "203.0.113.9:4000"
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, page)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected page to stay reachable, got %d", rr.Code)
	}
}

func TestRouterSkipsUnconfiguredRoutes(t *testing.T) {
	router := New(&Config{Logger: logging.Default()})

	health := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, health)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected health to stay registered, got %d", rr.Code)
	}

	for _, path := range []string{"/book", "/metrics", "/widget.js", "/api/v1/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected %s to be unregistered, got %d", path, rr.Code)
		}
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/appointments", nil)
	req.Header.Set("Origin", "https://clinic.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://clinic.example" {
		t.Errorf("expected origin to be allowed, got %q", got)
	}
}
