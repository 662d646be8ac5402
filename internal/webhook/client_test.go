package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wolfman30/patient-intake-gateway/internal/intake"
	"github.com/wolfman30/patient-intake-gateway/internal/observability/metrics"
)

func sampleRequest() intake.Request {
	return intake.Request{
		Name:          "Amina Diallo",
		Age:           45,
		Gender:        "female",
		ContactNumber: "+1 (555) 123-4567",
		Email:         "amina@example.com",
		Problem:       "Persistent migraines.",
	}
}

func TestNewClient(t *testing.T) {
	t.Run("defaults to no timeout", func(t *testing.T) {
		client := NewClient("http://localhost:9999/hook")
		if client.httpClient.Timeout != 0 {
			t.Errorf("expected no default timeout, got %s", client.httpClient.Timeout)
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := NewClient("http://localhost:9999/hook", WithHTTPClient(custom))
		if client.httpClient != custom {
			t.Error("expected custom HTTP client to be set")
		}
	})

	t.Run("with timeout", func(t *testing.T) {
		client := NewClient("http://localhost:9999/hook", WithTimeout(30*time.Second))
		if client.httpClient.Timeout != 30*time.Second {
			t.Errorf("expected 30s timeout, got %s", client.httpClient.Timeout)
		}
	})
}

func TestClient_Submit(t *testing.T) {
	t.Run("successful submission", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST method, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected application/json content type, got %s", ct)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Fatalf("decode submission body: %v", err)
			}
			w.Write([]byte(`{"message":"ok","confirmationId":"X1"}`))
		}))
		defer server.Close()

		fixed := time.Date(2026, 8, 24, 15, 30, 0, 0, time.FixedZone("EST", -5*3600))
		client := NewClient(server.URL, WithClock(func() time.Time { return fixed }))

		record, err := client.Submit(context.Background(), sampleRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if record["message"] != "ok" {
			t.Errorf("expected message ok, got %v", record["message"])
		}
		if record["confirmationId"] != "X1" {
			t.Errorf("expected confirmationId X1, got %v", record["confirmationId"])
		}

		if gotBody["name"] != "Amina Diallo" {
			t.Errorf("expected name in body, got %v", gotBody["name"])
		}
		if gotBody["age"] != float64(45) {
			t.Errorf("expected age as JSON number 45, got %v", gotBody["age"])
		}
		if gotBody["submittedAt"] != "2026-08-24T20:30:00Z" {
			t.Errorf("expected UTC RFC3339 submittedAt, got %v", gotBody["submittedAt"])
		}
		if gotBody["contactNumber"] != "+1 (555) 123-4567" {
			t.Errorf("expected contactNumber in body, got %v", gotBody["contactNumber"])
		}
	})

	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Submit(context.Background(), sampleRequest())
		if !errors.Is(err, ErrBadStatus) {
			t.Fatalf("expected ErrBadStatus, got %v", err)
		}
	})

	t.Run("unparseable success body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>thanks</html>"))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Submit(context.Background(), sampleRequest())
		if !errors.Is(err, ErrBadBody) {
			t.Fatalf("expected ErrBadBody, got %v", err)
		}
	})

	t.Run("non-object JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("[1,2,3]"))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Submit(context.Background(), sampleRequest())
		if !errors.Is(err, ErrBadBody) {
			t.Fatalf("expected ErrBadBody, got %v", err)
		}
	})

	t.Run("null body becomes empty record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		record, err := client.Submit(context.Background(), sampleRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record == nil || len(record) != 0 {
			t.Fatalf("expected empty record, got %v", record)
		}
	})

	t.Run("201 accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"queued"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		record, err := client.Submit(context.Background(), sampleRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record["message"] != "queued" {
			t.Errorf("expected queued message, got %v", record["message"])
		}
	})

	t.Run("transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(server.URL)
		_, err := client.Submit(context.Background(), sampleRequest())
		if err == nil {
			t.Fatal("expected error for unreachable endpoint")
		}
		if errors.Is(err, ErrBadStatus) || errors.Is(err, ErrBadBody) {
			t.Fatalf("transport failure should not map to status/body errors, got %v", err)
		}
	})

	t.Run("records metrics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"ok"}`))
		}))
		defer server.Close()

		reg := prometheus.NewRegistry()
		m := metrics.NewIntakeMetrics(reg)
		client := NewClient(server.URL, WithMetrics(m))

		if _, err := client.Submit(context.Background(), sampleRequest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		families, err := reg.Gather()
		if err != nil {
			t.Fatalf("gather failed: %v", err)
		}

		var sawResponse, sawLatency bool
		for _, f := range families {
			switch f.GetName() {
			case "intake_gateway_webhook_responses_total":
				sawResponse = true
				if got := f.GetMetric()[0].GetLabel()[0].GetValue(); got != "200" {
					t.Errorf("expected status label 200, got %s", got)
				}
			case "intake_gateway_webhook_latency_seconds":
				sawLatency = true
				if f.GetMetric()[0].GetHistogram().GetSampleCount() != 1 {
					t.Errorf("expected one latency observation")
				}
			}
		}
		if !sawResponse || !sawLatency {
			t.Errorf("expected webhook metric families, got response=%v latency=%v", sawResponse, sawLatency)
		}
	})
}
