package intake

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/wolfman30/patient-intake-gateway/internal/confirmation"
	"github.com/wolfman30/patient-intake-gateway/internal/observability/metrics"
	"github.com/wolfman30/patient-intake-gateway/pkg/logging"
)

// Submitter forwards a validated appointment request and returns whatever
// confirmation payload the receiving endpoint produced.
type Submitter interface {
	Submit(ctx context.Context, req Request) (confirmation.Record, error)
}

// Handler handles HTTP requests for appointment intake
type Handler struct {
	submitter Submitter
	metrics   *metrics.IntakeMetrics
	logger    *logging.Logger
}

// NewHandler creates a new intake handler
func NewHandler(submitter Submitter, m *metrics.IntakeMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		submitter: submitter,
		metrics:   m,
		logger:    logger,
	}
}

// validationResponse is the body returned when a submission fails validation.
type validationResponse struct {
	Error  string      `json:"error"`
	Fields FieldErrors `json:"fields"`
}

// confirmationResponse wraps the webhook's confirmation payload with
// ready-to-render display entries.
type confirmationResponse struct {
	Status       string               `json:"status"`
	Message      string               `json:"message"`
	Confirmation confirmation.Record  `json:"confirmation"`
	Display      []confirmation.Entry `json:"display"`
}

// CreateAppointment handles POST /api/v1/appointments. A submission with any
// field error never reaches the webhook; webhook failures of every kind come
// back as one generic error so the form can keep its state and let the
// patient retry.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var form Form

	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeBadRequest)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req, fieldErrs := form.Validate()
	if len(fieldErrs) > 0 {
		h.logger.Info("submission rejected", "fields", fieldErrs.Fields())
		h.metrics.ObserveSubmission(metrics.OutcomeValidationFailed)
		for _, field := range fieldErrs.Fields() {
			h.metrics.ObserveValidationFailure(field)
		}
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  "validation failed",
			Fields: fieldErrs,
		})
		return
	}

	record, err := h.submitter.Submit(r.Context(), req)
	if err != nil {
		h.logger.Error("webhook submission failed", "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeWebhookFailed)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "submission failed"})
		return
	}

	h.metrics.ObserveSubmission(metrics.OutcomeAccepted)
	h.logger.Info("appointment request submitted", "name", req.Name)

	writeJSON(w, http.StatusOK, confirmationResponse{
		Status:       "confirmed",
		Message:      confirmation.Message(record),
		Confirmation: record,
		Display:      confirmation.Display(record),
	})
}

// BookingPage handles GET /book, serving the self-contained booking form.
func (h *Handler) BookingPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(bookingPageHTML))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
