// Package demo provides a local stand-in for the external booking webhook so
// the gateway can be exercised end to end without leaving the machine.
package demo

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/wolfman30/patient-intake-gateway/pkg/logging"
)

// Receiver simulates the booking system behind the webhook URL. It accepts
// the gateway's outbound payload and answers with a confirmation the way a
// real scheduler would, rotating through a few doctors and time slots.
//
// The problem text controls failure modes for manual testing:
//   - "[force-error]" anywhere in the text returns HTTP 500
//   - "[force-garbage]" returns HTTP 200 with a non-JSON body
type Receiver struct {
	logger *logging.Logger
	now    func() time.Time

	mu   sync.Mutex
	seen int
}

func NewReceiver(logger *logging.Logger) *Receiver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Receiver{logger: logger, now: time.Now}
}

func (h *Receiver) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/webhook", h.HandleWebhook)
	return r
}

var demoDoctors = []string{
	"Dr. Amara Okafor",
	"Dr. Lena Fischer",
	"Dr. Noah Patel",
}

var demoSlots = []string{
	"9:00 AM",
	"10:30 AM",
	"1:15 PM",
	"3:45 PM",
}

// bookingPayload mirrors the gateway's outbound body.
type bookingPayload struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Problem       string `json:"problem"`
	SubmittedAt   string `json:"submittedAt"`
}

// HandleWebhook handles POST /demo/webhook.
func (h *Receiver) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload bookingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Error("demo webhook received undecodable payload", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if strings.Contains(payload.Problem, "[force-error]") {
		h.logger.Info("demo webhook forcing server error", "name", payload.Name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if strings.Contains(payload.Problem, "[force-garbage]") {
		h.logger.Info("demo webhook forcing garbage response", "name", payload.Name)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("BOOKED OK"))
		return
	}

	h.mu.Lock()
	doctor := demoDoctors[h.seen%len(demoDoctors)]
	slot := demoSlots[h.seen%len(demoSlots)]
	h.seen++
	h.mu.Unlock()

	now := h.now()
	confirmation := map[string]any{
		"message":         "Your appointment with " + doctor + " is confirmed.",
		"confirmationId":  confirmationID(now),
		"appointmentDate": nextBusinessDay(now).Format("January 2, 2006"),
		"appointmentTime": slot,
		"doctorName":      doctor,
		"arrivalNotes":    "Please arrive 10 minutes early with a photo ID.",
	}

	h.logger.Info("demo webhook confirmed booking",
		"name", payload.Name,
		"doctor", doctor,
		"slot", slot,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(confirmation)
}

// confirmationID builds codes like APT-2026-3F9A1.
func confirmationID(now time.Time) string {
	id := strings.ToUpper(uuid.New().String()[:5])
	return "APT-" + now.Format("2006") + "-" + id
}

func nextBusinessDay(now time.Time) time.Time {
	d := now.AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
