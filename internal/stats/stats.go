// Package stats summarizes the gateway's Prometheus metrics as a JSON
// snapshot for callers that want submission counts and webhook latency
// percentiles without scraping /metrics.
package stats

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/wolfman30/patient-intake-gateway/internal/observability/metrics"
	"github.com/wolfman30/patient-intake-gateway/pkg/logging"
)

const (
	submissionsFamily        = "intake_gateway_submissions_total"
	validationFailuresFamily = "intake_gateway_validation_failures_total"
	webhookResponsesFamily   = "intake_gateway_webhook_responses_total"
	webhookLatencyFamily     = "intake_gateway_webhook_latency_seconds"
)

// SubmissionCounts breaks down intake submissions by outcome.
type SubmissionCounts struct {
	Accepted         int64 `json:"accepted"`
	BadRequest       int64 `json:"bad_request"`
	ValidationFailed int64 `json:"validation_failed"`
	WebhookFailed    int64 `json:"webhook_failed"`
	Total            int64 `json:"total"`
}

type LatencyBucket struct {
	LeSeconds float64 `json:"le_seconds"`
	Label     string  `json:"label,omitempty"`
	Count     int64   `json:"count"`
}

// WebhookSnapshot captures webhook delivery health: response counts by
// status and latency percentiles derived from the histogram buckets.
type WebhookSnapshot struct {
	Samples   int64            `json:"samples"`
	Responses map[string]int64 `json:"responses_by_status,omitempty"`
	P50Ms     float64          `json:"p50_ms"`
	P90Ms     float64          `json:"p90_ms"`
	P95Ms     float64          `json:"p95_ms"`
	Buckets   []LatencyBucket  `json:"buckets,omitempty"`
}

type Snapshot struct {
	GeneratedAt        string           `json:"generated_at"`
	Submissions        SubmissionCounts `json:"submissions"`
	ValidationFailures map[string]int64 `json:"validation_failures_by_field,omitempty"`
	Webhook            WebhookSnapshot  `json:"webhook"`
}

// Collect gathers the registry once and folds the gateway's metric families
// into a Snapshot. Families that haven't been observed yet simply come back
// zeroed.
func Collect(gatherer prometheus.Gatherer) (Snapshot, error) {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mfs, err := gatherer.Gather()
	if err != nil {
		return Snapshot{}, fmt.Errorf("stats: gather metrics: %w", err)
	}

	snap := Snapshot{
		GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
		ValidationFailures: map[string]int64{},
		Webhook:            WebhookSnapshot{Responses: map[string]int64{}},
	}

	for _, mf := range mfs {
		if mf == nil {
			continue
		}
		switch mf.GetName() {
		case submissionsFamily:
			collectSubmissions(mf, &snap.Submissions)
		case validationFailuresFamily:
			collectLabeledCounts(mf, "field", snap.ValidationFailures)
		case webhookResponsesFamily:
			collectLabeledCounts(mf, "status", snap.Webhook.Responses)
		case webhookLatencyFamily:
			collectLatency(mf, &snap.Webhook)
		}
	}

	return snap, nil
}

func collectSubmissions(mf *dto.MetricFamily, counts *SubmissionCounts) {
	for _, metric := range mf.Metric {
		if metric == nil || metric.GetCounter() == nil {
			continue
		}
		n := int64(metric.GetCounter().GetValue())
		counts.Total += n
		switch labelValue(metric, "outcome") {
		case metrics.OutcomeAccepted:
			counts.Accepted += n
		case metrics.OutcomeBadRequest:
			counts.BadRequest += n
		case metrics.OutcomeValidationFailed:
			counts.ValidationFailed += n
		case metrics.OutcomeWebhookFailed:
			counts.WebhookFailed += n
		}
	}
}

func collectLabeledCounts(mf *dto.MetricFamily, label string, into map[string]int64) {
	for _, metric := range mf.Metric {
		if metric == nil || metric.GetCounter() == nil {
			continue
		}
		key := labelValue(metric, label)
		if key == "" {
			continue
		}
		into[key] += int64(metric.GetCounter().GetValue())
	}
}

func collectLatency(mf *dto.MetricFamily, out *WebhookSnapshot) {
	cumulativeByUpper := map[float64]uint64{}
	var sampleCount uint64

	for _, metric := range mf.Metric {
		if metric == nil {
			continue
		}
		h := metric.GetHistogram()
		if h == nil {
			continue
		}
		sampleCount += h.GetSampleCount()
		for _, b := range h.Bucket {
			if b == nil {
				continue
			}
			cumulativeByUpper[b.GetUpperBound()] += b.GetCumulativeCount()
		}
	}

	if sampleCount == 0 || len(cumulativeByUpper) == 0 {
		return
	}

	uppers := make([]float64, 0, len(cumulativeByUpper))
	for upper := range cumulativeByUpper {
		uppers = append(uppers, upper)
	}
	sort.Float64s(uppers)

	buckets := make([]LatencyBucket, 0, len(uppers))
	var prev uint64
	var lastFiniteUpper float64
	for _, upper := range uppers {
		cum := cumulativeByUpper[upper]
		count := int64(cum)
		if cum >= prev {
			count = int64(cum - prev)
		}

		if math.IsInf(upper, 1) {
			if count > 0 {
				buckets = append(buckets, LatencyBucket{
					LeSeconds: lastFiniteUpper,
					Label:     fmt.Sprintf(">%s", formatSeconds(lastFiniteUpper)),
					Count:     count,
				})
			}
			prev = cum
			continue
		}

		lastFiniteUpper = upper
		buckets = append(buckets, LatencyBucket{LeSeconds: upper, Count: count})
		prev = cum
	}

	out.Samples = int64(sampleCount)
	out.P50Ms = histogramQuantile(0.50, sampleCount, uppers, cumulativeByUpper) * 1000.0
	out.P90Ms = histogramQuantile(0.90, sampleCount, uppers, cumulativeByUpper) * 1000.0
	out.P95Ms = histogramQuantile(0.95, sampleCount, uppers, cumulativeByUpper) * 1000.0
	out.Buckets = buckets
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.Label {
		if lp == nil {
			continue
		}
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func histogramQuantile(q float64, total uint64, uppers []float64, cumulativeByUpper map[float64]uint64) float64 {
	if total == 0 || q <= 0 {
		return 0
	}
	if q >= 1 {
		for i := len(uppers) - 1; i >= 0; i-- {
			if !math.IsInf(uppers[i], 1) {
				return uppers[i]
			}
		}
		return 0
	}

	target := q * float64(total)
	var prevUpper float64
	var prevCum float64

	for _, upper := range uppers {
		cum := float64(cumulativeByUpper[upper])
		if cum < target {
			prevUpper = upper
			prevCum = cum
			continue
		}

		// If we can't interpolate, return the bucket upper bound.
		bucketCount := cum - prevCum
		if bucketCount <= 0 || upper == prevUpper {
			return upper
		}
		if math.IsInf(upper, 1) {
			return prevUpper
		}

		fraction := (target - prevCum) / bucketCount
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}

		return prevUpper + fraction*(upper-prevUpper)
	}

	return uppers[len(uppers)-1]
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	if seconds < 1 {
		return fmt.Sprintf("%.2fs", seconds)
	}
	if seconds < 10 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	return fmt.Sprintf("%.0fs", seconds)
}

// Handler serves the stats snapshot over HTTP.
type Handler struct {
	gatherer prometheus.Gatherer
	logger   *logging.Logger
}

func NewHandler(gatherer prometheus.Gatherer, logger *logging.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{gatherer: gatherer, logger: logger}
}

// GetStats returns the current snapshot.
// GET /api/v1/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	snap, err := Collect(h.gatherer)
	if err != nil {
		h.logger.Error("failed to collect stats", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}
