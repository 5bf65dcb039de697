package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"payment-engine/internal/models"
)

// Capacity is the fixed size of the sample ring buffer. The oldest sample is
// dropped once the buffer is full.
const Capacity = 100

var (
	paymentsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_processed_total",
			Help: "Total number of payment authorization attempts",
		},
		[]string{"method", "status"},
	)

	paymentProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_processing_duration_ms",
			Help:    "Simulated gateway processing time in milliseconds",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4000},
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(paymentsProcessedTotal)
	prometheus.MustRegister(paymentProcessingDuration)
}

// Summary aggregates the buffered samples for one method.
type Summary struct {
	Method       models.PaymentMethod `json:"method"`
	Count        int                  `json:"count"`
	Successes    int                  `json:"successes"`
	TotalAmount  float64              `json:"total_amount"`
	AvgLatencyMs float64              `json:"avg_latency_ms"`
}

// Tracker keeps the most recent authorization samples in a capped buffer.
// It is process-local analytics, not a system of record, and never fails the
// caller.
type Tracker struct {
	mu      sync.Mutex
	samples []models.MetricsSample
}

func NewTracker() *Tracker {
	return &Tracker{samples: make([]models.MetricsSample, 0, Capacity)}
}

// Track appends a sample, dropping the oldest once the buffer is full.
func (t *Tracker) Track(sample models.MetricsSample) {
	status := "failure"
	if sample.Success {
		status = "success"
	}
	paymentsProcessedTotal.WithLabelValues(string(sample.Method), status).Inc()
	if sample.Success {
		paymentProcessingDuration.WithLabelValues(string(sample.Method)).Observe(float64(sample.ProcessingTimeMs))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.samples) == Capacity {
		copy(t.samples, t.samples[1:])
		t.samples = t.samples[:Capacity-1]
	}
	t.samples = append(t.samples, sample)
}

// Snapshot returns the buffered samples oldest first.
func (t *Tracker) Snapshot() []models.MetricsSample {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.MetricsSample, len(t.samples))
	copy(out, t.samples)
	return out
}

// SuccessRate reports the fraction of buffered samples that succeeded.
func (t *Tracker) SuccessRate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.samples) == 0 {
		return 0
	}

	var successes int
	for _, s := range t.samples {
		if s.Success {
			successes++
		}
	}
	return float64(successes) / float64(len(t.samples))
}

// Summaries aggregates the buffer per method.
func (t *Tracker) Summaries() []Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	byMethod := make(map[models.PaymentMethod]*Summary)
	var order []models.PaymentMethod

	for _, s := range t.samples {
		agg, ok := byMethod[s.Method]
		if !ok {
			agg = &Summary{Method: s.Method}
			byMethod[s.Method] = agg
			order = append(order, s.Method)
		}
		agg.Count++
		if s.Success {
			agg.Successes++
			agg.TotalAmount += s.Amount
			agg.AvgLatencyMs += float64(s.ProcessingTimeMs)
		}
	}

	out := make([]Summary, 0, len(order))
	for _, method := range order {
		agg := byMethod[method]
		if agg.Successes > 0 {
			agg.AvgLatencyMs /= float64(agg.Successes)
		}
		out = append(out, *agg)
	}
	return out
}
