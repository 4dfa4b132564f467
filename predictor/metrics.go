package predictor

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumentedLLM struct {
	next     LLMClient
	provider string
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// Instrument wraps client with request counters and a latency histogram
// registered on reg. It does not change call semantics.
func Instrument(client LLMClient, reg prometheus.Registerer, provider string) LLMClient {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_requests_total",
		Help: "Text generation requests by provider and outcome.",
	}, []string{"provider", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_request_duration_seconds",
		Help:    "Latency of text generation requests.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
	}, []string{"provider"})
	reg.MustRegister(requests, latency)
	return &instrumentedLLM{
		next:     client,
		provider: provider,
		requests: requests,
		latency:  latency,
	}
}

func (i *instrumentedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := i.next.Complete(ctx, prompt)
	i.latency.WithLabelValues(i.provider).Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	i.requests.WithLabelValues(i.provider, outcome).Inc()
	return out, err
}
