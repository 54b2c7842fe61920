// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package metrics registers the process-wide Prometheus collectors. The
// serve command exposes them under /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// OutcomeOK labels a request that completed.
	OutcomeOK = "ok"
	// OutcomeError labels a request that failed.
	OutcomeError = "error"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snowq_queries_total",
		Help: "Warehouse statements executed, by outcome.",
	}, []string{"outcome"})

	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snowq_query_duration_seconds",
		Help:    "Wall time of warehouse statements.",
		Buckets: prometheus.DefBuckets,
	})

	asksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snowq_asks_total",
		Help: "Assistant questions answered, by outcome.",
	}, []string{"outcome"})

	llmRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snowq_llm_requests_total",
		Help: "Chat completion calls issued, by outcome.",
	}, []string{"outcome"})
)

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

// ObserveQuery records one executed statement.
func ObserveQuery(err error, elapsed time.Duration) {
	queriesTotal.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		queryDuration.Observe(elapsed.Seconds())
	}
}

// ObserveAsk records one assistant round trip.
func ObserveAsk(err error) {
	asksTotal.WithLabelValues(outcome(err)).Inc()
}

// ObserveLLMRequest records one chat completion call.
func ObserveLLMRequest(err error) {
	llmRequestsTotal.WithLabelValues(outcome(err)).Inc()
}
