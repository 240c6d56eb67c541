// Package metrics registers the process-wide Prometheus collectors,
// served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChunksIngested counts chunk rows committed by ingest calls.
	ChunksIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studyrag_chunks_ingested_total",
		Help: "Number of chunks embedded and stored.",
	})

	// QuizGenerations counts quiz generation attempts by outcome
	// (accepted, precondition, upstream, malformed_output, internal).
	QuizGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyrag_quiz_generations_total",
		Help: "Number of quiz generation attempts by outcome.",
	}, []string{"outcome"})
)
