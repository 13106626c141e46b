package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReadingsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aeris_readings_ingested_total",
			Help: "Readings persisted as new rows",
		},
		[]string{"category", "severity"},
	)

	DuplicateReadings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aeris_duplicate_readings_total",
			Help: "Submissions resolved to an existing row via the natural key",
		},
	)

	IdempotencyReplays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aeris_idempotency_replays_total",
			Help: "Submissions answered from a completed idempotency record",
		},
	)

	IdempotencyConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aeris_idempotency_conflicts_total",
			Help: "Idempotency keys reused with a different payload fingerprint",
		},
	)
)
