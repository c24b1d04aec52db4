// Package metrics registers the Prometheus instruments for the sync
// pipeline. Everything is registered on the default registry and exposed via
// the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncRuns counts sync passes per entity type and outcome status.
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_sync_runs_total",
		Help: "Number of ERP sync passes, labelled by entity and status.",
	}, []string{"entity", "status"})

	// SyncRecords counts records seen by sync passes, split by what happened
	// to each record.
	SyncRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_sync_records_total",
		Help: "Number of records processed by ERP sync passes, labelled by entity and outcome (added, updated, skipped).",
	}, []string{"entity", "outcome"})

	// SyncDuration observes wall-clock duration of sync passes.
	SyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "erp_sync_duration_seconds",
		Help:    "Duration of ERP sync passes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity"})
)
