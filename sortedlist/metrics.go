package sortedlist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values of sortedlist_operations_total.
const (
	outcomeOK         = "ok"
	outcomeMiss       = "miss"
	outcomeOutOfRange = "out_of_range"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "sortedlist_operations_total",
		Help: "The total number of sorted list operations, by outcome",
	}, []string{"list", "operation", "outcome"})

	entriesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "sortedlist_entries",
		Help: "The number of entries in the sorted list",
	}, []string{"list"})
)
