package intake

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fileintake",
	Subsystem: "intake",
	Name:      "events_processed_total",
	Help:      "Number of object-created events processed, partitioned by outcome.",
}, []string{"outcome"})
