package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors the application reports
type Metrics struct {
	LayersCreated        prometheus.Counter
	LayersApproved       prometheus.Counter
	ConsumptionsRecorded prometheus.Counter
	ShortfallQuantity    prometheus.Counter
	FiscalEntriesCreated *prometheus.CounterVec
	SessionsCompleted    *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
}

// New registers the application collectors with the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LayersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "redsalud",
			Subsystem: "inventory",
			Name:      "layers_created_total",
			Help:      "Number of cost layers created.",
		}),
		LayersApproved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "redsalud",
			Subsystem: "inventory",
			Name:      "layers_approved_total",
			Help:      "Number of quarantined layers approved for sale.",
		}),
		ConsumptionsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "redsalud",
			Subsystem: "inventory",
			Name:      "consumptions_total",
			Help:      "Number of FIFO consumption operations.",
		}),
		ShortfallQuantity: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "redsalud",
			Subsystem: "inventory",
			Name:      "consumption_shortfall_units_total",
			Help:      "Units requested that could not be covered by available layers.",
		}),
		FiscalEntriesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redsalud",
			Subsystem: "fiscal",
			Name:      "entries_created_total",
			Help:      "Number of fiscal book entries created.",
		}, []string{"book"}),
		SessionsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redsalud",
			Subsystem: "receiving",
			Name:      "sessions_completed_total",
			Help:      "Number of receiving sessions completed, by outcome.",
		}, []string{"status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "redsalud",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// NewDefault registers the collectors with the default Prometheus registry
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}
