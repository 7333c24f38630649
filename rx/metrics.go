package rx

import "github.com/prometheus/client_golang/prometheus"

const (
	dropNoDemand = "no_demand"
	dropTerminal = "terminal"
)

var (
	registry = prometheus.NewRegistry()

	deliveredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "avrx",
		Subsystem: "rx",
		Name:      "delivered_total",
		Help:      "Values delivered to subscribers",
	}, []string{"publisher"})
	droppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "avrx",
		Subsystem: "rx",
		Name:      "dropped_total",
		Help:      "Observed values dropped instead of delivered",
	}, []string{"publisher", "reason"})
	completedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "avrx",
		Subsystem: "rx",
		Name:      "completed_total",
		Help:      "Subscriptions completed after exhausting their demand",
	}, []string{"publisher"})
	cancelledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "avrx",
		Subsystem: "rx",
		Name:      "cancelled_total",
		Help:      "Subscriptions cancelled by their subscriber",
	}, []string{"publisher"})
	activeSubscriptions = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "avrx",
		Subsystem: "rx",
		Name:      "active_subscriptions",
		Help:      "Subscriptions not yet cancelled or completed",
	}, []string{"publisher"})
)

func init() {
	registry.MustRegister(deliveredTotal, droppedTotal, completedTotal, cancelledTotal, activeSubscriptions)
}

// Registry exposes the stream collectors, e.g. for a promhttp handler.
func Registry() *prometheus.Registry {
	return registry
}
