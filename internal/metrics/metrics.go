// Package metrics exposes matching and request counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"bloodconnect/pkg/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bloodconnect"

type Collector struct {
	registry *prometheus.Registry

	matchQueries  *prometheus.CounterVec
	matchResults  *prometheus.HistogramVec
	matchDuration prometheus.Histogram
	donorsSkipped *prometheus.CounterVec
	requests      *prometheus.CounterVec
	notifications prometheus.Counter
	responses     *prometheus.CounterVec
	donations     prometheus.Counter
}

// New builds a collector on its own registry so tests can create as many
// as they like.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		matchQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_queries_total",
			Help:      "Compatible donor searches, by requested blood type.",
		}, []string{"blood_type"}),
		matchResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_results",
			Help:      "Donors returned per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}, []string{"blood_type"}),
		matchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Time spent ranking donors.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		donorsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donors_skipped_total",
			Help:      "Donor records left out of a search because they were malformed.",
		}, []string{"reason"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blood_requests_total",
			Help:      "Blood requests submitted, by urgency.",
		}, []string{"urgency"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Notifications created for matched donors.",
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donor_responses_total",
			Help:      "Donor responses to notifications, by decision.",
		}, []string{"decision"}),
		donations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donations_recorded_total",
			Help:      "Donations recorded.",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.matchQueries,
		c.matchResults,
		c.matchDuration,
		c.donorsSkipped,
		c.requests,
		c.notifications,
		c.responses,
		c.donations,
	)

	return c
}

func (c *Collector) ObserveQuery(bloodType types.BloodType, matches int, elapsed time.Duration) {
	c.matchQueries.WithLabelValues(bloodType.String()).Inc()
	c.matchResults.WithLabelValues(bloodType.String()).Observe(float64(matches))
	c.matchDuration.Observe(elapsed.Seconds())
}

func (c *Collector) DonorSkipped(reason string) {
	c.donorsSkipped.WithLabelValues(reason).Inc()
}

func (c *Collector) RequestSubmitted(urgency types.Urgency, notified int) {
	c.requests.WithLabelValues(string(urgency)).Inc()
	c.notifications.Add(float64(notified))
}

func (c *Collector) DonorResponded(decision types.ResponseDecision) {
	c.responses.WithLabelValues(string(decision)).Inc()
}

func (c *Collector) DonationRecorded() {
	c.donations.Inc()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
