package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"strconv"
	"time"
)

const namespace = "awards"

type Metrics struct {
	gatherer         prometheus.Gatherer
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	refreshDuration  *prometheus.HistogramVec
	snapshotRecords  *prometheus.GaugeVec
	projectedRows    *prometheus.CounterVec
}

// New registers all collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		upstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests sent to seats.aero.",
		}, []string{"endpoint", "status"}),
		upstreamDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of requests sent to seats.aero.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"endpoint"}),
		refreshDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_refresh_duration_seconds",
			Help:      "Duration of a full snapshot refresh per partner.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"partner"}),
		snapshotRecords: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_records",
			Help:      "Number of availability records in the current snapshot.",
		}, []string{"partner"}),
		projectedRows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projected_rows_total",
			Help:      "Total number of rows returned by award queries.",
		}, []string{"partner"}),
	}
}

// UpstreamResponse matches seatsaero.ResponseHook.
func (m *Metrics) UpstreamResponse(endpoint string, statusCode int, d time.Duration) {
	status := "error"
	if statusCode != 0 {
		status = strconv.Itoa(statusCode)
	}

	m.upstreamRequests.WithLabelValues(endpoint, status).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// SnapshotRefreshed matches the hook of award.WithRefreshHook.
func (m *Metrics) SnapshotRefreshed(partner string, d time.Duration, records int) {
	m.refreshDuration.WithLabelValues(partner).Observe(d.Seconds())
	m.snapshotRecords.WithLabelValues(partner).Set(float64(records))
}

func (m *Metrics) RowsProjected(partner string, rows int) {
	m.projectedRows.WithLabelValues(partner).Add(float64(rows))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
