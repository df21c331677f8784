// Package observability holds the tracker's Prometheus collectors.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"example.com/ftracker/internal/domain"
)

var (
	processedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "tracker",
		Name:      "workouts_processed_total",
		Help:      "Number of sensor packages turned into summaries, by workout type.",
	}, []string{"workout_type"})

	rejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "tracker",
		Name:      "packages_rejected_total",
		Help:      "Number of sensor packages skipped, by rejection reason.",
	}, []string{"reason"})

	caloriesHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ftracker",
		Subsystem: "tracker",
		Name:      "calories_burned",
		Help:      "Distribution of estimated calories per workout.",
		Buckets:   prometheus.ExponentialBuckets(25, 2, 8),
	}, []string{"workout_type"})

	lastSummaryGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ftracker",
		Subsystem: "tracker",
		Name:      "last_summary_timestamp_seconds",
		Help:      "Unix timestamp of the most recent summary produced.",
	})
)

func init() {
	prometheus.MustRegister(processedCounter, rejectedCounter, caloriesHistogram, lastSummaryGauge)
}

// RecordProcessed counts a produced summary.
func RecordProcessed(msg domain.InfoMessage, ts time.Time) {
	processedCounter.WithLabelValues(msg.WorkoutType).Inc()
	caloriesHistogram.WithLabelValues(msg.WorkoutType).Observe(msg.Calories)
	if !ts.IsZero() {
		lastSummaryGauge.Set(float64(ts.Unix()))
	}
}

// RecordRejected counts a skipped package.
func RecordRejected(reason string) {
	if reason == "" {
		reason = "other"
	}
	rejectedCounter.WithLabelValues(reason).Inc()
}
