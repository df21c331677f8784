package publisher

import "github.com/prometheus/client_golang/prometheus"

var publishedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ftracker",
	Subsystem: "publisher",
	Name:      "summaries_published_total",
	Help:      "Number of workout summaries published to Kafka, by topic.",
}, []string{"topic"})

func init() {
	prometheus.MustRegister(publishedCounter)
}

func recordPublished(topic string) {
	publishedCounter.WithLabelValues(topic).Inc()
}
