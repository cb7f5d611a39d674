package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(submissions)
	prometheus.MustRegister(throttleWaits)
	prometheus.MustRegister(queueJobs)
}

var submissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "batchq",
		Name:      "submissions_total",
		Help:      "Number of commands submitted, by backend.",
	},
	[]string{"backend"},
)

var throttleWaits = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "batchq",
		Name:      "throttle_waits_total",
		Help:      "Number of poll intervals spent waiting for the queue to drain, by backend.",
	},
	[]string{"backend"},
)

var queueJobs = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "batchq",
		Name:      "queue_jobs",
		Help:      "Jobs in the queue at the last poll, by backend.",
	},
	[]string{"backend"},
)

// Submitted records a submission to the given backend.
func Submitted(backend string) {
	submissions.WithLabelValues(backend).Inc()
}

// ThrottleWait records one poll interval spent waiting on the given backend.
func ThrottleWait(backend string) {
	throttleWaits.WithLabelValues(backend).Inc()
}

// QueueJobs records the number of jobs seen in the queue of the given backend.
func QueueJobs(backend string, n int) {
	queueJobs.WithLabelValues(backend).Set(float64(n))
}

// WriteTextfile writes all registered metrics to path in the Prometheus text
// format, for collection by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
