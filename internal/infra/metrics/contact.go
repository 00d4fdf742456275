package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(contactSubmissionsTotal, operatorRepliesTotal, forwardLinksExpiredTotal)
}

var (
	contactSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "User messages forwarded to the operator chat, by outcome.",
		},
		[]string{"status"},
	)

	operatorRepliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operator_replies_total",
			Help: "Operator replies relayed back to users, by content kind and outcome.",
		},
		[]string{"kind", "status"},
	)

	forwardLinksExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forward_links_expired_total",
			Help: "Forward links dropped by the periodic sweep.",
		},
	)
)

func IncContactSubmission(status string) {
	contactSubmissionsTotal.WithLabelValues(norm(status)).Inc()
}

func IncOperatorReply(kind, status string) {
	operatorRepliesTotal.WithLabelValues(norm(kind), norm(status)).Inc()
}

func IncForwardLinksExpired(n int) {
	forwardLinksExpiredTotal.Add(float64(n))
}
