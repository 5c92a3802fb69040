package exit

import "github.com/prometheus/client_golang/prometheus"

var (
	exitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plasma",
			Subsystem: "exit",
			Name:      "claims_total",
			Help:      "Exit claims by the state they reached.",
		},
		[]string{"state"},
	)
	rejectedChallenges = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "plasma",
			Subsystem: "exit",
			Name:      "rejected_challenges_total",
			Help:      "Challenges refused because the disproof did not hold.",
		},
	)
)

func init() {
	prometheus.MustRegister(exitsTotal, rejectedChallenges)
}

// countClaim must be called only after the transition to s was written.
func countClaim(s ClaimState) {
	exitsTotal.WithLabelValues(s.String()).Inc()
}
