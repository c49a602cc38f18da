package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PointsCredited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_points_credited_total",
			Help: "Total points credited to user balances, by activity type",
		},
		[]string{"type"},
	)
	PointsDebited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_points_debited_total",
			Help: "Total points debited from user balances, by activity type",
		},
		[]string{"type"},
	)
	RewardCollections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_reward_collections_total",
			Help: "Successful reward collections, by source (mining, staking, daily)",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(PointsCredited)
	prometheus.MustRegister(PointsDebited)
	prometheus.MustRegister(RewardCollections)
}
