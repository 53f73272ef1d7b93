package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the amm module.
type Metrics struct {
	PoolsTotal       prometheus.Gauge
	SwapsTotal       prometheus.Counter
	SwapVolume       prometheus.Counter
	DepositsTotal    prometheus.Counter
	WithdrawalsTotal prometheus.Counter

	RewardsPaid        prometheus.Counter
	CreatorBonusesPaid prometheus.Counter
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// moduleMetrics creates and registers the amm metrics. Registered once
// per process; every Keeper shares the same collectors.
func moduleMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			PoolsTotal: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "muse",
				Subsystem: "amm",
				Name:      "pools_total",
				Help:      "Number of liquidity pools",
			}),
			SwapsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "muse",
				Subsystem: "amm",
				Name:      "swaps_total",
				Help:      "Total number of swaps executed",
			}),
			SwapVolume: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "muse",
				Subsystem: "amm",
				Name:      "swap_volume_total",
				Help:      "Total swap input volume in base units",
			}),
			DepositsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "muse",
				Subsystem: "amm",
				Name:      "deposits_total",
				Help:      "Total number of liquidity deposits",
			}),
			WithdrawalsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "muse",
				Subsystem: "amm",
				Name:      "withdrawals_total",
				Help:      "Total number of liquidity withdrawals",
			}),
			RewardsPaid: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "muse",
				Subsystem: "amm",
				Name:      "rewards_paid_total",
				Help:      "Total rewards paid out in base units",
			}),
			CreatorBonusesPaid: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "muse",
				Subsystem: "amm",
				Name:      "creator_bonuses_paid_total",
				Help:      "Number of creator bonuses paid",
			}),
		}
	})
	return metrics
}
