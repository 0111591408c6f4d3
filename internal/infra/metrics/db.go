package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(dbConns, dbEmptyAcquires, dbAcquireWait) }

var (
	dbConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_pool_connections",
			Help: "Postgres pool connections by state.",
		},
		[]string{"state"}, // max, total, idle, acquired
	)

	dbEmptyAcquires = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_empty_acquires",
			Help: "Cumulative acquires that had to wait for a free connection.",
		},
	)

	dbAcquireWait = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_acquire_wait_seconds",
			Help: "Cumulative time spent acquiring connections.",
		},
	)
)

// PoolSnapshot mirrors the pgxpool.Stat fields that are exported.
type PoolSnapshot struct {
	Max, Total, Idle, Acquired int32
	EmptyAcquires              int64
	AcquireWait                time.Duration
}

func SetDBPoolStats(s PoolSnapshot) {
	dbConns.WithLabelValues("max").Set(float64(s.Max))
	dbConns.WithLabelValues("total").Set(float64(s.Total))
	dbConns.WithLabelValues("idle").Set(float64(s.Idle))
	dbConns.WithLabelValues("acquired").Set(float64(s.Acquired))
	dbEmptyAcquires.Set(float64(s.EmptyAcquires))
	dbAcquireWait.Set(s.AcquireWait.Seconds())
}
