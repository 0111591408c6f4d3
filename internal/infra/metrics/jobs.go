package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(reportTasksTotal, workerQueueRejected) }

var (
	reportTasksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_tasks_processed_total",
			Help: "Scheduled report tasks processed by the worker pool, labeled by status.",
		},
		[]string{"status"}, // 'generated', 'skipped', 'failed'
	)

	workerQueueRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "worker_queue_rejected_total",
			Help: "Tasks dropped because the worker queue was full.",
		},
	)
)

func IncReportTask(status string) {
	reportTasksTotal.WithLabelValues(norm(status)).Inc()
}

func IncWorkerQueueRejected() { workerQueueRejected.Inc() }
