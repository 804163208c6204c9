package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Counter: общее количество HTTP запросов
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Histogram: время выполнения запросов
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// Counter: количество ошибок
	ErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_errors_total",
			Help: "Total app errors",
		},
		[]string{"handler", "type"},
	)

	// Counter: вердикты по выбору дня (completed / navigate / rejected)
	DaySelections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_day_selections_total",
			Help: "Challenge day selection verdicts",
		},
		[]string{"verdict"},
	)

	// Counter: загрузки активностей
	ActivitySubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_activity_submissions_total",
			Help: "Activity submissions by result",
		},
		[]string{"result"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, ErrorCount, DaySelections, ActivitySubmissions)
}
