package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	NotificationFanoutFailure  = "notification_fanout_failure"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		NotificationFanoutFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: NotificationFanoutFailure,
			Help: "Count of all notification fan-out failures",
		}, []string{"kind"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
