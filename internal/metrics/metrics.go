package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colortherock_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "colortherock_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})
)

// Moderation metrics
var (
	ReportsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colortherock_reports_submitted_total",
		Help: "Total number of reports recorded",
	})

	ReportRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colortherock_report_rejections_total",
		Help: "Total number of report submissions rejected, by error kind",
	}, []string{"kind"})

	PostsHiddenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colortherock_posts_hidden_total",
		Help: "Total number of posts hidden after reaching the report threshold",
	})
)
