package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "featuresgym_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "featuresgym_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AdminActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "featuresgym_admin_actions_total",
			Help: "Total number of admin mutations by entity and action",
		},
		[]string{"entity", "action"},
	)

	AdminActionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "featuresgym_admin_action_failures_total",
			Help: "Total number of rejected or failed admin mutations",
		},
		[]string{"entity", "reason"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "featuresgym_login_attempts_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"status"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "featuresgym_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "featuresgym_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	ListQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "featuresgym_list_queries_total",
			Help: "Total number of filtered list page loads",
		},
		[]string{"page"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordAdminAction(entity, action string) {
	AdminActionsTotal.WithLabelValues(entity, action).Inc()
}

func RecordAdminActionFailure(entity, reason string) {
	AdminActionFailuresTotal.WithLabelValues(entity, reason).Inc()
}

func RecordLoginAttempt(status string) {
	LoginAttemptsTotal.WithLabelValues(status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordListQuery(page string) {
	ListQueriesTotal.WithLabelValues(page).Inc()
}
