package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Métricas del runner de alertas.
var (
	AlertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petcare_alerts_sent_total",
			Help: "Alerts delivered and confirmed",
		},
		[]string{"alert_kind"},
	)

	AlertsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petcare_alerts_failed_total",
			Help: "Alerts whose delivery failed (claim released for retry)",
		},
		[]string{"alert_kind"},
	)

	AlertsAlreadyClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petcare_alerts_already_claimed_total",
			Help: "Alert evaluations skipped because the triple was already claimed",
		},
	)

	TreatmentsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petcare_treatments_skipped_total",
			Help: "Treatments not evaluated",
		},
		[]string{"reason"},
	)

	AlertRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "petcare_alert_run_duration_seconds",
			Help:    "Duration of a full alert run",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ClaimsReaped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petcare_alert_claims_reaped_total",
			Help: "Stale pending claims deleted at run start",
		},
	)
)

const SkipNoHistory = "no_history"

// Handler expone /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
