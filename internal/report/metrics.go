package report

import (
	"time"

	"github.com/JonMunkholm/attendance/internal/attendance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus instruments for report processing.
type Metrics struct {
	reports      *prometheus.CounterVec
	participants *prometheus.CounterVec
	encodings    *prometheus.CounterVec
	duration     prometheus.Histogram
}

// NewMetrics registers the report instruments with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		reports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attendance_reports_total",
				Help: "Attendance logs processed, by outcome code",
			},
			[]string{"outcome"},
		),
		participants: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attendance_participants_total",
				Help: "Participants classified, by status",
			},
			[]string{"status"},
		),
		encodings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attendance_detected_encodings_total",
				Help: "Detected text encodings of uploaded logs",
			},
			[]string{"encoding"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "attendance_report_duration_seconds",
				Help:    "Time to build one report",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (m *Metrics) observe(r *Report, err error, elapsed time.Duration) {
	m.duration.Observe(elapsed.Seconds())

	if err != nil {
		m.reports.WithLabelValues(MapError(err).Code).Inc()
		return
	}
	m.reports.WithLabelValues("ok").Inc()
	m.encodings.WithLabelValues(r.Encoding).Inc()
	m.participants.WithLabelValues(string(attendance.StatusPresent)).Add(float64(r.Present))
	m.participants.WithLabelValues(string(attendance.StatusAbsent)).Add(float64(r.Absent))
}
