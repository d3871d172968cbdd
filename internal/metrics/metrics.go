// Package metrics содержит Prometheus-метрики сервиса синхронизации местоположения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "location_sync"

var (
	// ReportsTotal считает отчеты по результату и причине отклонения
	ReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_total",
		Help:      "Position reports processed by the ingestion gateway",
	}, []string{"result", "reason"})

	// IngestDuration - длительность конвейера приема отчета
	IngestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ingest_duration_seconds",
		Help:      "Duration of the submit pipeline",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	SubscriptionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "subscriptions_active",
		Help:      "Subscriptions currently registered in the hub",
	})

	SubscriptionsClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_closed_total",
		Help:      "Closed subscriptions by reason",
	}, []string{"reason"})

	NotificationsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Updates handed to subscribers",
	})

	// NotificationsCoalesced растет, когда медленный подписчик не успел забрать предыдущее обновление
	NotificationsCoalesced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_coalesced_total",
		Help:      "Updates replaced by a newer value before the subscriber consumed them",
	})

	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_deliveries_total",
		Help:      "Webhook delivery attempts by outcome",
	}, []string{"status"})

	LiveCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_cache_lookups_total",
		Help:      "Live state cache lookups by outcome",
	}, []string{"outcome"})
)

// ReportAccepted фиксирует принятый отчет
func ReportAccepted() {
	ReportsTotal.WithLabelValues("accepted", "").Inc()
}

// ReportRejected фиксирует отклоненный отчет
func ReportRejected(reason string) {
	ReportsTotal.WithLabelValues("rejected", reason).Inc()
}
