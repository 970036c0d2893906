// Package observability provides Prometheus metrics for the notification
// center. Suppressed deliveries are counted here because the subsystem
// stores no record of them; the counter is the only audit trail.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus metrics for notification operations.
// A nil *Metrics is valid; every recording method is a no-op on nil so
// callers never have to guard.
type Metrics struct {
	// CreatedTotal counts stored notifications by type
	CreatedTotal *prometheus.CounterVec
	// SuppressedTotal counts recipients filtered out at creation, by type
	SuppressedTotal *prometheus.CounterVec
	// ReadTotal counts unread-to-read transitions
	ReadTotal prometheus.Counter
	// DeletedTotal counts removed notifications by reason
	DeletedTotal *prometheus.CounterVec
	// SnapshotFailuresTotal counts persistence failures by operation
	SnapshotFailuresTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers notification metrics on a fresh registry.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		CreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrhub_notifications_created_total",
			Help: "Total notifications stored, by notification type.",
		}, []string{"type"}),
		SuppressedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrhub_notifications_suppressed_total",
			Help: "Recipients filtered out by delivery configuration, by notification type.",
		}, []string{"type"}),
		ReadTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hrhub_notifications_read_total",
			Help: "Total unread-to-read transitions.",
		}),
		DeletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrhub_notifications_deleted_total",
			Help: "Total notifications removed, by reason (explicit, bulk, cleanup).",
		}, []string{"reason"}),
		SnapshotFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrhub_snapshot_failures_total",
			Help: "Snapshot persistence failures, by operation (load, save).",
		}, []string{"operation"}),
		registry: registry,
	}

	for _, c := range []prometheus.Collector{
		m.CreatedTotal, m.SuppressedTotal, m.ReadTotal,
		m.DeletedTotal, m.SnapshotFailuresTotal,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register notification metrics: %w", err)
		}
	}

	return m, nil
}

// Registry returns the registry the metrics are registered on, for exposing
// via an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// NotificationCreated records a stored notification.
func (m *Metrics) NotificationCreated(notifType string) {
	if m == nil {
		return
	}
	m.CreatedTotal.WithLabelValues(notifType).Inc()
}

// NotificationSuppressed records a recipient filtered out at creation time.
func (m *Metrics) NotificationSuppressed(notifType string) {
	if m == nil {
		return
	}
	m.SuppressedTotal.WithLabelValues(notifType).Inc()
}

// NotificationsRead records read transitions.
func (m *Metrics) NotificationsRead(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.ReadTotal.Add(float64(count))
}

// NotificationsDeleted records removals with the given reason.
func (m *Metrics) NotificationsDeleted(reason string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.DeletedTotal.WithLabelValues(reason).Add(float64(count))
}

// SnapshotFailure records a persistence failure for the given operation.
func (m *Metrics) SnapshotFailure(operation string) {
	if m == nil {
		return
	}
	m.SnapshotFailuresTotal.WithLabelValues(operation).Inc()
}
