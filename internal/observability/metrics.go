package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// PostViews counts successful read-by-id calls on posts.
	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_post_views_total",
		Help: "Total number of post views recorded",
	})

	// LikeEvents counts like state transitions by action (like, unlike).
	LikeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_like_events_total",
		Help: "Total number of like and unlike transitions",
	}, []string{"action"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DatabaseErrors counts failed statements by operation and table, excluding not-found reads.
	DatabaseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_database_errors_total",
		Help: "Total number of failed database statements",
	}, []string{"operation", "table"})
)

const startedAtKey = "inkwell:query_started_at"

// DatabaseMetrics is a gorm plugin that observes the latency of every statement.
type DatabaseMetrics struct{}

// NewDatabaseMetrics returns a new DatabaseMetrics plugin.
func NewDatabaseMetrics() *DatabaseMetrics {
	return &DatabaseMetrics{}
}

// Name implements gorm.Plugin.
func (*DatabaseMetrics) Name() string {
	return "inkwell:metrics"
}

// Initialize implements gorm.Plugin by registering before/after callbacks on
// every processor.
func (m *DatabaseMetrics) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		operation string
		before    func(string) error
		after     func(string) error
	}{
		{"create",
			func(n string) error { return cb.Create().Before("gorm:create").Register(n, m.before) },
			func(n string) error { return cb.Create().After("gorm:create").Register(n, m.after("create")) }},
		{"query",
			func(n string) error { return cb.Query().Before("gorm:query").Register(n, m.before) },
			func(n string) error { return cb.Query().After("gorm:query").Register(n, m.after("query")) }},
		{"update",
			func(n string) error { return cb.Update().Before("gorm:update").Register(n, m.before) },
			func(n string) error { return cb.Update().After("gorm:update").Register(n, m.after("update")) }},
		{"delete",
			func(n string) error { return cb.Delete().Before("gorm:delete").Register(n, m.before) },
			func(n string) error { return cb.Delete().After("gorm:delete").Register(n, m.after("delete")) }},
		{"row",
			func(n string) error { return cb.Row().Before("gorm:row").Register(n, m.before) },
			func(n string) error { return cb.Row().After("gorm:row").Register(n, m.after("row")) }},
		{"raw",
			func(n string) error { return cb.Raw().Before("gorm:raw").Register(n, m.before) },
			func(n string) error { return cb.Raw().After("gorm:raw").Register(n, m.after("raw")) }},
	}

	for _, h := range hooks {
		if err := h.before("inkwell:metrics_before_" + h.operation); err != nil {
			return err
		}
		if err := h.after("inkwell:metrics_after_" + h.operation); err != nil {
			return err
		}
	}
	return nil
}

func (*DatabaseMetrics) before(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func (*DatabaseMetrics) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			DatabaseErrors.WithLabelValues(operation, table).Inc()
		}
	}
}
