package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"elotec-nettbutikk/models"
)

// Drop reasons used as the "reason" label of RowsDropped
const (
	ReasonExistingMaster  = "existing_master"
	ReasonUnusable        = "unusable"
	ReasonUnresolvedColor = "unresolved_color"
	ReasonSingleton       = "singleton"
)

// Registry holds the collectors of one process on its own prometheus registry
type Registry struct {
	reg             *prometheus.Registry
	RowsRead        prometheus.Counter
	RowsDropped     *prometheus.CounterVec
	MasterGroups    prometheus.Counter
	Exports         *prometheus.CounterVec
	ProcessDuration prometheus.Histogram
}

// NewRegistry creates and registers every collector
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	rowsRead := prometheus.NewCounter(prometheus.CounterOpts{Name: "elotec_rows_read_total"})
	rowsDropped := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "elotec_rows_dropped_total"}, []string{"reason"})
	masterGroups := prometheus.NewCounter(prometheus.CounterOpts{Name: "elotec_master_groups_total"})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "elotec_exports_total"}, []string{"part"})
	processDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "elotec_process_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(rowsRead, rowsDropped, masterGroups, exports, processDuration)
	return &Registry{
		reg:             r,
		RowsRead:        rowsRead,
		RowsDropped:     rowsDropped,
		MasterGroups:    masterGroups,
		Exports:         exports,
		ProcessDuration: processDuration,
	}
}

// ObserveGroupStats records the outcome of one grouping run.
// Singletons count once per group, the other reasons once per row.
func (r *Registry) ObserveGroupStats(stats models.GroupStats) {
	r.RowsRead.Add(float64(stats.RowsRead))
	r.RowsDropped.WithLabelValues(ReasonExistingMaster).Add(float64(stats.ExistingMasters))
	r.RowsDropped.WithLabelValues(ReasonUnusable).Add(float64(stats.UnusableRows))
	r.RowsDropped.WithLabelValues(ReasonUnresolvedColor).Add(float64(stats.UnresolvedColors))
	r.RowsDropped.WithLabelValues(ReasonSingleton).Add(float64(stats.SingletonGroups))
	r.MasterGroups.Add(float64(stats.MasterGroups))
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
