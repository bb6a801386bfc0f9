// Package metrics exposes engine events as Prometheus counters.
package metrics

import (
	"github.com/redjkee/transport-analytics/internal/core/invoice"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements invoice.Observer.
type Collector struct {
	files   *prometheus.CounterVec
	records prometheus.Counter
	skipped *prometheus.CounterVec
}

var _ invoice.Observer = (*Collector)(nil)

// NewCollector creates the counters and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoice_files_total",
				Help: "Invoice files processed, partitioned by status (ok, failed).",
			},
			[]string{"status"},
		),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invoice_records_total",
			Help: "Records extracted from invoice files.",
		}),
		skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoice_rows_skipped_total",
				Help: "Data rows that produced no record, partitioned by reason.",
			},
			[]string{"reason"},
		),
	}

	for _, col := range []prometheus.Collector{c.files, c.records, c.skipped} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// FileProcessed counts the file by outcome and adds its records.
func (c *Collector) FileProcessed(_ string, records int, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	c.files.WithLabelValues(status).Inc()
	c.records.Add(float64(records))
}

// RowSkipped counts a skipped row under its reason label.
func (c *Collector) RowSkipped(_ string, _ int, reason invoice.SkipReason) {
	c.skipped.WithLabelValues(string(reason)).Inc()
}
