// Package metrics holds the Prometheus counters of the bulk reader.
package metrics

import (
	"context"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for record cursors.
type Metrics struct {
	RowsRead       prometheus.Counter
	RecordsEmitted prometheus.Counter
	PageFetches    *prometheus.CounterVec
	FetchFailures  *prometheus.CounterVec
}

// New creates and registers all metrics with the provided registry.
func New(reg prometheus.Registerer) *Metrics {
	rowsRead := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "litetable_bulkread_rows_read_total",
		Help: "Total rows taken from row sources",
	})

	recordsEmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "litetable_bulkread_records_emitted_total",
		Help: "Total flattened records returned to consumers",
	})

	pageFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "litetable_bulkread_page_fetches_total",
		Help: "Total page fetches issued to the row store per column family",
	}, []string{"family"})

	fetchFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "litetable_bulkread_fetch_failures_total",
		Help: "Total page fetches the row store failed per column family",
	}, []string{"family"})

	reg.MustRegister(rowsRead, recordsEmitted, pageFetches, fetchFailures)

	return &Metrics{
		RowsRead:       rowsRead,
		RecordsEmitted: recordsEmitted,
		PageFetches:    pageFetches,
		FetchFailures:  fetchFailures,
	}
}

// Instrument wraps a row store so every FetchPage is counted.
func (m *Metrics) Instrument(rowStore store.RowStore) store.RowStore {
	return &instrumented{RowStore: rowStore, metrics: m}
}

type instrumented struct {
	store.RowStore
	metrics *Metrics
}

func (i *instrumented) FetchPage(ctx context.Context, row store.RowHandle, req *store.PageRequest) (*store.Page, error) {
	family := req.Column.Family
	i.metrics.PageFetches.WithLabelValues(family).Inc()

	page, err := i.RowStore.FetchPage(ctx, row, req)
	if err != nil {
		i.metrics.FetchFailures.WithLabelValues(family).Inc()
	}
	return page, err
}
