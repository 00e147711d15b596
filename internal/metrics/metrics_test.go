package metrics

import (
	"context"
	"errors"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
)

func TestNew(t *testing.T) {
	req := require.New(t)
	reg := prometheus.NewRegistry()
	m := New(reg)
	req.NotNil(m)

	m.RowsRead.Add(3)
	m.RecordsEmitted.Inc()
	req.Equal(float64(3), testutil.ToFloat64(m.RowsRead))
	req.Equal(float64(1), testutil.ToFloat64(m.RecordsEmitted))

	// registering twice on the same registry panics
	req.Panics(func() { New(reg) })
}

func TestMetrics_Instrument(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := New(prometheus.NewRegistry())
	mockStore := store.NewMockRowStore(ctrl)
	row := store.NewMockRowHandle(ctrl)

	ok := &store.PageRequest{Column: request.Selector{Family: "info"}}
	bad := &store.PageRequest{Column: request.Selector{Family: "jobs", Qualifier: "title"}}

	mockStore.EXPECT().FetchPage(ctx, row, ok).Return(&store.Page{}, nil).Times(2)
	mockStore.EXPECT().FetchPage(ctx, row, bad).Return(nil, errors.New("timeout"))

	wrapped := m.Instrument(mockStore)
	_, err := wrapped.FetchPage(ctx, row, ok)
	req.NoError(err)
	_, err = wrapped.FetchPage(ctx, row, ok)
	req.NoError(err)
	_, err = wrapped.FetchPage(ctx, row, bad)
	req.Error(err)

	req.Equal(float64(2), testutil.ToFloat64(m.PageFetches.WithLabelValues("info")))
	req.Equal(float64(1), testutil.ToFloat64(m.PageFetches.WithLabelValues("jobs")))
	req.Equal(float64(0), testutil.ToFloat64(m.FetchFailures.WithLabelValues("info")))
	req.Equal(float64(1), testutil.ToFloat64(m.FetchFailures.WithLabelValues("jobs")))

	// scans are passed through untouched
	mockStore.EXPECT().OpenScan(ctx, store.RowRange{}, gomock.Any()).Return(nil, errors.New("down"))
	_, err = wrapped.OpenScan(ctx, store.RowRange{}, nil)
	req.Error(err)
}
