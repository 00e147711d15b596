package pager

import (
	"context"
	"errors"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
)

func cells(qualifier string, n int) []litetable.Cell {
	out := make([]litetable.Cell, n)
	for i := range out {
		out[i] = litetable.Cell{Family: "info", Qualifier: qualifier, Timestamp: int64(n - i)}
	}
	return out
}

func TestNew_ColumnAbsent(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	column := request.Column{Selector: request.Selector{Family: "jobs"}, Policy: request.Policy{PageSize: 2}}

	mockStore := store.NewMockRowStore(ctrl)
	mockStore.EXPECT().FetchPage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	mockRow := store.NewMockRowHandle(ctrl)
	mockRow.EXPECT().HasColumn(column.Selector).Return(false)

	src := New(mockStore, mockRow, column)
	req.Equal(column.Selector, src.Selector())
	req.False(src.Exhausted())

	got, hasMore, err := src.FetchNextPage(context.Background())
	req.NoError(err)
	req.Empty(got)
	req.False(hasMore)
	req.True(src.Exhausted())

	got, hasMore, err = src.FetchNextPage(context.Background())
	req.NoError(err)
	req.Empty(got)
	req.False(hasMore)
}

func TestFetcher_FollowsTokens(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	column := request.Column{
		Selector: request.Selector{Family: "info", Qualifier: "name"},
		Policy:   request.Policy{MaxVersions: 10, PageSize: 1},
	}

	mockRow := store.NewMockRowHandle(ctrl)
	mockRow.EXPECT().HasColumn(column.Selector).Return(true)

	mockStore := store.NewMockRowStore(ctrl)
	gomock.InOrder(
		mockStore.EXPECT().
			FetchPage(ctx, mockRow, &store.PageRequest{Column: column.Selector, PageSize: 1, MaxVersions: 10}).
			Return(&store.Page{Cells: cells("name", 1), NextToken: "1"}, nil),
		mockStore.EXPECT().
			FetchPage(ctx, mockRow, &store.PageRequest{Column: column.Selector, Token: "1", PageSize: 1, MaxVersions: 10}).
			Return(&store.Page{Cells: cells("name", 1), NextToken: "2"}, nil),
		mockStore.EXPECT().
			FetchPage(ctx, mockRow, &store.PageRequest{Column: column.Selector, Token: "2", PageSize: 1, MaxVersions: 10}).
			Return(&store.Page{Cells: cells("name", 1)}, nil),
	)

	src := New(mockStore, mockRow, column)

	for i, wantMore := range []bool{true, true, false} {
		got, hasMore, err := src.FetchNextPage(ctx)
		req.NoError(err)
		req.Len(got, 1, "page %d", i+1)
		req.Equal(wantMore, hasMore, "page %d", i+1)
	}
	req.True(src.Exhausted())

	// exhausted sources do not go back to the store
	got, hasMore, err := src.FetchNextPage(ctx)
	req.NoError(err)
	req.Empty(got)
	req.False(hasMore)
}

func TestFetcher_DefaultVersions(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	column := request.Column{Selector: request.Selector{Family: "jobs"}, Policy: request.Policy{PageSize: 3}}

	mockRow := store.NewMockRowHandle(ctrl)
	mockRow.EXPECT().HasColumn(gomock.Any()).Return(true)

	mockStore := store.NewMockRowStore(ctrl)
	mockStore.EXPECT().
		FetchPage(gomock.Any(), mockRow, &store.PageRequest{Column: column.Selector, PageSize: 3,
			MaxVersions: request.DefaultMaxVersions}).
		Return(&store.Page{}, nil)

	_, hasMore, err := New(mockStore, mockRow, column).FetchNextPage(context.Background())
	require.NoError(t, err)
	require.False(t, hasMore)
}

func TestFetcher_StoreFailure(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("boom")
	column := request.Column{Selector: request.Selector{Family: "jobs"}, Policy: request.Policy{PageSize: 2}}

	mockRow := store.NewMockRowHandle(ctrl)
	mockRow.EXPECT().HasColumn(column.Selector).Return(true)
	mockRow.EXPECT().Key().Return([]byte("foo")).AnyTimes()

	mockStore := store.NewMockRowStore(ctrl)
	mockStore.EXPECT().FetchPage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)

	src := New(mockStore, mockRow, column)
	got, hasMore, err := src.FetchNextPage(context.Background())
	req.Error(err)
	req.True(errors.Is(err, litetable.ErrFetchFailed))
	req.True(errors.Is(err, boom))
	req.Contains(err.Error(), "jobs")
	req.Nil(got)
	req.False(hasMore)
}
