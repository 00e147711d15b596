package rowsource

import (
	"context"
	"errors"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/shard_storage"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
)

func handle(ctrl *gomock.Controller, key string) *store.MockRowHandle {
	h := store.NewMockRowHandle(ctrl)
	h.EXPECT().Key().Return([]byte(key)).AnyTimes()
	return h
}

func TestOpen(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection refused")

	tests := map[string]struct {
		rng       store.RowRange
		mockSetup func(m *store.MockRowStore)
		wantErr   error
	}{
		"store cannot scan": {
			mockSetup: func(m *store.MockRowStore) {
				m.EXPECT().OpenScan(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)
			},
			wantErr: litetable.ErrStoreUnavailable,
		},
		"inverted range": {
			rng: store.RowRange{Start: []byte("z"), End: []byte("a")},
			mockSetup: func(m *store.MockRowStore) {
				m.EXPECT().OpenScan(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: litetable.ErrMalformedRequest,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := store.NewMockRowStore(ctrl)
			tc.mockSetup(mockStore)

			src, err := Open(context.Background(), mockStore, tc.rng, nil)
			req.ErrorIs(err, tc.wantErr)
			req.Nil(src)
		})
	}
}

func TestSource_Bounds(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// a store that ignores the range: the source still honours it
	it := store.NewMockRowIterator(ctrl)
	rows := []*store.MockRowHandle{handle(ctrl, "a"), handle(ctrl, "c"), handle(ctrl, "d"), handle(ctrl, "m")}
	calls := make([]any, 0, len(rows))
	for _, r := range rows {
		calls = append(calls, it.EXPECT().Next(ctx).Return(true))
		calls = append(calls, it.EXPECT().Row().Return(r))
	}
	gomock.InOrder(calls...)
	it.EXPECT().Err().Return(nil)
	it.EXPECT().Close().Return(nil).Times(1)

	mockStore := store.NewMockRowStore(ctrl)
	rng := store.RowRange{Start: []byte("b"), End: []byte("m")}
	mockStore.EXPECT().OpenScan(ctx, rng, gomock.Nil()).Return(it, nil)

	src, err := Open(ctx, mockStore, rng, nil)
	req.NoError(err)

	var got []string
	for src.Next(ctx) {
		got = append(got, string(src.Row().Key()))
	}
	req.NoError(src.Err())
	req.Equal([]string{"c", "d"}, got)
	req.False(src.Next(ctx))
	req.Nil(src.Row())

	req.NoError(src.Close())
	req.NoError(src.Close())
}

func TestSource_ScanFailure(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("scanner lease expired")
	it := store.NewMockRowIterator(ctrl)
	gomock.InOrder(
		it.EXPECT().Next(ctx).Return(true),
		it.EXPECT().Row().Return(handle(ctrl, "a")),
		it.EXPECT().Next(ctx).Return(false),
		it.EXPECT().Err().Return(boom),
	)
	it.EXPECT().Close().Return(nil)

	mockStore := store.NewMockRowStore(ctrl)
	mockStore.EXPECT().OpenScan(ctx, gomock.Any(), gomock.Any()).Return(it, nil)

	src, err := Open(ctx, mockStore, store.RowRange{}, nil)
	req.NoError(err)
	req.True(src.Next(ctx))
	req.False(src.Next(ctx))
	req.ErrorIs(src.Err(), litetable.ErrStoreUnavailable)
	req.ErrorIs(src.Err(), boom)
	req.False(src.Next(ctx))
	req.NoError(src.Close())
}

func TestSource_OutOfOrderKeys(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	it := store.NewMockRowIterator(ctrl)
	gomock.InOrder(
		it.EXPECT().Next(ctx).Return(true),
		it.EXPECT().Row().Return(handle(ctrl, "b")),
		it.EXPECT().Next(ctx).Return(true),
		it.EXPECT().Row().Return(handle(ctrl, "a")),
	)
	it.EXPECT().Close().Return(nil)

	mockStore := store.NewMockRowStore(ctrl)
	mockStore.EXPECT().OpenScan(ctx, gomock.Any(), gomock.Any()).Return(it, nil)

	src, err := Open(ctx, mockStore, store.RowRange{}, nil)
	req.NoError(err)
	req.True(src.Next(ctx))
	req.False(src.Next(ctx))
	req.ErrorIs(src.Err(), litetable.ErrStoreUnavailable)
	req.NoError(src.Close())
}

func TestSource_ShardStorage(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctx := context.Background()

	m, err := shard_storage.New(&shard_storage.Config{ShardCount: 3})
	req.NoError(err)
	for _, key := range []string{"user:3", "user:1", "user:2", "admin:1"} {
		req.NoError(m.Put(key, "info", "name", 1, []byte(key)))
	}

	src, err := Open(ctx, m, store.RowRange{Start: []byte("user:")}, nil)
	req.NoError(err)
	defer src.Close()

	var got []string
	for src.Next(ctx) {
		got = append(got, string(src.Row().Key()))
	}
	req.NoError(src.Err())
	req.Equal([]string{"user:1", "user:2", "user:3"}, got)
}
