package app

import (
	"context"
	"errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
	"time"
)

func TestCreateApp(t *testing.T) {
	tests := map[string]struct {
		cfg     *Config
		wantErr string
	}{
		"empty config": {
			cfg:     &Config{},
			wantErr: "service name is required\nstop timeout is required",
		},
		"valid config": {
			cfg: &Config{ServiceName: "bulkread", StopTimeout: time.Second},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			a, err := CreateApp(tc.cfg)
			if tc.wantErr != "" {
				req.EqualError(err, tc.wantErr)
				req.Nil(a)
				return
			}
			req.NoError(err)
			req.NotNil(a)
		})
	}
}

func mockDep(ctrl *gomock.Controller, name string) *MockDependency {
	d := NewMockDependency(ctrl)
	d.EXPECT().Name().Return(name).AnyTimes()
	return d
}

func TestApp_Run(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		storage := mockDep(ctrl, "Shard Storage")
		server := mockDep(ctrl, "gRPC Server")
		gomock.InOrder(
			storage.EXPECT().Start().Return(nil),
			server.EXPECT().Start().Return(nil),
			server.EXPECT().Stop().Return(nil),
			storage.EXPECT().Stop().Return(nil),
		)

		a, err := CreateApp(&Config{ServiceName: "bulkread", StopTimeout: time.Second}, storage, server)
		req.NoError(err)

		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)
		req.NoError(a.Run(ctx))

		req.EqualError(a.Run(ctx), "run has already been called")
	})

	t.Run("start failure stops started dependencies", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		storage := mockDep(ctrl, "Shard Storage")
		server := mockDep(ctrl, "gRPC Server")
		gomock.InOrder(
			storage.EXPECT().Start().Return(nil),
			server.EXPECT().Start().Return(errors.New("address in use")),
			storage.EXPECT().Stop().Return(nil),
		)

		a, err := CreateApp(&Config{ServiceName: "bulkread", StopTimeout: time.Second}, storage, server)
		req.NoError(err)

		err = a.Run(context.Background())
		req.ErrorContains(err, "failure in Start() for dependency gRPC Server: address in use")
	})

	t.Run("panic in start", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		dep := mockDep(ctrl, "Broken")
		dep.EXPECT().Start().DoAndReturn(func() error { panic("boom") })

		a, err := CreateApp(&Config{ServiceName: "bulkread", StopTimeout: time.Second}, dep)
		req.NoError(err)
		req.ErrorContains(a.Run(context.Background()), "panic in Start() for dependency Broken: boom")
	})

	t.Run("stop timeout", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		dep := mockDep(ctrl, "Slow")
		dep.EXPECT().Start().Return(nil)
		dep.EXPECT().Stop().DoAndReturn(func() error {
			time.Sleep(200 * time.Millisecond)
			return nil
		})

		a, err := CreateApp(&Config{ServiceName: "bulkread", StopTimeout: 20 * time.Millisecond}, dep)
		req.NoError(err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req.ErrorIs(a.Run(ctx), context.DeadlineExceeded)
	})
}
