package grpc

import (
	"context"
	"errors"
	"github.com/litetable/litetable-bulkread/internal/shard_storage"
	"github.com/litetable/litetable-db/pkg/proto"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"net"
	"testing"
	"time"
)

func TestNewServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := map[string]struct {
		cfg     *Config
		wantErr string
	}{
		"invalid config": {
			cfg:     &Config{Port: -1},
			wantErr: "address required\nport out of range: -1\nrows required",
		},
		"ephemeral port": {
			cfg: &Config{Address: "127.0.0.1", Rows: NewMockrowReader(ctrl)},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			got, err := NewServer(tc.cfg)
			if tc.wantErr != "" {
				req.EqualError(err, tc.wantErr)
				req.Nil(got)
				return
			}
			req.NoError(err)
			req.Equal("127.0.0.1:0", got.address)
			req.Nil(got.Addr())
			req.Equal("gRPC Server", got.Name())
		})
	}
}

func TestServer_ReadOverLoopback(t *testing.T) {
	req := require.New(t)

	rows, err := shard_storage.New(&shard_storage.Config{ShardCount: 2})
	req.NoError(err)
	req.NoError(rows.Put("user:1", "info", "name", 1, []byte("ada")))
	req.NoError(rows.Put("user:2", "info", "name", 1, []byte("grace")))

	srv, err := NewServer(&Config{Address: "127.0.0.1", Rows: rows})
	req.NoError(err)
	req.NoError(srv.Start())
	defer srv.Stop()
	req.NotNil(srv.Addr())

	conn, err := grpc.NewClient(srv.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	req.NoError(err)
	defer conn.Close()

	client := proto.NewLitetableServiceClient(conn)

	resp, err := client.Read(context.Background(), &proto.ReadRequest{
		Family:    "info",
		RowKey:    "user:",
		QueryType: proto.QueryType_PREFIX,
	})
	req.NoError(err)
	req.Len(resp.GetRows(), 2)
	req.Equal([]byte("grace"),
		resp.GetRows()["user:2"].GetCols()["info"].GetQualifiers()["name"].GetValues()[0].GetValue())

	_, err = client.Read(context.Background(), &proto.ReadRequest{
		Family:    "info",
		RowKey:    "admin:1",
		QueryType: proto.QueryType_EXACT,
	})
	req.Equal(codes.NotFound, status.Code(err))

	_, err = client.Read(context.Background(), &proto.ReadRequest{Family: "info"})
	req.Equal(codes.InvalidArgument, status.Code(err))
}

type stubListener struct {
	net.Listener
}

func (l *stubListener) Addr() net.Addr { return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9443} }
func (l *stubListener) Close() error   { return nil }

func TestServer_Start(t *testing.T) {
	tests := map[string]struct {
		listenErr error
		mockSetup func(m *MockgrpcServer, lis net.Listener)
		wantErr   string
	}{
		"serving": {
			mockSetup: func(m *MockgrpcServer, lis net.Listener) {
				m.EXPECT().Serve(lis).DoAndReturn(func(net.Listener) error {
					time.Sleep(2 * startupGrace)
					return nil
				})
			},
		},
		"serve fails": {
			mockSetup: func(m *MockgrpcServer, lis net.Listener) {
				m.EXPECT().Serve(lis).Return(errors.New("tls handshake setup"))
			},
			wantErr: "tls handshake setup",
		},
		"address in use": {
			listenErr: errors.New("bind: address already in use"),
			mockSetup: func(m *MockgrpcServer, _ net.Listener) {
				m.EXPECT().Serve(gomock.Any()).Times(0)
			},
			wantErr: "failed to listen on 127.0.0.1:9443: bind: address already in use",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			lis := &stubListener{}
			mockServer := NewMockgrpcServer(ctrl)
			tc.mockSetup(mockServer, lis)

			s := &Server{
				address: "127.0.0.1:9443",
				server:  mockServer,
				listen: func(string, string) (net.Listener, error) {
					if tc.listenErr != nil {
						return nil, tc.listenErr
					}
					return lis, nil
				},
			}

			err := s.Start()
			if tc.wantErr != "" {
				req.EqualError(err, tc.wantErr)
				return
			}
			req.NoError(err)
			req.Equal("127.0.0.1:9443", s.Addr().String())
		})
	}
}

func TestServer_Stop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServer := NewMockgrpcServer(ctrl)
	mockServer.EXPECT().GracefulStop().Times(1)

	s := &Server{server: mockServer}
	require.NoError(t, s.Stop())
}
