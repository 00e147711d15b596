// Package grpc serves an in-memory table over the LiteTable Read RPC, so a snapshot can be
// read by remote bulk readers.
package grpc

import (
	"errors"
	"fmt"
	"github.com/litetable/litetable-db/pkg/proto"
	"github.com/rs/zerolog/log"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"net"
	"strconv"
	"sync"
	"time"
)

//go:generate mockgen -destination=grpc_mock.go -package=grpc -source=grpc.go

type grpcServer interface {
	Serve(lis net.Listener) error
	GracefulStop()
}

// startupGrace is how long Start waits for Serve to fail before reporting success.
const startupGrace = 200 * time.Millisecond

// Server implements the app.Dependency interface for the snapshot server.
type Server struct {
	address string
	server  grpcServer
	listen  func(network, address string) (net.Listener, error)

	mutex    sync.Mutex
	listener net.Listener
}

type Config struct {
	Address string
	// Port 0 binds an ephemeral port; see Addr.
	Port int
	Rows rowReader
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("address required"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errGrp = append(errGrp, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.Rows == nil {
		errGrp = append(errGrp, fmt.Errorf("rows required"))
	}

	return errors.Join(errGrp...)
}

// NewServer registers the Read service. Nothing is bound until Start.
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	srv := grpc2.NewServer()
	proto.RegisterLitetableServiceServer(srv, &lt{rows: cfg.Rows})
	reflection.Register(srv)

	return &Server{
		address: net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.Port)),
		server:  srv,
		listen:  net.Listen,
	}, nil
}

// Start binds the listener and serves in the background. It fails if the address cannot be
// bound or Serve returns within the startup grace period.
func (s *Server) Start() error {
	lis, err := s.listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	s.mutex.Lock()
	s.listener = lis
	s.mutex.Unlock()

	log.Info().Msgf("gRPC server listening at %s", lis.Addr())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(lis); err != nil {
			log.Error().Err(err).Msg("gRPC server failed")
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(startupGrace):
		return nil
	}
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) Stop() error {
	log.Info().Msg("Stopping gRPC server")
	s.server.GracefulStop()
	return nil
}

func (s *Server) Name() string {
	return "gRPC Server"
}
