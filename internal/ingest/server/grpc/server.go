package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcmw "github.com/autopeer-io/vfacts/internal/pkg/middleware/grpc"
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/options"
)

// ServiceName is the name reported to health checks for the ingest pipeline.
const ServiceName = "vfacts.ingest"

// ReadyFunc reports whether the ingest pipeline can take traffic.
type ReadyFunc func() error

type Server struct {
	server  *grpc.Server
	health  *health.Server
	ready   ReadyFunc
	options *options.GrpcOptions
}

func NewServer(opts *options.GrpcOptions, ready ReadyFunc) *Server {
	s := grpc.NewServer(grpc.UnaryInterceptor(grpcmw.UnaryTimeoutInterceptor(grpcmw.DefaultRPCTimeout)))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s) // Enable grpc_cli support

	return &Server{
		server:  s,
		health:  hs,
		ready:   ready,
		options: opts,
	}
}

func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen(s.options.Network, s.options.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve runs the server on lis until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	log.Info("Starting gRPC Server", "addr", lis.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(lis); err != nil {
			errCh <- err
		}
	}()
	go s.watchReadiness(ctx)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.health.Shutdown()
		s.stop()
		return nil
	}
}

// watchReadiness mirrors ReadyFunc into the health status of ServiceName.
func (s *Server) watchReadiness(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		s.health.SetServingStatus(ServiceName, s.status())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) status() healthpb.HealthCheckResponse_ServingStatus {
	if s.ready != nil && s.ready() != nil {
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}

// stop waits for in-flight calls up to the configured timeout.
func (s *Server) stop() {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.options.Timeout):
		log.Warn("gRPC graceful stop timed out, forcing")
		s.server.Stop()
	}
}
