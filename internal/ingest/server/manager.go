package server

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/autopeer-io/vfacts/internal/ingest/core/service"
	"github.com/autopeer-io/vfacts/internal/ingest/server/grpc"
	"github.com/autopeer-io/vfacts/internal/ingest/server/http"
	"github.com/autopeer-io/vfacts/internal/ingest/server/mqtt"
	"github.com/autopeer-io/vfacts/pkg/log"
)

// Server defines the common interface for all sub-servers (grpc, mqtt, http).
type Server interface {
	Start(ctx context.Context) error
}

// ServerFunc lets a plain function run under the Manager.
type ServerFunc func(ctx context.Context) error

func (f ServerFunc) Start(ctx context.Context) error { return f(ctx) }

// Manager manages the lifecycle of all protocol servers.
type Manager struct {
	servers []Server
}

// NewManager creates a new server manager and initializes all sub-servers.
func NewManager(cfg *Config, svc *service.Service) *Manager {
	var servers []Server

	// Data plane
	servers = append(servers, mqtt.NewServer(cfg.MqttClient, cfg.Topics, svc, cfg.MqttOptions.QoS, cfg.MqttOptions.SharedGroup))

	// Health, metrics and the query API
	servers = append(servers, http.NewServer(cfg.HttpOptions, svc, cfg.Ready))

	if cfg.GrpcOptions != nil && cfg.GrpcOptions.Enabled {
		servers = append(servers, grpc.NewServer(cfg.GrpcOptions, cfg.Ready))
	}

	return &Manager{
		servers: servers,
	}
}

// Add registers another server to run alongside the protocol servers.
func (m *Manager) Add(s Server) {
	m.servers = append(m.servers, s)
}

// Start launches all servers in parallel and waits for termination. The
// first server to fail stops the others.
func (m *Manager) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, srv := range m.servers {
		g.Go(func() error {
			return srv.Start(ctx)
		})
	}

	log.Info("All servers starting...", "count", len(m.servers))
	return g.Wait()
}
