package mqtt

import (
	"context"
	"fmt"
	"time"

	"github.com/autopeer-io/vfacts/internal/ingest/core/service"
	"github.com/autopeer-io/vfacts/pkg/log"
	pkgmqtt "github.com/autopeer-io/vfacts/pkg/mqtt"
	"github.com/autopeer-io/vfacts/pkg/mqtt/topic"
)

// Server implements the MQTT ingress layer.
type Server struct {
	client      pkgmqtt.Client
	topics      *topic.TopicBuilder
	svc         *service.Service
	qos         int
	sharedGroup string
}

// NewServer creates a new MQTT server (client).
func NewServer(client pkgmqtt.Client, builder *topic.TopicBuilder, svc *service.Service, qos int, sharedGroup string) *Server {
	return &Server{
		client:      client,
		topics:      builder,
		svc:         svc,
		qos:         qos,
		sharedGroup: sharedGroup,
	}
}

// Start connects to the broker and subscribes to raw snapshots.
func (s *Server) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return err
	}

	defer func() {
		log.Info("Disconnecting MQTT client...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.client.Disconnect(shutdownCtx)
	}()

	log.Info("Waiting for MQTT connection...")
	if err := s.client.AwaitConnection(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	log.Info("MQTT Connected")

	if err := s.subscribe(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

// Filter returns the topic filter the server subscribes to.
func (s *Server) Filter() string {
	filter := s.topics.StateWildcard()
	if s.sharedGroup != "" {
		filter = "$share/" + s.sharedGroup + "/" + filter
	}
	return filter
}

func (s *Server) subscribe(ctx context.Context) error {
	filter := s.Filter()
	if err := s.client.Subscribe(ctx, filter, s.qos, s.handleState); err != nil {
		return fmt.Errorf("failed to subscribe to topic: %s, err: %w", filter, err)
	}
	return nil
}

// handleState ingests one raw snapshot published on
// {root}/state/{category}/{vehicleID}.
func (s *Server) handleState(ctx context.Context, t string, payload []byte) {
	category, vehicleID, ok := s.topics.ParseState(t)
	if !ok {
		log.Warn("Ignoring message on unexpected topic", "topic", t)
		return
	}
	if _, err := s.svc.Ingest(ctx, vehicleID, category, payload); err != nil {
		log.Error(err, "Failed to ingest snapshot", "topic", t, "vehicleID", vehicleID, "category", category)
	}
}
