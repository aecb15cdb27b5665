package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/utils/clock"

	"github.com/autopeer-io/vfacts/internal/ingest/core"
	"github.com/autopeer-io/vfacts/internal/ingest/core/service"
	"github.com/autopeer-io/vfacts/internal/ingest/notifier"
	"github.com/autopeer-io/vfacts/internal/ingest/server"
	"github.com/autopeer-io/vfacts/internal/ingest/storage"
	"github.com/autopeer-io/vfacts/internal/presence"
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/mqtt/topic"
	"github.com/autopeer-io/vfacts/pkg/options"
)

var errNotConnected = errors.New("mqtt broker not connected")

type Config struct {
	HttpOptions   *options.HttpOptions
	GrpcOptions   *options.GrpcOptions
	MqttOptions   *options.MqttOptions
	S3Options     *options.S3Options
	IngestOptions *IngestOptions
}

func (cfg *Config) NewIngestServer() (*IngestServer, error) {
	clk := clock.RealClock{}
	topics := topic.NewTopicBuilder(cfg.MqttOptions.TopicRoot)

	// Ingress connection, started by the MQTT server.
	ingress, err := InitializeMQTTClient(cfg.MqttOptions, "ingest")
	if err != nil {
		return nil, err
	}

	svcOpts := []service.Option{service.WithLogger(log.Std().Logr().WithName("decoder"))}

	// Egress connection for republished facts.
	var factsNotifier *notifier.MQTTNotifier
	if cfg.IngestOptions.Publish {
		egress, err := InitializeMQTTClient(cfg.MqttOptions, "facts")
		if err != nil {
			return nil, fmt.Errorf("failed to init notifier: %w", err)
		}
		factsNotifier = notifier.NewMQTTNotifier(egress, topics, cfg.MqttOptions.QoS)
		svcOpts = append(svcOpts, service.WithNotifier(factsNotifier))
	}

	var archive core.Archive
	if cfg.IngestOptions.Archive {
		minio, err := storage.NewMinIO(cfg.S3Options)
		if err != nil {
			return nil, err
		}
		archive = minio
		svcOpts = append(svcOpts, service.WithArchive(archive))
	}

	tracker := presence.NewTracker(clk, cfg.IngestOptions.StaleAfter, func(ctx context.Context, t presence.Transition) {
		if factsNotifier == nil {
			return
		}
		if err := factsNotifier.NotifyPresence(ctx, t.VehicleID, t); err != nil {
			log.Error(err, "Failed to publish presence", "vehicleID", t.VehicleID)
		}
	})

	svc := service.New(core.NewStore(clk), tracker, svcOpts...)

	serverConfig := &server.Config{
		HttpOptions: cfg.HttpOptions,
		GrpcOptions: cfg.GrpcOptions,
		MqttOptions: cfg.MqttOptions,
		MqttClient:  ingress,
		Topics:      topics,
		Ready: func() error {
			if !ingress.IsConnected() {
				return errNotConnected
			}
			return nil
		},
	}
	srvManager := server.NewManager(serverConfig, svc)

	if cfg.IngestOptions.SweepInterval > 0 {
		srvManager.Add(server.ServerFunc(func(ctx context.Context) error {
			tracker.Run(ctx, clk, cfg.IngestOptions.SweepInterval)
			return nil
		}))
	}
	if factsNotifier != nil {
		srvManager.Add(server.ServerFunc(func(ctx context.Context) error {
			if err := factsNotifier.Start(ctx); err != nil {
				return fmt.Errorf("failed to start notifier: %w", err)
			}
			<-ctx.Done()
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			factsNotifier.Stop(stopCtx)
			return nil
		}))
	}

	return &IngestServer{
		serverManager: srvManager,
		archive:       archive,
		tracker:       tracker,
	}, nil
}
