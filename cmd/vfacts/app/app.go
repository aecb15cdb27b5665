package app

import (
	"fmt"
	"sync/atomic"

	"github.com/spf13/viper"
	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/vfacts/cmd/vfacts/app/options"
	"github.com/autopeer-io/vfacts/internal/ingest"
	"github.com/autopeer-io/vfacts/pkg/app"
	"github.com/autopeer-io/vfacts/pkg/log"
)

const (
	commandName = "vfacts"
	commandDesc = `vfacts turns loosely-typed vehicle snapshots into typed facts.

The serve command ingests snapshots published on MQTT, keeps the latest one
per vehicle and category, and exposes them over HTTP. The decode command
decodes a single snapshot or option-code string from the command line.`

	serveDesc = `Subscribe to {topic-root}/state/{category}/{vehicle}, decode every
snapshot, and serve the results over HTTP and gRPC health checks. Decoded
facts can be republished to {topic-root}/facts/{category}/{vehicle} and raw
payloads archived to S3.`
)

func NewApp() *app.App {
	return app.NewApp(
		commandName,
		"Typed facts from vehicle snapshots",
		app.WithDescription(commandDesc),
		app.WithCommands(newServeApp().Command(), newDecodeApp(nil, nil).Command()),
	)
}

func newServeApp() *app.App {
	opts := options.NewServeOptions()
	var running atomic.Pointer[ingest.IngestServer]
	return app.NewApp(
		"serve",
		"Launch the vfacts ingest server",
		app.WithDescription(serveDesc),
		app.WithOptions(opts),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(serve(opts, &running)),
		app.WithConfigReload(reloadStaleAfter(&running)),
	)
}

// reloadStaleAfter applies ingest.stale-after from a changed config file.
// Everything else needs a restart.
func reloadStaleAfter(running *atomic.Pointer[ingest.IngestServer]) func(v *viper.Viper) {
	return func(v *viper.Viper) {
		if !v.IsSet("ingest.stale-after") {
			return
		}
		d := v.GetDuration("ingest.stale-after")
		if d < 0 {
			log.Warn("Ignoring negative ingest.stale-after from config file", "value", d)
			return
		}
		if srv := running.Load(); srv != nil {
			srv.SetStaleAfter(d)
		}
	}
}

func serve(opts *options.ServeOptions, running *atomic.Pointer[ingest.IngestServer]) app.RunFunc {
	return func() error {
		ctx := genericapiserver.SetupSignalContext()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		server, err := cfg.NewIngestServer()
		if err != nil {
			return fmt.Errorf("failed to create ingest server: %w", err)
		}

		running.Store(server)
		defer running.Store(nil)

		return server.Run(ctx)
	}
}
