package ingest

import (
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/mqtt"
	"github.com/autopeer-io/vfacts/pkg/options"
)

// InitializeMQTTClient creates one broker connection. role tells the
// connections of one process apart in their client IDs.
func InitializeMQTTClient(opts *options.MqttOptions, role string) (mqtt.Client, error) {
	cfg := opts.ToClientConfig(role)

	mqttclient, err := mqtt.NewClient(cfg)
	if err != nil {
		log.Error(err, "failed to new mqtt client", "role", role)
		return nil, err
	}

	return mqttclient, nil
}
