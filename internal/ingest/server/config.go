package server

import (
	pkgmqtt "github.com/autopeer-io/vfacts/pkg/mqtt"
	"github.com/autopeer-io/vfacts/pkg/mqtt/topic"
	"github.com/autopeer-io/vfacts/pkg/options"
)

type Config struct {
	HttpOptions *options.HttpOptions
	GrpcOptions *options.GrpcOptions
	MqttOptions *options.MqttOptions

	// MqttClient is the ingress connection. It is started by the MQTT server.
	MqttClient pkgmqtt.Client
	Topics     *topic.TopicBuilder

	// Ready backs /readyz and the gRPC health status.
	Ready func() error
}
