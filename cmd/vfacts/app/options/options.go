package options

import (
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/vfacts/internal/ingest"
	"github.com/autopeer-io/vfacts/pkg/app"
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/options"
)

// ServeOptions configures the ingest server.
type ServeOptions struct {
	HttpOptions   *options.HttpOptions  `json:"http" mapstructure:"http"`
	GrpcOptions   *options.GrpcOptions  `json:"grpc" mapstructure:"grpc"`
	MqttOptions   *options.MqttOptions  `json:"mqtt" mapstructure:"mqtt"`
	S3Options     *options.S3Options    `json:"s3" mapstructure:"s3"`
	IngestOptions *ingest.IngestOptions `json:"ingest" mapstructure:"ingest"`
	Log           *log.Options          `json:"log" mapstructure:"log"`
}

var (
	_ app.NamedFlagSetOptions = (*ServeOptions)(nil)
	_ app.LogOptionsProvider  = (*ServeOptions)(nil)
)

func NewServeOptions() *ServeOptions {
	return &ServeOptions{
		HttpOptions:   options.NewHttpOptions(),
		GrpcOptions:   options.NewGrpcOptions(),
		MqttOptions:   options.NewMqttOptions(),
		S3Options:     options.NewS3Options(),
		IngestOptions: ingest.NewIngestOptions(),
		Log:           log.NewOptions(),
	}
}

func (o *ServeOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.IngestOptions.AddFlags(fss.FlagSet("ingest"))
	o.MqttOptions.AddFlags(fss.FlagSet("mqtt"))
	o.HttpOptions.AddFlags(fss.FlagSet("http"))
	o.GrpcOptions.AddFlags(fss.FlagSet("grpc"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *ServeOptions) Complete() error {
	return nil
}

func (o *ServeOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.IngestOptions.Validate()...)
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.GrpcOptions.Validate()...)
	if o.IngestOptions.Archive {
		errs = append(errs, o.S3Options.Validate()...)
	}
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *ServeOptions) LogOptions() *log.Options { return o.Log }

func (o *ServeOptions) Config() (*ingest.Config, error) {
	return &ingest.Config{
		HttpOptions:   o.HttpOptions,
		GrpcOptions:   o.GrpcOptions,
		MqttOptions:   o.MqttOptions,
		S3Options:     o.S3Options,
		IngestOptions: o.IngestOptions,
	}, nil
}
