package options

import (
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*HttpOptions)(nil)

// HttpOptions contains configuration items related to HTTP server startup.
type HttpOptions struct {
	// Network with server network.
	Network string `json:"network" mapstructure:"network"`

	// Address with server address.
	Addr string `json:"addr" mapstructure:"addr"`

	// Timeout applies to reading requests and writing responses.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxBodyBytes caps decode request bodies.
	MaxBodyBytes int64 `json:"max-body-bytes" mapstructure:"max-body-bytes"`
}

// NewHttpOptions creates a HttpOptions object with default parameters.
func NewHttpOptions() *HttpOptions {
	return &HttpOptions{
		Network:      "tcp",
		Addr:         "0.0.0.0:8080",
		Timeout:      30 * time.Second,
		MaxBodyBytes: 1 << 20,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *HttpOptions) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if err := ValidateAddress(o.Addr); err != nil {
		errs = append(errs, err)
	}
	if o.MaxBodyBytes <= 0 {
		errs = append(errs, errMustBePositive("--http.max-body-bytes"))
	}
	return errs
}

// AddFlags adds the HTTP API flags to the specified FlagSet.
func (o *HttpOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Network, "http.network", o.Network, "Specify the network for the HTTP server.")
	fs.StringVar(&o.Addr, "http.addr", o.Addr, "Specify the HTTP server bind address and port.")
	fs.DurationVar(&o.Timeout, "http.timeout", o.Timeout, "Read and write timeout for HTTP requests.")
	fs.Int64Var(&o.MaxBodyBytes, "http.max-body-bytes", o.MaxBodyBytes, "Largest request body accepted by the decode endpoints.")
}
