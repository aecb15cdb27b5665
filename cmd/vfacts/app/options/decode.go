package options

import (
	"errors"
	"fmt"
	"slices"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/vfacts/pkg/app"
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// DecodeOptions configures one-off decoding from the command line.
type DecodeOptions struct {
	// Category is a snapshot category, or empty when Codes is set.
	Category string `json:"category" mapstructure:"category"`
	// File holds the snapshot, "-" for stdin. Comments and trailing commas
	// are allowed.
	File string `json:"file" mapstructure:"file"`
	// Codes is a raw option-code string to decode instead of a snapshot.
	Codes  string `json:"codes" mapstructure:"codes"`
	Output string `json:"output" mapstructure:"output"`

	Log *log.Options `json:"log" mapstructure:"log"`
}

var (
	_ app.NamedFlagSetOptions = (*DecodeOptions)(nil)
	_ app.LogOptionsProvider  = (*DecodeOptions)(nil)
)

func NewDecodeOptions() *DecodeOptions {
	l := log.NewOptions()
	l.Level = "warn"
	l.OutputPaths = []string{"stderr"}
	return &DecodeOptions{
		File:   "-",
		Output: OutputTable,
		Log:    l,
	}
}

func (o *DecodeOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	fs := fss.FlagSet("decode")
	fs.StringVar(&o.Category, "category", o.Category, fmt.Sprintf("Snapshot category, one of %v.", vehicle.Categories))
	fs.StringVarP(&o.File, "file", "f", o.File, "File holding the JSON snapshot, - for stdin.")
	fs.StringVar(&o.Codes, "codes", o.Codes, "Decode this option-code string instead of a snapshot.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format, table or json.")
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *DecodeOptions) Complete() error {
	if o.Codes != "" && o.Category == "" {
		o.Category = string(vehicle.CategoryDescription)
	}
	return nil
}

func (o *DecodeOptions) Validate() error {
	errs := []error{}
	if o.Codes == "" {
		if _, err := vehicle.ParseCategory(o.Category); err != nil {
			errs = append(errs, fmt.Errorf("--category: %w", err))
		}
		if o.File == "" {
			errs = append(errs, errors.New("--file is required"))
		}
	}
	if !slices.Contains([]string{OutputTable, OutputJSON}, o.Output) {
		errs = append(errs, fmt.Errorf("--output must be %q or %q, got %q", OutputTable, OutputJSON, o.Output))
	}
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *DecodeOptions) LogOptions() *log.Options { return o.Log }
