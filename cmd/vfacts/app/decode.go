package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/tidwall/jsonc"

	"github.com/autopeer-io/vfacts/cmd/vfacts/app/options"
	"github.com/autopeer-io/vfacts/internal/ingest/core/service"
	"github.com/autopeer-io/vfacts/pkg/app"
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/record"
	"github.com/autopeer-io/vfacts/pkg/vehicle"
	vehicleoptions "github.com/autopeer-io/vfacts/pkg/vehicle/options"
)

const decodeDesc = `Decode one snapshot read from --file (stdin by default), or the option
codes given with --codes, and print the typed facts.

Examples:
  vfacts decode --category charge -f charge.json
  vfacts decode --codes MDLS,RENA,BT85,PPSR,DV4W,PD01 -o json`

func newDecodeApp(in io.Reader, out io.Writer) *app.App {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	opts := options.NewDecodeOptions()
	return app.NewApp(
		"decode",
		"Decode a snapshot or option codes",
		app.WithDescription(decodeDesc),
		app.WithOptions(opts),
		app.WithNoConfig(),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(decode(opts, in, out)),
	)
}

func decode(opts *options.DecodeOptions, in io.Reader, out io.Writer) app.RunFunc {
	return func() error {
		logger := log.Std().Logr().WithName("decoder")

		if opts.Codes != "" {
			o := vehicleoptions.Parse(opts.Codes, logger)
			if opts.Output == options.OutputJSON {
				return writeJSON(out, o.Summary())
			}
			return writeOptionsTable(out, o)
		}

		data, err := readInput(opts.File, in)
		if err != nil {
			return err
		}

		r, err := record.Parse(jsonc.ToJSON(data), logger)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", opts.File, err)
		}
		category := vehicle.Category(opts.Category)
		snap, err := vehicle.Decode(category, r)
		if err != nil {
			return err
		}

		facts := service.Facts(snap)
		if opts.Output == options.OutputJSON {
			return writeJSON(out, facts)
		}
		return writeSnapshotTable(out, category, facts, r.Unrecognized())
	}
}

func readInput(file string, in io.Reader) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(in)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeOptionsTable(out io.Writer, o vehicleoptions.Options) error {
	sum := o.Summary()

	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true
	table.AddRow("FACT", "VALUE", "CODE")
	for _, row := range []struct {
		name string
		v    vehicleoptions.Coded
	}{
		{"Model", sum.Model},
		{"Type", sum.ModelType},
		{"Region", sum.Region},
		{"Trim", sum.TrimLevel},
		{"Drive Side", sum.DriveSide},
		{"Drive", sum.DriveType},
		{"Battery", sum.BatteryType},
		{"Paint", sum.PaintColor},
		{"Roof", sum.RoofType},
		{"Wheels", sum.WheelType},
		{"Seats", sum.SeatType},
		{"Decor", sum.DecorType},
		{"Adapter", sum.AdapterType},
	} {
		table.AddRow(row.name, row.v.Name, row.v.Code)
	}
	table.AddRow("Interior", sum.InteriorColor, "")
	table.AddRow("Year", sum.ProductionYear, "")

	var enabled []string
	for name, on := range sum.Features {
		if on {
			enabled = append(enabled, name)
		}
	}
	sort.Strings(enabled)
	table.AddRow("Features", strings.Join(enabled, ", "), "")
	if len(sum.Malformed) > 0 {
		table.AddRow("Malformed", fmt.Sprintf("%q", sum.Malformed), "")
	}

	_, err := fmt.Fprintln(out, table)
	return err
}

// writeSnapshotTable prints facts as sorted FIELD/VALUE rows. Nested objects
// are flattened with dotted names.
func writeSnapshotTable(out io.Writer, category vehicle.Category, facts any, unrecognized []record.Unrecognized) error {
	raw, err := json.Marshal(facts)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}

	rows := map[string]any{}
	flatten("", m, rows)
	if cs, ok := facts.(vehicle.ClimateState); ok {
		rows["inside_temp_f"] = vehicle.CToF(cs.InsideTemp)
		rows["outside_temp_f"] = vehicle.CToF(cs.OutsideTemp)
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true
	table.AddRow("FIELD", "VALUE")
	for _, k := range keys {
		table.AddRow(k, rows[k])
	}
	for _, u := range unrecognized {
		table.AddRow("unrecognized", fmt.Sprintf("%s=%q (%s)", u.Field, u.Value, u.Family))
	}

	if _, err := fmt.Fprintf(out, "%s snapshot\n", category); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, table)
	return err
}

func flatten(prefix string, m map[string]any, into map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, into)
			continue
		}
		into[key] = v
	}
}
