// Package record reads loosely typed, JSON-shaped records without ever failing.
//
// A Record wraps one decoded JSON object as delivered by the upstream vehicle
// API. Every accessor takes a default and returns it when the field is absent
// or has a type that cannot be coerced, so schema drift upstream never aborts
// decoding of the rest of the record.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"github.com/autopeer-io/vfacts/pkg/enum"
)

// ErrNotObject is returned by Parse when the payload is not a JSON object.
var ErrNotObject = errors.New("record: payload is not a JSON object")

// Unrecognized describes a field whose value did not match any known tag.
type Unrecognized struct {
	Field  string `json:"field"`
	Family string `json:"family"`
	Value  string `json:"value"`
}

// Record is a read-only view over a JSON object.
//
// A Record borrows the map it was built from; callers must not mutate the map
// while decoding. Snapshots built from a Record copy what they need and keep
// no reference to it.
type Record struct {
	fields map[string]any
	log    logr.Logger

	// diag is shared by the nested records returned from Object so that
	// unrecognized values are reported once per top-level decode.
	diag *diagnostics
}

type diagnostics struct {
	mu           sync.Mutex
	unrecognized []Unrecognized
}

// New wraps fields. A nil map is treated as an empty record.
func New(fields map[string]any, logger logr.Logger) Record {
	return Record{fields: fields, log: logger, diag: &diagnostics{}}
}

// Parse decodes data as a JSON object. Numbers are kept as json.Number so that
// large integers survive the round trip.
func Parse(data []byte, logger logr.Logger) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Record{}, fmt.Errorf("record: decode payload: %w", err)
	}
	fields, ok := v.(map[string]any)
	if !ok {
		return Record{}, ErrNotObject
	}
	return New(fields, logger), nil
}

// Empty reports whether the record carries no fields at all.
func (r Record) Empty() bool { return len(r.fields) == 0 }

// Len returns the number of top-level fields.
func (r Record) Len() int { return len(r.fields) }

// Has reports whether key is present with a non-null value.
func (r Record) Has(key string) bool {
	v, ok := r.fields[key]
	return ok && v != nil
}

// Logger returns the logger diagnostics are written to.
func (r Record) Logger() logr.Logger { return r.log }

// Unrecognized returns the enum fields that resolved to Unknown while decoding
// this record and its nested records.
func (r Record) Unrecognized() []Unrecognized {
	if r.diag == nil {
		return nil
	}
	r.diag.mu.Lock()
	defer r.diag.mu.Unlock()
	out := make([]Unrecognized, len(r.diag.unrecognized))
	copy(out, r.diag.unrecognized)
	return out
}

// Bool returns the boolean at key. JSON booleans and the strings "true" and
// "false" (any case) are accepted.
func (r Record) Bool(key string, def ...bool) bool {
	fallback := first(def, false)
	switch v := r.fields[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return fallback
}

// Int returns the integer at key. Fractional numbers are truncated.
func (r Record) Int(key string, def ...int) int {
	return int(r.Int64(key, int64(first(def, 0))))
}

// Int64 returns the integer at key, preserving full precision for json.Number
// values such as millisecond timestamps.
func (r Record) Int64(key string, def ...int64) int64 {
	fallback := first(def, 0)
	switch v := r.fields[key].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return i
		}
	}
	f, ok := r.number(key)
	if !ok || f >= math.MaxInt64 || f <= math.MinInt64 {
		return fallback
	}
	return int64(f)
}

// Float returns the number at key.
func (r Record) Float(key string, def ...float64) float64 {
	fallback := first(def, 0)
	if f, ok := r.number(key); ok {
		return f
	}
	return fallback
}

// String returns the string at key. Numbers and booleans are rendered as text;
// objects, arrays and null yield the default.
func (r Record) String(key string, def ...string) string {
	fallback := first(def, "")
	switch v := r.fields[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fallback
}

// Object returns the nested object at key, or an empty record. The nested
// record reports diagnostics to the same sink as r.
func (r Record) Object(key string) Record {
	m, _ := r.fields[key].(map[string]any)
	return Record{fields: m, log: r.log, diag: r.diag}
}

// Strings returns the array at key when every element is a string. Anything
// else yields nil.
func (r Record) Strings(key string) []string {
	arr, ok := r.fields[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

// Enum resolves the string at key through table. Absent, empty or unmatched
// values resolve to the family's Unknown value. An unmatched, non-empty value
// in a non-empty record is logged at V(1) so new upstream values surface.
func Enum[T ~int](r Record, key string, table *enum.Table[T]) T {
	raw := r.String(key)
	v, ok := table.Lookup(raw)
	if ok || raw == "" || r.Empty() {
		return v
	}

	r.log.V(1).Info("Unrecognized enum value", "field", key, "family", table.Family(), "value", raw)
	if r.diag != nil {
		r.diag.mu.Lock()
		r.diag.unrecognized = append(r.diag.unrecognized, Unrecognized{Field: key, Family: table.Family(), Value: raw})
		r.diag.mu.Unlock()
	}
	return v
}

func (r Record) number(key string) (float64, bool) {
	var f float64
	switch v := r.fields[key].(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func first[T any](vs []T, fallback T) T {
	if len(vs) > 0 {
		return vs[0]
	}
	return fallback
}
