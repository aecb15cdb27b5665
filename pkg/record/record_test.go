package record

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/autopeer-io/vfacts/pkg/enum"
)

type color int

const (
	colorUnknown color = iota
	colorRed
	colorBlue
)

var colors = enum.NewTable("color",
	enum.Variant[color]{Value: colorUnknown, Tag: "Unknown", Name: "Unknown"},
	enum.Variant[color]{Value: colorRed, Tag: "red", Name: "Red"},
	enum.Variant[color]{Value: colorBlue, Tag: "blue", Name: "Blue"},
)

func mustParse(t *testing.T, s string) Record {
	t.Helper()
	r, err := Parse([]byte(s), logr.Discard())
	require.NoError(t, err)
	return r
}

func TestParse(t *testing.T) {
	_, err := Parse([]byte(`[1,2]`), logr.Discard())
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Parse([]byte(`{`), logr.Discard())
	assert.Error(t, err)

	r := mustParse(t, `{}`)
	assert.True(t, r.Empty())
}

func TestBool(t *testing.T) {
	r := mustParse(t, `{"a": true, "b": "TRUE", "c": "false", "d": 1, "e": null, "f": "yes"}`)

	tests := []struct {
		key  string
		def  []bool
		want bool
	}{
		{"a", nil, true},
		{"b", nil, true},
		{"c", []bool{true}, false},
		{"d", nil, false},
		{"e", nil, false},
		{"f", []bool{true}, true},
		{"missing", nil, false},
		{"missing", []bool{true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Bool(tt.key, tt.def...))
		})
	}
}

func TestNumbers(t *testing.T) {
	r := mustParse(t, `{
		"int": 42,
		"frac": 12.9,
		"str": "17",
		"strfrac": " 3.5 ",
		"big": 1700000000123,
		"bad": "n/a",
		"obj": {"x": 1},
		"bool": true
	}`)

	assert.Equal(t, 42, r.Int("int"))
	assert.Equal(t, 12, r.Int("frac"))
	assert.Equal(t, 17, r.Int("str"))
	assert.Equal(t, 3, r.Int("strfrac"))
	assert.Equal(t, 0, r.Int("bad"))
	assert.Equal(t, -1, r.Int("missing", -1))
	assert.Equal(t, -1, r.Int("obj", -1))
	assert.Equal(t, 0, r.Int("bool"))

	assert.Equal(t, int64(1700000000123), r.Int64("big"))

	assert.InDelta(t, 12.9, r.Float("frac"), 1e-9)
	assert.InDelta(t, 17.0, r.Float("str"), 1e-9)
	assert.InDelta(t, 0.0, r.Float("bad"), 1e-9)
	assert.InDelta(t, 2.5, r.Float("missing", 2.5), 1e-9)

	nan := New(map[string]any{"n": "NaN"}, logr.Discard())
	assert.InDelta(t, 0.0, nan.Float("n"), 1e-9)
}

func TestString(t *testing.T) {
	r := mustParse(t, `{"s": "hello", "n": 12.5, "b": false, "o": {}, "a": [], "z": null}`)

	assert.Equal(t, "hello", r.String("s"))
	assert.Equal(t, "12.5", r.String("n"))
	assert.Equal(t, "false", r.String("b"))
	assert.Equal(t, "", r.String("o"))
	assert.Equal(t, "", r.String("a"))
	assert.Equal(t, "", r.String("z"))
	assert.Equal(t, "dflt", r.String("missing", "dflt"))
}

func TestObjectAndStrings(t *testing.T) {
	r := mustParse(t, `{"media": {"on": true}, "tokens": ["a", "b"], "mixed": ["a", 1]}`)

	assert.True(t, r.Object("media").Bool("on"))
	assert.True(t, r.Object("missing").Empty())
	assert.True(t, r.Object("tokens").Empty())

	assert.Equal(t, []string{"a", "b"}, r.Strings("tokens"))
	assert.Nil(t, r.Strings("mixed"))
	assert.Nil(t, r.Strings("media"))
}

func TestEnum(t *testing.T) {
	var logged []string
	logger := funcr.New(func(prefix, args string) {
		logged = append(logged, args)
	}, funcr.Options{Verbosity: 1})

	r, err := Parse([]byte(`{"c1": "red", "c2": "Red", "c3": "", "c4": 7, "nested": {"c": "green"}}`), logger)
	require.NoError(t, err)

	assert.Equal(t, colorRed, Enum(r, "c1", colors))
	assert.Equal(t, colorUnknown, Enum(r, "c2", colors), "match is case-sensitive")
	assert.Equal(t, colorUnknown, Enum(r, "c3", colors))
	assert.Equal(t, colorUnknown, Enum(r, "c4", colors))
	assert.Equal(t, colorUnknown, Enum(r, "missing", colors))
	assert.Equal(t, colorUnknown, Enum(r.Object("nested"), "c", colors))

	// Only present, non-empty values are reported.
	assert.Len(t, logged, 3)
	assert.Equal(t, []Unrecognized{
		{Field: "c2", Family: "color", Value: "Red"},
		{Field: "c4", Family: "color", Value: "7"},
		{Field: "c", Family: "color", Value: "green"},
	}, r.Unrecognized())
}

func TestEnumEmptyRecordIsQuiet(t *testing.T) {
	var logged int
	logger := funcr.New(func(string, string) { logged++ }, funcr.Options{Verbosity: 1})

	r := New(nil, logger)
	assert.Equal(t, colorUnknown, Enum(r, "c", colors))
	assert.Zero(t, logged)
	assert.Empty(t, r.Unrecognized())
}

func TestZeroRecord(t *testing.T) {
	var r Record
	assert.True(t, r.Empty())
	assert.False(t, r.Bool("x"))
	assert.Equal(t, colorUnknown, Enum(r, "x", colors))
	assert.Nil(t, r.Unrecognized())
}

func TestFromStruct(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"battery_level":  81,
		"charging_state": "Charging",
		"nested":         map[string]any{"on": true},
	})
	require.NoError(t, err)

	r := FromStruct(s, logr.Discard())
	assert.Equal(t, 81, r.Int("battery_level"))
	assert.Equal(t, "Charging", r.String("charging_state"))
	assert.True(t, r.Object("nested").Bool("on"))

	assert.True(t, FromStruct(nil, logr.Discard()).Empty())
}

func TestParseProtoJSON(t *testing.T) {
	data, err := json.Marshal(map[string]any{"odometer": 1234.5, "locked": true})
	require.NoError(t, err)

	r, err := ParseProtoJSON(data, logr.Discard())
	require.NoError(t, err)
	assert.InDelta(t, 1234.5, r.Float("odometer"), 1e-9)
	assert.True(t, r.Bool("locked"))

	_, err = ParseProtoJSON([]byte(`"nope"`), logr.Discard())
	assert.Error(t, err)
}

func TestParseContent(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"battery_level": 64, "charging_state": "Stopped"})
	require.NoError(t, err)
	bin, err := proto.Marshal(s)
	require.NoError(t, err)
	pj, err := protojson.Marshal(s)
	require.NoError(t, err)

	tests := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{"empty content type", "", []byte(`{"battery_level": 64, "charging_state": "Stopped"}`)},
		{"json with charset", "application/json; charset=utf-8", []byte(`{"battery_level": 64, "charging_state": "Stopped"}`)},
		{"binary struct", ContentTypeProto, bin},
		{"protojson struct", ContentTypeProtoJSON, pj},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseContent(tt.contentType, tt.data, logr.Discard())
			require.NoError(t, err)
			assert.Equal(t, 64, r.Int("battery_level"))
			assert.Equal(t, "Stopped", r.String("charging_state"))
		})
	}

	_, err = ParseContent(ContentTypeProto, []byte{0xff, 0xff, 0xff}, logr.Discard())
	assert.Error(t, err)
	_, err = ParseContent("", []byte(`[1, 2]`), logr.Discard())
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestConcurrentReaders(t *testing.T) {
	r, err := Parse([]byte(`{"c": "Red", "bad": "Purple", "n": 3, "nested": {"c": "Teal", "on": "true"}}`), logr.Discard())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				assert.Equal(t, colorRed, Enum(r, "c", colors))
				assert.Equal(t, colorUnknown, Enum(r, "bad", colors))
				nested := r.Object("nested")
				assert.True(t, nested.Bool("on"))
				assert.Equal(t, colorUnknown, Enum(nested, "c", colors))
				assert.Equal(t, 3, r.Int("n"))
				_ = r.Unrecognized()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, r.Unrecognized(), 8*50*2)
}
