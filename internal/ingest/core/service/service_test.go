package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/autopeer-io/vfacts/internal/ingest/core"
	"github.com/autopeer-io/vfacts/internal/pkg/metrics"
	"github.com/autopeer-io/vfacts/internal/presence"
	"github.com/autopeer-io/vfacts/pkg/record"
	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

type fakeNotifier struct {
	mu       sync.Mutex
	facts    map[string]any
	presence []any
	err      error
}

func (f *fakeNotifier) NotifyFacts(_ context.Context, vehicleID string, c vehicle.Category, facts any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.facts == nil {
		f.facts = make(map[string]any)
	}
	f.facts[vehicleID+"/"+string(c)] = facts
	return f.err
}

func (f *fakeNotifier) NotifyPresence(_ context.Context, _ string, state any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presence = append(f.presence, state)
	return f.err
}

type fakeArchive struct {
	keys []string
	err  error
}

func (f *fakeArchive) Put(_ context.Context, vehicleID string, c vehicle.Category, at time.Time, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	key := vehicleID + "/" + string(c) + "/" + at.Format(time.RFC3339)
	f.keys = append(f.keys, key)
	return key, nil
}

func (f *fakeArchive) CheckBucket(context.Context) error { return nil }

const description = `{
	"id": 1234, "vehicle_id": 99, "vin": "5YJSA1H18EFP00001",
	"display_name": "Nikola", "state": "online",
	"option_codes": "MDLS,RENA,BT85,PPSR,DV4W,PD01,,X0"
}`

func newService(t *testing.T, opts ...Option) (*Service, *clocktesting.FakeClock) {
	t.Helper()
	clk := clocktesting.NewFakeClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	return New(core.NewStore(clk), presence.NewTracker(clk, time.Minute, nil), opts...), clk
}

func TestIngestDescription(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	archive := &fakeArchive{}
	svc, _ := newService(t, WithNotifier(notifier), WithArchive(archive))

	malformedBefore := testutil.ToFloat64(metrics.MalformedOptionTokens)
	decodedBefore := testutil.ToFloat64(metrics.SnapshotsDecoded.WithLabelValues("description"))

	e, err := svc.Ingest(ctx, "vh-1", "description", []byte(description))
	require.NoError(t, err)
	assert.Equal(t, vehicle.CategoryDescription, e.Category)

	assert.Equal(t, decodedBefore+1, testutil.ToFloat64(metrics.SnapshotsDecoded.WithLabelValues("description")))
	assert.Equal(t, malformedBefore+2, testutil.ToFloat64(metrics.MalformedOptionTokens))

	assert.Equal(t, presence.StateOnline, svc.Presence("vh-1"))
	assert.Equal(t, []string{"vh-1/description/2024-05-01T08:00:00Z"}, archive.keys)

	facts, ok := notifier.facts["vh-1/description"].(DescriptionFacts)
	require.True(t, ok)
	assert.Equal(t, "Model S", facts.Summary.Model.Name)
	assert.Equal(t, "P85D", facts.Summary.ModelType.Code)

	raw, err := json.Marshal(facts)
	require.NoError(t, err)
	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "5YJSA1H18EFP00001", flat["vin"])
	assert.Contains(t, flat, "options")

	sum, err := svc.Options("vh-1")
	require.NoError(t, err)
	assert.Equal(t, "RENA", sum.Region.Code)

	list := svc.Vehicles()
	require.Len(t, list, 1)
	assert.Equal(t, "Nikola", list[0].Name)
	assert.Equal(t, presence.StateOnline, list[0].Presence)
}

func TestIngestRejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	tests := []struct {
		name     string
		category string
		payload  string
		reason   string
	}{
		{"array payload", "charge", `[1,2]`, ReasonNotObject},
		{"broken json", "charge", `{"battery_level":`, ReasonInvalidJSON},
		{"unknown category", "tyres", `{}`, ReasonUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.SnapshotsRejected.WithLabelValues(tt.category, tt.reason)
			before := testutil.ToFloat64(counter)

			_, err := svc.Ingest(ctx, "vh-1", tt.category, []byte(tt.payload))
			assert.Error(t, err)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}

	_, err := svc.Ingest(ctx, "vh-1", "charge", []byte(`[]`))
	assert.ErrorIs(t, err, record.ErrNotObject)

	_, err = svc.Ingest(ctx, "", "charge", []byte(`{}`))
	assert.Error(t, err)

	assert.Empty(t, svc.Vehicles())
}

func TestIngestSideEffectFailuresAreNotFatal(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	svc, _ := newService(t, WithNotifier(&fakeNotifier{err: boom}), WithArchive(&fakeArchive{err: boom}))

	failedBefore := testutil.ToFloat64(metrics.ArchiveWrites.WithLabelValues("failed"))

	_, err := svc.Ingest(ctx, "vh-1", "charge", []byte(`{"battery_level": 42, "charging_state": "Charging"}`))
	require.NoError(t, err)
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(metrics.ArchiveWrites.WithLabelValues("failed")))

	e, err := svc.Latest("vh-1", "charge")
	require.NoError(t, err)
	cs := e.Snapshot.(vehicle.ChargeState)
	assert.Equal(t, 42, cs.BatteryLevel)
	assert.True(t, cs.IsCharging())
}

func TestIngestCountsUnrecognized(t *testing.T) {
	svc, _ := newService(t)
	counter := metrics.UnrecognizedValues.WithLabelValues("charge", "charging_state")
	before := testutil.ToFloat64(counter)

	_, err := svc.Ingest(context.Background(), "vh-1", "charge", []byte(`{"charging_state": "Levitating"}`))
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestLatestAndForget(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Latest("vh-1", "charge")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = svc.Latest("vh-1", "tyres")
	assert.Error(t, err)
	_, err = svc.Options("vh-1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Ingest(context.Background(), "vh-1", "drive", []byte(`{"shift_state": "D"}`))
	require.NoError(t, err)
	assert.True(t, svc.Forget("vh-1"))
	assert.False(t, svc.Forget("vh-1"))
	assert.Equal(t, presence.StateUnknown, svc.Presence("vh-1"))
}

func TestDecode(t *testing.T) {
	svc, _ := newService(t)

	snap, unrecognized, err := svc.Decode("vehicle", []byte(`{"locked": true, "sun_roof_state": "ajar"}`))
	require.NoError(t, err)
	assert.True(t, snap.(vehicle.VehicleState).Locked)
	require.Len(t, unrecognized, 1)
	assert.Equal(t, "sun_roof_state", unrecognized[0].Field)
	assert.Empty(t, svc.Vehicles(), "decode does not store")

	_, _, err = svc.Decode("nope", []byte(`{}`))
	assert.Error(t, err)

	o := svc.DecodeOptions("MDLX,BTX4")
	assert.Equal(t, "Model X", o.Summary().Model.Name)
}

func TestIngestProtobufStruct(t *testing.T) {
	svc, _ := newService(t)
	s, err := structpb.NewStruct(map[string]any{"battery_level": 77, "charging_state": "Complete"})
	require.NoError(t, err)
	bin, err := proto.Marshal(s)
	require.NoError(t, err)

	_, err = svc.IngestContent(context.Background(), "vh-pb", "charge", record.ContentTypeProto, bin)
	require.NoError(t, err)
	e, err := svc.Latest("vh-pb", "charge")
	require.NoError(t, err)
	cs := e.Snapshot.(vehicle.ChargeState)
	assert.Equal(t, 77, cs.BatteryLevel)
	assert.Equal(t, vehicle.ChargingComplete, cs.ChargingState)

	rejected := metrics.SnapshotsRejected.WithLabelValues("charge", ReasonInvalidJSON)
	before := testutil.ToFloat64(rejected)
	_, err = svc.IngestContent(context.Background(), "vh-pb", "charge", record.ContentTypeProtoJSON, []byte(`{"battery_level": `))
	assert.Error(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(rejected))

	snap, _, err := svc.DecodeContent("drive", record.ContentTypeProtoJSON, []byte(`{"shift_state": "R", "heading": 90}`))
	require.NoError(t, err)
	assert.Equal(t, 90, snap.(vehicle.DriveState).Heading)
}
