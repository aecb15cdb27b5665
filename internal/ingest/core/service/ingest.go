package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/autopeer-io/vfacts/internal/ingest/core"
	"github.com/autopeer-io/vfacts/internal/pkg/metrics"
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/record"
	"github.com/autopeer-io/vfacts/pkg/vehicle"
	"github.com/autopeer-io/vfacts/pkg/vehicle/options"
)

// Rejection reasons reported on vfacts_snapshots_rejected_total.
const (
	ReasonInvalidJSON     = "invalid_json"
	ReasonNotObject       = "not_object"
	ReasonUnknownCategory = "unknown_category"
)

// DescriptionFacts is what gets republished for a description snapshot.
type DescriptionFacts struct {
	vehicle.Description
	Summary options.Summary `json:"options"`
}

// Ingest decodes payload as a JSON snapshot of category for vehicleID and
// makes it the latest one. Archive and notifier failures are logged and
// counted but do not fail the call.
func (s *Service) Ingest(ctx context.Context, vehicleID string, category string, payload []byte) (*core.Entry, error) {
	return s.IngestContent(ctx, vehicleID, category, "", payload)
}

// IngestContent is Ingest for a payload encoded as contentType, see
// record.ParseContent.
func (s *Service) IngestContent(ctx context.Context, vehicleID, category, contentType string, payload []byte) (*core.Entry, error) {
	if vehicleID == "" {
		return nil, errors.New("vehicle id is required")
	}

	c, snap, err := s.decode(category, contentType, payload)
	if err != nil {
		return nil, err
	}

	if s.presence != nil {
		s.presence.Touch(vehicleID)
	}
	entry := s.store.Put(vehicleID, c, snap)

	if s.archive != nil {
		s.archiveRaw(ctx, entry, payload)
	}

	if d, ok := snap.(vehicle.Description); ok && s.presence != nil {
		if _, err := s.presence.Observe(ctx, vehicleID, d.State); err != nil {
			log.Error(err, "Failed to update vehicle presence", "vehicleID", vehicleID)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyFacts(ctx, vehicleID, c, Facts(snap)); err != nil {
			log.Error(err, "Failed to publish facts", "vehicleID", vehicleID, "category", c)
		}
	}

	log.Debug("Snapshot ingested", "vehicleID", vehicleID, "category", c, "bytes", len(payload))
	return entry, nil
}

// Decode decodes a JSON payload without storing it.
func (s *Service) Decode(category string, payload []byte) (vehicle.Snapshot, []record.Unrecognized, error) {
	return s.DecodeContent(category, "", payload)
}

func (s *Service) DecodeContent(category, contentType string, payload []byte) (vehicle.Snapshot, []record.Unrecognized, error) {
	c, err := vehicle.ParseCategory(category)
	if err != nil {
		return nil, nil, err
	}
	r, err := record.ParseContent(contentType, payload, s.logger)
	if err != nil {
		return nil, nil, err
	}
	snap, err := vehicle.Decode(c, r)
	if err != nil {
		return nil, nil, err
	}
	return snap, r.Unrecognized(), nil
}

// DecodeOptions decodes a raw option-code string.
func (s *Service) DecodeOptions(codes string) options.Options {
	o := options.Parse(codes, s.logger)
	metrics.MalformedOptionTokens.Add(float64(len(o.Malformed())))
	return o
}

// Facts returns the value republished for snap.
func Facts(snap vehicle.Snapshot) any {
	if d, ok := snap.(vehicle.Description); ok {
		return DescriptionFacts{Description: d, Summary: d.Options().Summary()}
	}
	return snap
}

func (s *Service) decode(category, contentType string, payload []byte) (vehicle.Category, vehicle.Snapshot, error) {
	c, err := vehicle.ParseCategory(category)
	if err != nil {
		metrics.SnapshotsRejected.WithLabelValues(category, ReasonUnknownCategory).Inc()
		return "", nil, err
	}

	r, err := record.ParseContent(contentType, payload, s.logger.WithValues("category", c))
	if err != nil {
		reason := ReasonInvalidJSON
		if errors.Is(err, record.ErrNotObject) {
			reason = ReasonNotObject
		}
		metrics.SnapshotsRejected.WithLabelValues(string(c), reason).Inc()
		return "", nil, fmt.Errorf("decode %s snapshot: %w", c, err)
	}

	snap, err := vehicle.Decode(c, r)
	if err != nil {
		return "", nil, err
	}

	metrics.SnapshotsDecoded.WithLabelValues(string(c)).Inc()
	for _, u := range r.Unrecognized() {
		metrics.UnrecognizedValues.WithLabelValues(string(c), u.Field).Inc()
	}
	if d, ok := snap.(vehicle.Description); ok {
		metrics.MalformedOptionTokens.Add(float64(len(d.Options().Malformed())))
	}
	return c, snap, nil
}

func (s *Service) archiveRaw(ctx context.Context, e *core.Entry, payload []byte) {
	key, err := s.archive.Put(ctx, e.VehicleID, e.Category, e.ReceivedAt, payload)
	if err != nil {
		metrics.ArchiveWrites.WithLabelValues("failed").Inc()
		log.Error(err, "Failed to archive raw snapshot", "vehicleID", e.VehicleID, "category", e.Category)
		return
	}
	metrics.ArchiveWrites.WithLabelValues("success").Inc()
	log.Debug("Raw snapshot archived", "key", key)
}
