// Package ingest wires the vfacts ingestion service: raw snapshots come in
// over MQTT or HTTP, are decoded into typed facts, kept in memory, and
// optionally republished and archived.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/autopeer-io/vfacts/internal/ingest/core"
	"github.com/autopeer-io/vfacts/internal/ingest/server"
	"github.com/autopeer-io/vfacts/internal/presence"
	"github.com/autopeer-io/vfacts/pkg/log"
)

type IngestServer struct {
	serverManager *server.Manager
	archive       core.Archive
	tracker       *presence.Tracker
}

// SetStaleAfter changes the presence stale period of a running server.
func (s *IngestServer) SetStaleAfter(d time.Duration) {
	s.tracker.SetStaleAfter(d)
	log.Info("Presence stale period updated", "staleAfter", d)
}

// Run checks the archive bucket, then runs every server until ctx is done or
// one of them fails.
func (s *IngestServer) Run(ctx context.Context) error {
	if s.archive != nil {
		if err := s.archive.CheckBucket(ctx); err != nil {
			return fmt.Errorf("archive not usable: %w", err)
		}
	}

	log.Info("Starting vfacts ingest server")
	if err := s.serverManager.Start(ctx); err != nil {
		return err
	}
	log.Info("vfacts ingest server stopped")
	return nil
}
