package service

import (
	"github.com/go-logr/logr"

	"github.com/autopeer-io/vfacts/internal/ingest/core"
	"github.com/autopeer-io/vfacts/internal/presence"
)

// Service implements the ingestion use cases. It decodes raw snapshots,
// keeps the latest one per vehicle and category, and fans them out to the
// optional archive and notifier.
type Service struct {
	store    *core.Store
	presence *presence.Tracker
	notifier core.FactsNotifier
	archive  core.Archive
	logger   logr.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithNotifier republishes decoded facts through n.
func WithNotifier(n core.FactsNotifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithArchive stores every raw payload in a.
func WithArchive(a core.Archive) Option {
	return func(s *Service) { s.archive = a }
}

// WithLogger sets the logger handed to the decoders.
func WithLogger(l logr.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates the ingest service.
func New(store *core.Store, tracker *presence.Tracker, opts ...Option) *Service {
	s := &Service{
		store:    store,
		presence: tracker,
		logger:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
