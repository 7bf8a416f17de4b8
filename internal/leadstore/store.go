package leadstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/rollerup-site/internal/leads"
	"github.com/wolfman30/rollerup-site/internal/observability/metrics"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

// DefaultKey is the storage key used by the marketing site.
const DefaultKey = "rollerup_leads"

// Store is an append-only, insertion-ordered list of leads kept under one key.
//
// Append is a read-modify-write of the whole list. A Store serialises its own
// appends, but two Stores sharing a backend (two tabs, two processes) race:
// the last writer wins and the other append is lost.
type Store struct {
	backend Backend
	key     string
	mu      sync.Mutex
	logger  *logging.Logger
	metrics *metrics.LeadMetrics
	tracer  trace.Tracer
}

// New creates a Store over backend. An empty key selects DefaultKey.
func New(backend Backend, key string, logger *logging.Logger) *Store {
	if backend == nil {
		panic("leadstore: backend required")
	}
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		backend: backend,
		key:     key,
		logger:  logger,
		tracer:  otel.Tracer("rollerup.internal.leadstore"),
	}
}

// WithMetrics attaches lead metrics.
func (s *Store) WithMetrics(m *metrics.LeadMetrics) *Store {
	s.metrics = m
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Read returns every stored lead in insertion order. Missing or unparseable
// data reads as an empty list; only backend I/O failures are returned.
func (s *Store) Read(ctx context.Context) ([]leads.Lead, error) {
	ctx, span := s.tracer.Start(ctx, "leadstore.read")
	defer span.End()

	records, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("leadstore.count", len(records)))
	return records, nil
}

// Append adds lead to the end of the list and writes the full list back.
func (s *Store) Append(ctx context.Context, lead leads.Lead) error {
	ctx, span := s.tracer.Start(ctx, "leadstore.append")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	next := append(current, lead.Clone())

	data, err := json.Marshal(next)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("leadstore: marshal leads: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		span.RecordError(err)
		s.metrics.ObserveStoreError("append")
		return fmt.Errorf("leadstore: write %s: %w", s.key, err)
	}
	span.SetAttributes(attribute.Int("leadstore.count", len(next)))
	s.logger.Debug("lead appended", "key", s.key, "count", len(next))
	return nil
}

func (s *Store) load(ctx context.Context) ([]leads.Lead, error) {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []leads.Lead{}, nil
		}
		s.metrics.ObserveStoreError("read")
		return nil, fmt.Errorf("leadstore: read %s: %w", s.key, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []leads.Lead{}, nil
	}

	var records []leads.Lead
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("ignoring malformed lead store contents", "key", s.key, "error", err, "bytes", len(data))
		return []leads.Lead{}, nil
	}
	if records == nil {
		records = []leads.Lead{}
	}
	return records, nil
}

var _ leads.Store = (*Store)(nil)
