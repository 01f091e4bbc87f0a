// Package dataset owns the immutable, process-wide shipment record set.
package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"tradeboard/internal/logger"
	"tradeboard/internal/model"
	"tradeboard/internal/repository"

	"github.com/rotisserie/eris"
)

// Event kinds published to load listeners
const (
	EventLoaded      = "dataset.loaded"
	EventUnavailable = "dataset.unavailable"
)

// Event describes the outcome of the one-time load
type Event struct {
	Type       string `json:"type"`
	Source     string `json:"source"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Store holds the shipment records after a single bulk load.
// Records returned by All must be treated as read-only.
type Store struct {
	source repository.ShipmentSource

	once      sync.Once
	records   []model.ShipmentRecord
	err       error
	version   atomic.Uint64
	listeners []func(Event)
}

// New creates a store that loads lazily from source on first Ensure
func New(source repository.ShipmentSource) *Store {
	return &Store{source: source}
}

// OnLoad registers a callback fired once when the load finishes or fails.
// Register listeners before the first Ensure call.
func (s *Store) OnLoad(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

// Ensure loads the dataset exactly once. Concurrent callers block until the
// first load finishes and all observe its result.
func (s *Store) Ensure(ctx context.Context) error {
	s.once.Do(func() {
		s.load(context.WithoutCancel(ctx))
	})
	return s.err
}

func (s *Store) load(ctx context.Context) {
	log := logger.FromContext(ctx).With().Str("source", s.source.Describe()).Logger()
	start := time.Now()

	records, err := s.loadRecords(ctx)
	evt := Event{Source: s.source.Describe(), DurationMs: time.Since(start).Milliseconds()}
	if err != nil {
		s.err = &UnavailableError{Source: s.source.Describe(), Err: err}
		evt.Type = EventUnavailable
		evt.Error = s.err.Error()
		log.Error().Err(err).Msg("shipment dataset failed to load")
	} else {
		if records == nil {
			records = []model.ShipmentRecord{}
		}
		s.records = records
		s.version.Store(1)
		evt.Type = EventLoaded
		evt.Records = len(records)
		log.Info().Int("records", len(records)).Dur("took", time.Since(start)).Msg("shipment dataset loaded")
	}

	for _, fn := range s.listeners {
		fn(evt)
	}
}

// loadRecords reports a panicking source as a load error
func (s *Store) loadRecords(ctx context.Context) (records []model.ShipmentRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = eris.Errorf("shipment source panicked: %v", r)
		}
	}()
	return s.source.Load(ctx)
}

// All returns the loaded records, or nil before a successful Ensure
func (s *Store) All() []model.ShipmentRecord {
	if s.version.Load() == 0 {
		return nil
	}
	return s.records
}

// Len is the number of loaded records
func (s *Store) Len() int {
	return len(s.All())
}

// Version is 0 until the dataset has loaded and 1 afterwards. The dataset
// is immutable, so it never advances past 1.
func (s *Store) Version() uint64 {
	return s.version.Load()
}
