// Package prefs persists the location selection between sessions.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jask/placefilter/internal/catalog"
	"github.com/jask/placefilter/internal/metrics"
	"github.com/jask/placefilter/internal/selection"
)

// DefaultKey is the fixed key the selection record is stored under.
const DefaultKey = "location-filters"

var (
	ErrReadFailure  = errors.New("persistence read failure")
	ErrWriteFailure = errors.New("persistence write failure")
)

// Record is the persisted form of a selection. Empty strings mean unset.
type Record struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
}

func RecordOf(sel selection.Selection) Record {
	return Record{Country: sel.Country(), State: sel.State(), City: sel.City()}
}

// Resolve validates r top-down against cat, discarding what no longer exists.
func (r Record) Resolve(cat *catalog.Catalog) selection.Selection {
	return selection.Resolve(cat, r.Country, r.State, r.City)
}

type Options struct {
	Key          string
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	WriteTimeout time.Duration
}

// Adapter saves selections in the background and restores them once at
// startup. Save never blocks on I/O: it replaces the pending record and
// wakes the writer goroutine, so only the latest value is written.
type Adapter struct {
	store   Store
	catalog *catalog.Catalog
	key     string
	log     *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	mu      sync.Mutex
	pending *Record
	closed  bool
	wake    chan struct{}
	done    chan struct{}

	loadOnce sync.Once
	loaded   selection.Selection
}

func NewAdapter(store Store, cat *catalog.Catalog, opts Options) *Adapter {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	a := &Adapter{
		store:   store,
		catalog: cat,
		key:     opts.Key,
		log:     opts.Logger.With("component", "prefs", "key", opts.Key),
		metrics: opts.Metrics,
		timeout: opts.WriteTimeout,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

// Load reads and validates the stored selection. Missing, unreadable or
// malformed records yield the empty selection. Only the first call touches
// the store; later calls return the same result.
func (a *Adapter) Load(ctx context.Context) selection.Selection {
	a.loadOnce.Do(func() {
		a.loaded = a.load(ctx)
	})
	return a.loaded
}

func (a *Adapter) load(ctx context.Context) selection.Selection {
	data, ok, err := a.store.Get(ctx, a.key)
	if err != nil {
		a.log.Warn("load selection", "err", fmt.Errorf("%w: %w", ErrReadFailure, err))
		a.metrics.Load("unavailable")
		return selection.Unselected()
	}
	if !ok {
		a.metrics.Load("empty")
		return selection.Unselected()
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		a.log.Warn("load selection", "err", fmt.Errorf("%w: malformed record: %w", ErrReadFailure, err))
		a.metrics.Load("malformed")
		return selection.Unselected()
	}
	sel := rec.Resolve(a.catalog)
	if RecordOf(sel) != rec {
		a.log.Info("discarded stale selection", "stored", rec, "kept", sel.String())
		a.metrics.Load("discarded")
		a.Save(sel)
		return sel
	}
	a.metrics.Load("restored")
	return sel
}

// Save queues sel for writing and returns immediately.
func (a *Adapter) Save(sel selection.Selection) {
	rec := RecordOf(sel)
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.log.Warn("save after close dropped", "selection", sel.String())
		return
	}
	a.pending = &rec
	// wake is only closed under mu, so the send cannot race Close
	select {
	case a.wake <- struct{}{}:
	default:
	}
	a.mu.Unlock()
}

// Close writes any pending record and stops the writer. It returns
// ctx.Err() if the writer does not finish in time.
func (a *Adapter) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.wake)
	}
	a.mu.Unlock()
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Adapter) run() {
	defer close(a.done)
	for range a.wake {
		a.drain()
	}
	a.drain()
}

func (a *Adapter) drain() {
	for {
		a.mu.Lock()
		rec := a.pending
		a.pending = nil
		a.mu.Unlock()
		if rec == nil {
			return
		}
		if err := a.write(*rec); err != nil {
			a.log.Warn("save selection", "err", err)
			a.metrics.Write("error")
			continue
		}
		a.metrics.Write("ok")
	}
}

func (a *Adapter) write(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	if err := a.store.Put(ctx, a.key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return nil
}
