package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/placefilter/internal/catalog"
	"github.com/jask/placefilter/internal/config"
	"github.com/jask/placefilter/internal/database"
	"github.com/jask/placefilter/internal/database/repository"
	"github.com/jask/placefilter/internal/metrics"
	"github.com/jask/placefilter/internal/prefs"
)

// Runtime is a session together with the resources it was opened on.
type Runtime struct {
	*Session
	Metrics *metrics.Metrics
	db      *sql.DB
	cfg     config.Config
}

// Open loads the catalog, opens the configured store and starts a session.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	m := metrics.New()

	var (
		store prefs.Store
		db    *sql.DB
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Store.Backend)) {
	case config.BackendSQLite:
		db, err = database.OpenMigrated(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		store = repository.NewPreferenceRepo(db, id.String())
	case config.BackendFile:
		path := cfg.Store.Path
		if path == "" {
			if path, err = prefs.DefaultFilePath(); err != nil {
				return nil, fmt.Errorf("prefs path: %w", err)
			}
		}
		store = prefs.NewFileStore(path)
	case config.BackendMemory:
		store = prefs.NewMemStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	adapter := prefs.NewAdapter(store, cat, prefs.Options{
		Key:     cfg.Store.Key,
		Logger:  logger,
		Metrics: m,
	})
	s := New(ctx, Deps{
		Catalog:   cat,
		Persister: adapter,
		Logger:    logger,
		Metrics:   m,
		ID:        id,
	})
	return &Runtime{Session: s, Metrics: m, db: db, cfg: cfg}, nil
}

// Close flushes the selection, writes the metrics textfile if configured
// and releases the store.
func (r *Runtime) Close(ctx context.Context) error {
	errs := []error{r.Session.Close(ctx)}
	errs = append(errs, r.Metrics.WriteTextfile(r.cfg.Metrics.Textfile))
	if r.db != nil {
		errs = append(errs, r.db.Close())
	}
	return errors.Join(errs...)
}
