package knowledge

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Refresher periodically reloads a Source into a Store. A failed reload
// keeps the previous snapshot.
type Refresher struct {
	store    *Store
	source   Source
	interval time.Duration
	logger   *zap.Logger
}

// NewRefresher creates a refresher. A nil logger disables logging.
func NewRefresher(store *Store, source Source, interval time.Duration, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{store: store, source: source, interval: interval, logger: logger}
}

// RefreshOnce loads a snapshot and installs it. It reports whether the
// version changed.
func (r *Refresher) RefreshOnce(ctx context.Context) (bool, error) {
	next, err := r.source.Load(ctx)
	if err != nil {
		r.logger.Warn("knowledge refresh failed, keeping current snapshot",
			zap.String("source", r.source.Name()),
			zap.Error(err),
		)
		return false, err
	}

	prev := r.store.Swap(next)
	changed := prev == nil || prev.Version != next.Version
	if changed {
		r.logger.Info("knowledge snapshot installed",
			zap.String("source", r.source.Name()),
			zap.String("version", next.Version),
			zap.Int("skills", next.Ontology.Len()),
			zap.Int("trending", next.Trending.Len()),
		)
	}
	return changed, nil
}

// Run refreshes on every tick until ctx is cancelled. A non-positive
// interval returns immediately.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = r.RefreshOnce(ctx)
		}
	}
}
