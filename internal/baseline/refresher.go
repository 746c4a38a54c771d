package baseline

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/harsahib2907/climate-policy-simulator/internal/metrics"
	"github.com/harsahib2907/climate-policy-simulator/internal/store"
)

// Refresher periodically reloads the baseline from its provider and
// snapshots it to the store, so a restarted process can serve the last
// known-good constants without waiting on the network.
type Refresher struct {
	provider Provider
	store    *store.Store
	source   string
	interval time.Duration
}

func NewRefresher(provider Provider, st *store.Store, source string) *Refresher {
	return &Refresher{
		provider: provider,
		store:    st,
		source:   source,
		interval: 24 * time.Hour,
	}
}

// Run refreshes once immediately, then on every tick until the context is
// cancelled. A failed refresh is logged and retried at the next tick; the
// previous snapshot stays in service.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

// RefreshOnce performs a single refresh, for the --refresh-once CLI mode.
func (r *Refresher) RefreshOnce() error {
	b, err := r.provider.Load()
	if err != nil {
		return err
	}
	return r.store.InsertBaselineSnapshot(r.source, time.Now().UTC(), b)
}

func (r *Refresher) refresh() {
	if err := r.RefreshOnce(); err != nil {
		metrics.BaselineRefreshes.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("source", r.source).Msg("baseline refresh failed, keeping previous snapshot")
		return
	}
	metrics.BaselineRefreshes.WithLabelValues("ok").Inc()
	log.Info().Str("source", r.source).Msg("baseline refreshed")
}
