package iosync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ecoglobe/biosync/internal/iologger"
	"github.com/ecoglobe/biosync/internal/iometrics"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// TaskGroup tracks enrichment tasks started by syncs. Submitting a task
// never blocks, at most jobs tasks run at the same time. Tasks are
// detached from the cancellation of the submitting context. The timeout
// of a task starts when it leaves the queue.
type TaskGroup struct {
	g       errgroup.Group
	sem     *semaphore.Weighted
	enr     lifecycle.Enricher
	timeout time.Duration
	keep    bool
	log     *slog.Logger

	mu      sync.Mutex
	reports []lifecycle.EnrichReport
}

// NewTaskGroup creates a task group for an enricher. With keep, reports
// of finished tasks are held until Wait. Otherwise each report is logged
// and dropped, so a long-running server does not accumulate them.
func NewTaskGroup(
	enr lifecycle.Enricher,
	jobs int,
	timeout time.Duration,
	keep bool,
) *TaskGroup {
	if jobs <= 0 {
		jobs = 1
	}
	return &TaskGroup{
		sem:     semaphore.NewWeighted(int64(jobs)),
		enr:     enr,
		timeout: timeout,
		keep:    keep,
		log:     iologger.Component("enrich"),
	}
}

// Go starts enrichment of a species.
func (t *TaskGroup) Go(ctx context.Context, speciesID string) {
	ctx = context.WithoutCancel(ctx)
	t.g.Go(func() error {
		// ctx is never done, Acquire only returns after a slot is free.
		_ = t.sem.Acquire(ctx, 1)
		defer t.sem.Release(1)

		if t.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t.timeout)
			defer cancel()
		}

		iometrics.EnrichTasksActive.Inc()
		defer iometrics.EnrichTasksActive.Dec()

		rep, err := t.enr.Enrich(ctx, speciesID)
		rep.SpeciesID = speciesID
		if err != nil {
			rep.Err = err
		}
		t.done(ctx, rep)
		return nil
	})
}

func (t *TaskGroup) done(ctx context.Context, rep lifecycle.EnrichReport) {
	if !t.keep {
		log := iologger.FromContext(ctx, t.log)
		if rep.Err != nil {
			log.Warn("Enrichment failed",
				"species_id", rep.SpeciesID, "error", rep.Err)
			return
		}
		log.Info("Species enriched",
			"species_id", rep.SpeciesID,
			"taxon_id", rep.TaxonID,
			"failed_steps", rep.Failed(),
		)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.reports = append(t.reports, rep)
}

// Wait blocks until all started tasks finish and returns their reports.
// Reports are returned once, the group can be reused afterwards. Without
// keep the result is always empty.
func (t *TaskGroup) Wait() []lifecycle.EnrichReport {
	_ = t.g.Wait()
	t.mu.Lock()
	defer t.mu.Unlock()
	res := t.reports
	t.reports = nil
	return res
}
