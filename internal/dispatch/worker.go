package dispatch

import (
	"context"
	"sync"

	"github.com/specialistvlad/simspec/internal/ctxlog"
	"github.com/specialistvlad/simspec/internal/filter"
	"github.com/specialistvlad/simspec/internal/model"
	"github.com/specialistvlad/simspec/internal/report"
)

// job pairs a test case with its slot in the ordered result table.
type job struct {
	index int
	tc    *model.TestCase
}

// RunSuites executes every case of every suite and returns the results in
// suite/case source order, regardless of worker scheduling. Cases are
// independent, so they fan out across the worker pool; each individual
// (case, mode) run stays single-threaded on one worker.
func (d *Dispatcher) RunSuites(ctx context.Context, suites []*model.Suite) []report.Result {
	var cases []*model.TestCase
	for _, suite := range suites {
		cases = append(cases, suite.Cases...)
	}

	table := make([][]report.Result, len(cases))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < d.workers; w++ {
		wg.Add(1)
		go d.worker(ctx, jobs, table, &wg, w)
	}

	for i, tc := range cases {
		jobs <- job{index: i, tc: tc}
	}
	close(jobs)
	wg.Wait()

	var results []report.Result
	for _, slot := range table {
		results = append(results, slot...)
	}
	return results
}

// worker is the processing loop for a single concurrent worker. Each table
// slot is written by exactly one job, so no locking is needed.
func (d *Dispatcher) worker(ctx context.Context, jobs chan job, table [][]report.Result, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for j := range jobs {
		if !filter.ShouldRun(j.tc, d.env) {
			logger.Debug("Case not eligible, skipping.", "workerID", workerID, "case", j.tc.ID())
			table[j.index] = []report.Result{{
				Suite:  j.tc.Suite,
				Case:   j.tc.Name,
				Mode:   model.ModeNormal,
				Status: report.StatusSkip,
				Reason: "not eligible in this environment",
			}}
			continue
		}
		table[j.index] = d.runCase(ctx, j.tc)
	}

	logger.Debug("Worker finished.", "workerID", workerID)
}
