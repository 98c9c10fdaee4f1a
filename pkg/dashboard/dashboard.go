package dashboard

import (
	"context"
	"sync"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/arbor/pkg/metrics"
	"github.com/Ramsey-B/arbor/pkg/repositories"
	"github.com/Ramsey-B/arbor/pkg/tracing"
)

// Counter is the one thing the dashboard needs from a family's repository.
type Counter interface {
	Counts(ctx context.Context) (repositories.Counts, error)
}

// FamilyStats is one tile on the dashboard. Active is omitted for families
// without a visibility flag. Error marks a family whose counts could not be
// loaded; its counts render as zero and the rest of the dashboard is
// unaffected.
type FamilyStats struct {
	Total  int  `json:"total"`
	Active *int `json:"active,omitempty"`
	Error  bool `json:"error,omitempty"`
}

// Summary maps family name to its stats.
type Summary map[string]FamilyStats

// Aggregator fans out to every registered family concurrently and collects
// their counts. A failing family degrades to an error tile; the summary as a
// whole always succeeds.
type Aggregator struct {
	logger   ectologger.Logger
	mu       sync.RWMutex
	families map[string]Counter
}

func NewAggregator(logger ectologger.Logger) *Aggregator {
	return &Aggregator{
		logger:   logger,
		families: map[string]Counter{},
	}
}

// Register adds a family. Registering the same name twice replaces it.
func (a *Aggregator) Register(name string, counter Counter) {
	a.mu.Lock()
	a.families[name] = counter
	a.mu.Unlock()
}

// Summarize loads counts for every family in parallel.
func (a *Aggregator) Summarize(ctx context.Context) Summary {
	ctx, span := tracing.StartSpan(ctx, "Dashboard.Summarize")
	defer span.End()

	a.mu.RLock()
	families := make(map[string]Counter, len(a.families))
	for name, counter := range a.families {
		families[name] = counter
	}
	a.mu.RUnlock()

	var wg sync.WaitGroup
	var mu sync.Mutex
	summary := make(Summary, len(families))

	for name, counter := range families {
		wg.Add(1)
		go func(name string, counter Counter) {
			defer wg.Done()

			counts, err := counter.Counts(ctx)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				metrics.DashboardFamilyFailures.WithLabelValues(name).Inc()
				a.logger.WithContext(ctx).WithError(err).Errorf("dashboard counts failed for %s", name)
				zero := 0
				summary[name] = FamilyStats{Active: &zero, Error: true}
				return
			}
			summary[name] = FamilyStats{Total: counts.Total, Active: counts.Active}
		}(name, counter)
	}

	wg.Wait()
	metrics.DashboardSummariesTotal.Inc()
	return summary
}
