package usecase

import (
	"context"
	"time"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/metrics"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/samber/do"
)

// DefaultPeriod is the trailing window used when no bounds are given.
const DefaultPeriod = 30 * 24 * time.Hour

type CalculateMetricsUsecase interface {
	Execute(ctx context.Context, start, end *time.Time) (entity.Report, error)
}

type calculateMetricsUsecaseImpl struct {
	eventStore *store.Store
	now        func() time.Time
}

// Execute computes the DORA report over [start, end], defaulting to the
// trailing 30 days ending now. An empty period yields a zero-valued
// report, not an error.
func (c *calculateMetricsUsecaseImpl) Execute(ctx context.Context, start, end *time.Time) (entity.Report, error) {
	periodEnd := c.now().UTC()
	if end != nil {
		periodEnd = end.UTC()
	}
	periodStart := periodEnd.Add(-DefaultPeriod)
	if start != nil {
		periodStart = start.UTC()
	}

	snap := c.eventStore.Snapshot()
	report := metrics.Calculate(metrics.Input{
		Deployments: snap.Deployments,
		Incidents:   snap.Incidents,
		Commits:     snap.Commits,
	}, periodStart, periodEnd)
	return report, nil
}

func NewCalculateMetricsUsecase(injector *do.Injector) (CalculateMetricsUsecase, error) {
	return &calculateMetricsUsecaseImpl{
		eventStore: do.MustInvoke[*store.Store](injector),
		now:        time.Now,
	}, nil
}
