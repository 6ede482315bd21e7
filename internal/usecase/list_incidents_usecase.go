package usecase

import (
	"context"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/samber/do"
)

type ListIncidentsUsecase interface {
	Execute(ctx context.Context, f store.IncidentFilter) ([]entity.Incident, error)
}

type listIncidentsUsecaseImpl struct {
	eventStore *store.Store
}

// Execute returns incidents newest first, optionally filtered.
func (l *listIncidentsUsecaseImpl) Execute(ctx context.Context, f store.IncidentFilter) ([]entity.Incident, error) {
	return l.eventStore.Incidents(f), nil
}

func NewListIncidentsUsecase(injector *do.Injector) (ListIncidentsUsecase, error) {
	return &listIncidentsUsecaseImpl{
		eventStore: do.MustInvoke[*store.Store](injector),
	}, nil
}
