package usecase

import (
	"context"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/samber/do"
)

type ResolveIncidentUsecase interface {
	Execute(ctx context.Context, id entity.ID, note string) (entity.Incident, error)
}

type resolveIncidentUsecaseImpl struct {
	eventStore *store.Store
}

// Execute resolves the incident with the given id, deriving its MTTR.
// Unknown ids return ErrNotFound; already-resolved incidents return
// ErrAlreadyResolved.
func (r *resolveIncidentUsecaseImpl) Execute(ctx context.Context, id entity.ID, note string) (entity.Incident, error) {
	return r.eventStore.ResolveIncident(id, note)
}

func NewResolveIncidentUsecase(injector *do.Injector) (ResolveIncidentUsecase, error) {
	return &resolveIncidentUsecaseImpl{
		eventStore: do.MustInvoke[*store.Store](injector),
	}, nil
}
