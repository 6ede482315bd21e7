package usecase

import (
	"context"
	"fmt"

	"github.com/dorapulse/dorapulse/internal/config"
	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/samber/do"
)

type RecordIncidentUsecase interface {
	Execute(ctx context.Context, in store.IncidentInput) (entity.Incident, error)
}

type recordIncidentUsecaseImpl struct {
	eventStore *store.Store
	cfg        *config.Config
}

// Execute validates the input and records a new unresolved incident.
func (r *recordIncidentUsecaseImpl) Execute(ctx context.Context, in store.IncidentInput) (entity.Incident, error) {
	if in.Environment == "" {
		return entity.Incident{}, fmt.Errorf("environment is required: %w", entity.ErrInvalid)
	}
	if !r.cfg.AllowsEnvironment(in.Environment) {
		return entity.Incident{}, fmt.Errorf("unknown environment %q: %w", in.Environment, entity.ErrInvalid)
	}
	if !in.Severity.Valid() {
		return entity.Incident{}, fmt.Errorf("unknown severity %q: %w", in.Severity, entity.ErrInvalid)
	}
	return r.eventStore.RecordIncident(in)
}

func NewRecordIncidentUsecase(injector *do.Injector) (RecordIncidentUsecase, error) {
	return &recordIncidentUsecaseImpl{
		eventStore: do.MustInvoke[*store.Store](injector),
		cfg:        do.MustInvoke[*config.Config](injector),
	}, nil
}
