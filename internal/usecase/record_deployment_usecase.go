package usecase

import (
	"context"
	"fmt"

	"github.com/dorapulse/dorapulse/internal/config"
	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/samber/do"
)

type RecordDeploymentUsecase interface {
	Execute(ctx context.Context, in store.DeploymentInput) (entity.Deployment, error)
}

type recordDeploymentUsecaseImpl struct {
	eventStore *store.Store
	cfg        *config.Config
}

// Execute validates the input, generates identity and timestamp, appends
// the event and persists the store before returning the created record.
func (r *recordDeploymentUsecaseImpl) Execute(ctx context.Context, in store.DeploymentInput) (entity.Deployment, error) {
	if in.Environment == "" {
		return entity.Deployment{}, fmt.Errorf("environment is required: %w", entity.ErrInvalid)
	}
	if !r.cfg.AllowsEnvironment(in.Environment) {
		return entity.Deployment{}, fmt.Errorf("unknown environment %q: %w", in.Environment, entity.ErrInvalid)
	}
	return r.eventStore.RecordDeployment(in)
}

func NewRecordDeploymentUsecase(injector *do.Injector) (RecordDeploymentUsecase, error) {
	return &recordDeploymentUsecaseImpl{
		eventStore: do.MustInvoke[*store.Store](injector),
		cfg:        do.MustInvoke[*config.Config](injector),
	}, nil
}
