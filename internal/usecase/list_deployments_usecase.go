package usecase

import (
	"context"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/samber/do"
)

type ListDeploymentsUsecase interface {
	Execute(ctx context.Context, f store.DeploymentFilter) ([]entity.Deployment, error)
}

type listDeploymentsUsecaseImpl struct {
	eventStore *store.Store
}

// Execute returns deployments newest first, optionally filtered.
func (l *listDeploymentsUsecaseImpl) Execute(ctx context.Context, f store.DeploymentFilter) ([]entity.Deployment, error) {
	return l.eventStore.Deployments(f), nil
}

func NewListDeploymentsUsecase(injector *do.Injector) (ListDeploymentsUsecase, error) {
	return &listDeploymentsUsecaseImpl{
		eventStore: do.MustInvoke[*store.Store](injector),
	}, nil
}
