package usecase

import (
	"context"
	"errors"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/rs/zerolog"
	"github.com/samber/do"
)

type InitializeUsecase interface {
	Execute(ctx context.Context) error
}

type initializeUsecaseImpl struct {
	eventStore     *store.Store
	refreshCommits RefreshCommitsUsecase
}

// Execute loads persisted state and performs the initial git history
// refresh. Git is best-effort enrichment: its failure is logged and
// swallowed, never surfaced. Safe to call more than once.
func (u *initializeUsecaseImpl) Execute(ctx context.Context) error {
	if err := u.eventStore.Load(); err != nil {
		return err
	}
	if _, err := u.refreshCommits.Execute(ctx); err != nil {
		// Failing to persist the refreshed commits is a real storage
		// problem; anything else is just git being unavailable.
		if errors.Is(err, entity.ErrPersistence) {
			return err
		}
		zerolog.Ctx(ctx).Warn().Err(err).Msg("git history unavailable, continuing without commits")
	}
	return nil
}

func NewInitializeUsecase(injector *do.Injector) (InitializeUsecase, error) {
	return &initializeUsecaseImpl{
		eventStore:     do.MustInvoke[*store.Store](injector),
		refreshCommits: do.MustInvoke[RefreshCommitsUsecase](injector),
	}, nil
}
