package usecase

import (
	"context"

	"github.com/dorapulse/dorapulse/internal/config"
	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/gitlog"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/samber/do"
)

type RefreshCommitsUsecase interface {
	Execute(ctx context.Context) ([]entity.Commit, error)
}

type refreshCommitsUsecaseImpl struct {
	eventStore *store.Store
	source     gitlog.Source
	classifier *gitlog.Classifier
	limit      int
}

// Execute re-reads recent history from the version-control collaborator,
// flags deployment commits and replaces the stored commit collection.
func (u *refreshCommitsUsecaseImpl) Execute(ctx context.Context) ([]entity.Commit, error) {
	raw, err := u.source.RecentCommits(ctx, u.limit)
	if err != nil {
		return nil, err
	}
	commits := gitlog.Annotate(raw, u.source.Branch(ctx), u.classifier)
	if err := u.eventStore.SetCommits(commits); err != nil {
		return nil, err
	}
	return commits, nil
}

func NewRefreshCommitsUsecase(injector *do.Injector) (RefreshCommitsUsecase, error) {
	cfg := do.MustInvoke[*config.Config](injector)
	return &refreshCommitsUsecaseImpl{
		eventStore: do.MustInvoke[*store.Store](injector),
		source:     do.MustInvoke[gitlog.Source](injector),
		classifier: do.MustInvoke[*gitlog.Classifier](injector),
		limit:      cfg.CommitLimit,
	}, nil
}
