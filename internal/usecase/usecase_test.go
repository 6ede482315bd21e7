package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dorapulse/dorapulse/internal/config"
	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/gitlog"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	commits []gitlog.Commit
	err     error
	branch  string
}

func (s *stubSource) RecentCommits(ctx context.Context, limit int) ([]gitlog.Commit, error) {
	return s.commits, s.err
}

func (s *stubSource) Branch(ctx context.Context) string { return s.branch }

func testConfig() *config.Config {
	return &config.Config{
		Environments: []entity.Environment{entity.EnvDevelopment, entity.EnvStaging, entity.EnvProduction},
		CommitLimit:  gitlog.DefaultCommitLimit,
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, s.Load())
	return s
}

func mustClassifier(t *testing.T) *gitlog.Classifier {
	t.Helper()
	c, err := gitlog.NewClassifier("")
	require.NoError(t, err)
	return c
}

func TestInitializeSwallowsGitFailure(t *testing.T) {
	st := newTestStore(t)
	init := &initializeUsecaseImpl{
		eventStore: st,
		refreshCommits: &refreshCommitsUsecaseImpl{
			eventStore: st,
			source:     &stubSource{err: errors.New("no repository")},
			classifier: mustClassifier(t),
			limit:      10,
		},
	}

	require.NoError(t, init.Execute(context.Background()))
	assert.Empty(t, st.Snapshot().Commits)
}

func TestInitializeRefreshesCommits(t *testing.T) {
	st := newTestStore(t)
	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	init := &initializeUsecaseImpl{
		eventStore: st,
		refreshCommits: &refreshCommitsUsecaseImpl{
			eventStore: st,
			source: &stubSource{
				branch: "main",
				commits: []gitlog.Commit{
					{Hash: "aaa", Timestamp: at, Author: "alice", Message: "deploy: v2"},
					{Hash: "bbb", Timestamp: at.Add(-time.Hour), Author: "bob", Message: "fix tests"},
				},
			},
			classifier: mustClassifier(t),
			limit:      10,
		},
	}

	require.NoError(t, init.Execute(context.Background()))

	commits := st.Snapshot().Commits
	require.Len(t, commits, 2)
	assert.Equal(t, "main", commits[0].Branch)
	assert.NotNil(t, commits[0].DeployedAt)
	assert.Nil(t, commits[1].DeployedAt)
}

func TestRecordDeploymentRejectsUnknownEnvironment(t *testing.T) {
	uc := &recordDeploymentUsecaseImpl{eventStore: newTestStore(t), cfg: testConfig()}

	_, err := uc.Execute(context.Background(), store.DeploymentInput{Environment: "qa"})
	assert.ErrorIs(t, err, entity.ErrInvalid)

	_, err = uc.Execute(context.Background(), store.DeploymentInput{})
	assert.ErrorIs(t, err, entity.ErrInvalid)
}

func TestRecordIncidentRejectsUnknownSeverity(t *testing.T) {
	uc := &recordIncidentUsecaseImpl{eventStore: newTestStore(t), cfg: testConfig()}

	_, err := uc.Execute(context.Background(), store.IncidentInput{
		Environment: entity.EnvProduction,
		Severity:    "catastrophic",
	})
	assert.ErrorIs(t, err, entity.ErrInvalid)
}

func TestResolveIncidentFlow(t *testing.T) {
	st := newTestStore(t)
	record := &recordIncidentUsecaseImpl{eventStore: st, cfg: testConfig()}
	resolve := &resolveIncidentUsecaseImpl{eventStore: st}

	inc, err := record.Execute(context.Background(), store.IncidentInput{
		Environment: entity.EnvProduction,
		Severity:    entity.SeverityHigh,
		Description: "elevated error rate",
	})
	require.NoError(t, err)

	resolved, err := resolve.Execute(context.Background(), inc.ID, "reverted config")
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	require.NotNil(t, resolved.MTTR)
	assert.GreaterOrEqual(t, *resolved.MTTR, time.Duration(0))

	_, err = resolve.Execute(context.Background(), inc.ID, "again")
	assert.ErrorIs(t, err, entity.ErrAlreadyResolved)

	_, err = resolve.Execute(context.Background(), entity.NewID(), "")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCalculateMetricsDefaultsToTrailingThirtyDays(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	uc := &calculateMetricsUsecaseImpl{eventStore: st, now: func() time.Time { return now }}

	report, err := uc.Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, report.PeriodEnd.Equal(now))
	assert.True(t, report.PeriodStart.Equal(now.Add(-DefaultPeriod)))
	assert.InDelta(t, 30.0, report.PeriodDays, 1e-9)
}

func TestCalculateMetricsHonorsExplicitBounds(t *testing.T) {
	st := newTestStore(t)
	uc := &calculateMetricsUsecaseImpl{eventStore: st, now: time.Now}

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC)
	report, err := uc.Execute(context.Background(), &start, &end)
	require.NoError(t, err)
	assert.True(t, report.PeriodStart.Equal(start))
	assert.True(t, report.PeriodEnd.Equal(end))
	assert.InDelta(t, 7.0, report.PeriodDays, 1e-9)
}

func TestExportRejectsUnsupportedFormat(t *testing.T) {
	uc := &exportDataUsecaseImpl{eventStore: newTestStore(t), now: time.Now}

	_, err := uc.Execute(context.Background(), "yaml")
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestImportRejectsUnsupportedFormatAndBadPayload(t *testing.T) {
	uc := &importDataUsecaseImpl{eventStore: newTestStore(t)}

	err := uc.Execute(context.Background(), []byte("{}"), "csv")
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)

	err = uc.Execute(context.Background(), []byte("{nope"), FormatJSON)
	assert.ErrorIs(t, err, entity.ErrInvalid)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	cfg := testConfig()
	recordDep := &recordDeploymentUsecaseImpl{eventStore: src, cfg: cfg}
	recordInc := &recordIncidentUsecaseImpl{eventStore: src, cfg: cfg}
	resolve := &resolveIncidentUsecaseImpl{eventStore: src}

	ctx := context.Background()
	_, err := recordDep.Execute(ctx, store.DeploymentInput{
		Environment: entity.EnvProduction,
		Version:     "v2.0.0",
		CommitHash:  "abc123",
		Success:     true,
	})
	require.NoError(t, err)
	_, err = recordDep.Execute(ctx, store.DeploymentInput{Environment: entity.EnvProduction, Rollback: true, Success: true})
	require.NoError(t, err)
	inc, err := recordInc.Execute(ctx, store.IncidentInput{
		Environment: entity.EnvProduction,
		Severity:    entity.SeverityHigh,
		Description: "latency spike",
	})
	require.NoError(t, err)
	_, err = resolve.Execute(ctx, inc.ID, "fixed")
	require.NoError(t, err)

	export := &exportDataUsecaseImpl{eventStore: src, now: time.Now}
	payload, err := export.Execute(ctx, FormatJSON)
	require.NoError(t, err)

	dst := newTestStore(t)
	importer := &importDataUsecaseImpl{eventStore: dst}
	require.NoError(t, importer.Execute(ctx, payload, FormatJSON))

	// The imported store must be observably identical.
	assert.Equal(t, src.Deployments(store.DeploymentFilter{}), dst.Deployments(store.DeploymentFilter{}))
	assert.Equal(t, src.Incidents(store.IncidentFilter{}), dst.Incidents(store.IncidentFilter{}))

	now := time.Now().UTC()
	calcSrc := &calculateMetricsUsecaseImpl{eventStore: src, now: func() time.Time { return now }}
	calcDst := &calculateMetricsUsecaseImpl{eventStore: dst, now: func() time.Time { return now }}
	srcReport, err := calcSrc.Execute(ctx, nil, nil)
	require.NoError(t, err)
	dstReport, err := calcDst.Execute(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, srcReport, dstReport)
}
