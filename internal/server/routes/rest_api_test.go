package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dorapulse/dorapulse/internal/config"
	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/gitlog"
	"github.com/dorapulse/dorapulse/internal/server/routes"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/dorapulse/dorapulse/internal/usecase"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopSource struct{}

func (noopSource) RecentCommits(ctx context.Context, limit int) ([]gitlog.Commit, error) {
	return nil, nil
}

func (noopSource) Branch(ctx context.Context) string { return "" }

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := &config.Config{
		DataDir:      t.TempDir(),
		Environments: []entity.Environment{entity.EnvDevelopment, entity.EnvStaging, entity.EnvProduction},
		CommitLimit:  10,
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.Provide(injector, func(i *do.Injector) (*store.Store, error) {
		s := store.New(cfg.DataDir, zerolog.Nop())
		return s, s.Load()
	})
	do.Provide(injector, func(i *do.Injector) (gitlog.Source, error) {
		return noopSource{}, nil
	})
	do.Provide(injector, func(i *do.Injector) (*gitlog.Classifier, error) {
		return gitlog.NewClassifier("")
	})
	do.Provide(injector, usecase.NewRecordDeploymentUsecase)
	do.Provide(injector, usecase.NewRecordIncidentUsecase)
	do.Provide(injector, usecase.NewResolveIncidentUsecase)
	do.Provide(injector, usecase.NewCalculateMetricsUsecase)
	do.Provide(injector, usecase.NewListDeploymentsUsecase)
	do.Provide(injector, usecase.NewListIncidentsUsecase)
	do.Provide(injector, usecase.NewExportDataUsecase)
	do.Provide(injector, usecase.NewImportDataUsecase)

	e := echo.New()
	routes.RegisterRestAPI(injector, e)
	routes.RegisterMisc(injector, e)
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecordDeploymentRoute(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/deployments",
		`{"environment":"production","version":"v1.2.0","commit_hash":"abc123","duration_seconds":42.5}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var dep entity.Deployment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dep))
	assert.NotEmpty(t, dep.ID)
	assert.Equal(t, entity.EnvProduction, dep.Environment)
	assert.True(t, dep.Success) // defaults to success when omitted
	require.NotNil(t, dep.Duration)

	list := doRequest(e, http.MethodGet, "/api/deployments?environment=production", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), dep.ID.String())
}

func TestRecordDeploymentRouteRejectsUnknownEnvironment(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/deployments", `{"environment":"qa"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveIncidentRoute(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/incidents",
		`{"environment":"production","severity":"critical","description":"checkout down"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var inc entity.Incident
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inc))

	resolve := doRequest(e, http.MethodPost, "/api/incidents/"+inc.ID.String()+"/resolve", `{"note":"rolled back"}`)
	require.Equal(t, http.StatusOK, resolve.Code)
	var resolved entity.Incident
	require.NoError(t, json.Unmarshal(resolve.Body.Bytes(), &resolved))
	assert.True(t, resolved.Resolved)
	assert.NotNil(t, resolved.MTTR)

	again := doRequest(e, http.MethodPost, "/api/incidents/"+inc.ID.String()+"/resolve", `{}`)
	assert.Equal(t, http.StatusConflict, again.Code)

	missing := doRequest(e, http.MethodPost, "/api/incidents/nope/resolve", `{}`)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestMetricsRoute(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/deployments", `{"environment":"production"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	metrics := doRequest(e, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, metrics.Code)
	var report entity.Report
	require.NoError(t, json.Unmarshal(metrics.Body.Bytes(), &report))
	assert.Equal(t, 1, report.DeploymentFrequency.Deployments)
	assert.InDelta(t, 30.0, report.PeriodDays, 1e-6)

	bad := doRequest(e, http.MethodGet, "/api/metrics?from=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestExportImportRoutes(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/deployments", `{"environment":"production","version":"v9"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	export := doRequest(e, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, export.Code)
	assert.Contains(t, export.Body.String(), `"v9"`)

	unsupported := doRequest(e, http.MethodGet, "/api/export?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, unsupported.Code)

	fresh := newTestEcho(t)
	imported := doRequest(fresh, http.MethodPost, "/api/import", export.Body.String())
	require.Equal(t, http.StatusNoContent, imported.Code)

	list := doRequest(fresh, http.MethodGet, "/api/deployments", "")
	assert.Contains(t, list.Body.String(), `"v9"`)
}

func TestHealthRoute(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
