package routes

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/dorapulse/dorapulse/internal/usecase"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

func RegisterRestAPI(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/api")

	g.POST("/deployments", func(c echo.Context) error {
		type request struct {
			Environment     string   `json:"environment"`
			Version         string   `json:"version"`
			CommitHash      string   `json:"commit_hash"`
			Success         *bool    `json:"success"`
			DurationSeconds *float64 `json:"duration_seconds"`
			Rollback        bool     `json:"rollback"`
			Artifacts       []string `json:"artifacts"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		in := store.DeploymentInput{
			Environment: entity.Environment(req.Environment),
			Version:     req.Version,
			CommitHash:  req.CommitHash,
			Success:     req.Success == nil || *req.Success,
			Rollback:    req.Rollback,
			Artifacts:   req.Artifacts,
		}
		if req.DurationSeconds != nil {
			d := time.Duration(*req.DurationSeconds * float64(time.Second))
			in.Duration = &d
		}

		uc := do.MustInvoke[usecase.RecordDeploymentUsecase](injector)
		dep, err := uc.Execute(c.Request().Context(), in)
		if err != nil {
			return errorStatus(c, err)
		}
		return c.JSON(http.StatusCreated, dep)
	})

	g.GET("/deployments", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListDeploymentsUsecase](injector)
		deps, err := uc.Execute(c.Request().Context(), store.DeploymentFilter{
			Environment: entity.Environment(c.QueryParam("environment")),
			Limit:       intQueryParam(c, "limit"),
		})
		if err != nil {
			return errorStatus(c, err)
		}

		type response struct {
			Deployments []entity.Deployment `json:"deployments"`
		}
		return c.JSON(http.StatusOK, &response{Deployments: deps})
	})

	g.POST("/incidents", func(c echo.Context) error {
		type request struct {
			Environment  string  `json:"environment"`
			Severity     string  `json:"severity"`
			Description  string  `json:"description"`
			DeploymentID *string `json:"deployment_id"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		in := store.IncidentInput{
			Environment: entity.Environment(req.Environment),
			Severity:    entity.Severity(req.Severity),
			Description: req.Description,
		}
		if req.DeploymentID != nil {
			id := entity.ID(*req.DeploymentID)
			in.DeploymentID = &id
		}

		uc := do.MustInvoke[usecase.RecordIncidentUsecase](injector)
		inc, err := uc.Execute(c.Request().Context(), in)
		if err != nil {
			return errorStatus(c, err)
		}
		return c.JSON(http.StatusCreated, inc)
	})

	g.GET("/incidents", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListIncidentsUsecase](injector)
		incs, err := uc.Execute(c.Request().Context(), store.IncidentFilter{
			Environment: entity.Environment(c.QueryParam("environment")),
			Severity:    entity.Severity(c.QueryParam("severity")),
			Limit:       intQueryParam(c, "limit"),
		})
		if err != nil {
			return errorStatus(c, err)
		}

		type response struct {
			Incidents []entity.Incident `json:"incidents"`
		}
		return c.JSON(http.StatusOK, &response{Incidents: incs})
	})

	g.POST("/incidents/:id/resolve", func(c echo.Context) error {
		type request struct {
			Note string `json:"note"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		uc := do.MustInvoke[usecase.ResolveIncidentUsecase](injector)
		inc, err := uc.Execute(c.Request().Context(), entity.ID(c.Param("id")), req.Note)
		if err != nil {
			return errorStatus(c, err)
		}
		return c.JSON(http.StatusOK, inc)
	})

	g.GET("/metrics", func(c echo.Context) error {
		start, err := timeQueryParam(c, "from")
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		end, err := timeQueryParam(c, "to")
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		uc := do.MustInvoke[usecase.CalculateMetricsUsecase](injector)
		report, err := uc.Execute(c.Request().Context(), start, end)
		if err != nil {
			return errorStatus(c, err)
		}
		return c.JSON(http.StatusOK, report)
	})

	g.GET("/export", func(c echo.Context) error {
		format := c.QueryParam("format")
		if format == "" {
			format = usecase.FormatJSON
		}
		uc := do.MustInvoke[usecase.ExportDataUsecase](injector)
		payload, err := uc.Execute(c.Request().Context(), format)
		if err != nil {
			return errorStatus(c, err)
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, payload)
	})

	g.POST("/import", func(c echo.Context) error {
		format := c.QueryParam("format")
		if format == "" {
			format = usecase.FormatJSON
		}
		payload, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		uc := do.MustInvoke[usecase.ImportDataUsecase](injector)
		if err := uc.Execute(c.Request().Context(), payload, format); err != nil {
			return errorStatus(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}

func errorStatus(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return c.NoContent(http.StatusNotFound)
	case errors.Is(err, entity.ErrAlreadyResolved):
		return c.NoContent(http.StatusConflict)
	case errors.Is(err, entity.ErrInvalid), errors.Is(err, entity.ErrUnsupportedFormat):
		return c.NoContent(http.StatusBadRequest)
	default:
		return c.NoContent(http.StatusInternalServerError)
	}
}
