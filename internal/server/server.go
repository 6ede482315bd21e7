package server

import (
	"context"
	"fmt"

	"github.com/dorapulse/dorapulse/internal/config"
	"github.com/dorapulse/dorapulse/internal/gitlog"
	"github.com/dorapulse/dorapulse/internal/server/routes"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/dorapulse/dorapulse/internal/usecase"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/samber/do"
)

type Config struct {
	App    *config.Config
	Logger zerolog.Logger
}

type Server struct {
	e        *echo.Echo
	config   *Config
	injector *do.Injector
}

func New(cfg *Config) *Server {
	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRemoteIP:  true,
		LogHost:      true,
		LogMethod:    true,
		LogURI:       true,
		LogUserAgent: true,
		LogStatus:    true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info().
				Str("remote_ip", v.RemoteIP).
				Str("host", v.Host).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("user_agent", v.UserAgent).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Msg("handled request")
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			cfg.Logger.Error().Err(err).Bytes("stack", stack).Send()
			return err
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := cfg.Logger.WithContext(req.Context())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	s := &Server{e: e, config: cfg}
	s.init()
	return s
}

func (s *Server) init() {
	s.injector = NewInjector(s.config.App, s.config.Logger)
	routes.RegisterRestAPI(s.injector, s.e)
	routes.RegisterMisc(s.injector, s.e)
}

// NewInjector wires the collector's dependency graph. It is shared by
// the HTTP server and the CLI commands so both operate against the same
// component set.
func NewInjector(cfg *config.Config, logger zerolog.Logger) *do.Injector {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.Provide(injector, func(i *do.Injector) (*store.Store, error) {
		return store.New(cfg.DataDir, logger), nil
	})
	do.Provide(injector, func(i *do.Injector) (gitlog.Source, error) {
		return gitlog.NewCLISource(cfg.RepoPath), nil
	})
	do.Provide(injector, func(i *do.Injector) (*gitlog.Classifier, error) {
		return gitlog.NewClassifier(cfg.DeployPattern)
	})
	do.Provide(injector, usecase.NewInitializeUsecase)
	do.Provide(injector, usecase.NewRefreshCommitsUsecase)
	do.Provide(injector, usecase.NewRecordDeploymentUsecase)
	do.Provide(injector, usecase.NewRecordIncidentUsecase)
	do.Provide(injector, usecase.NewResolveIncidentUsecase)
	do.Provide(injector, usecase.NewCalculateMetricsUsecase)
	do.Provide(injector, usecase.NewListDeploymentsUsecase)
	do.Provide(injector, usecase.NewListIncidentsUsecase)
	do.Provide(injector, usecase.NewExportDataUsecase)
	do.Provide(injector, usecase.NewImportDataUsecase)
	return injector
}

func (s *Server) Start() error {
	ctx := s.config.Logger.WithContext(context.Background())
	init := do.MustInvoke[usecase.InitializeUsecase](s.injector)
	if err := init.Execute(ctx); err != nil {
		return fmt.Errorf("initialize collector: %w", err)
	}
	addr := fmt.Sprintf(":%d", s.config.App.Port)
	s.config.Logger.Info().Str("addr", addr).Msg("starting server")
	return s.e.Start(addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
