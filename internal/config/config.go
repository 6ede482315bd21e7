// Package config loads engine configuration from the environment, with
// optional .env support.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/gitlog"
	"github.com/joho/godotenv"
)

type Config struct {
	// DataDir is the directory owning the persisted event files.
	DataDir string
	// RepoPath points at the git working tree to correlate against.
	// Empty disables git enrichment.
	RepoPath string
	// DeployPattern overrides the deployment-commit message pattern.
	DeployPattern string
	// Environments lists the deployment environments accepted by the
	// recording API.
	Environments []entity.Environment
	// CommitLimit bounds how much git history is loaded.
	CommitLimit int
	// Port is the HTTP listen port for serve mode.
	Port int
	// LogLevel is the zerolog level name.
	LogLevel string
}

func defaultEnvironments() []entity.Environment {
	return []entity.Environment{entity.EnvDevelopment, entity.EnvStaging, entity.EnvProduction}
}

// Load reads configuration from the environment. Unset values fall back
// to defaults suitable for local use.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:       getEnv("DORAPULSE_DATA_DIR", ".dorapulse"),
		RepoPath:      os.Getenv("DORAPULSE_REPO"),
		DeployPattern: os.Getenv("DORAPULSE_DEPLOY_PATTERN"),
		Environments:  defaultEnvironments(),
		CommitLimit:   gitlog.DefaultCommitLimit,
		Port:          8080,
		LogLevel:      getEnv("DORAPULSE_LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("DORAPULSE_ENVIRONMENTS"); raw != "" {
		var envs []entity.Environment
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				envs = append(envs, entity.Environment(trimmed))
			}
		}
		if len(envs) > 0 {
			cfg.Environments = envs
		}
	}
	if raw := os.Getenv("DORAPULSE_COMMIT_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.CommitLimit = n
		}
	}
	if raw := os.Getenv("DORAPULSE_PORT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.Port = n
		}
	}
	return cfg
}

// AllowsEnvironment reports whether env is one of the configured
// deployment environments.
func (c *Config) AllowsEnvironment(env entity.Environment) bool {
	for _, e := range c.Environments {
		if e == env {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
