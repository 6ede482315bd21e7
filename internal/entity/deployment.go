package entity

import "time"

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Deployment is one deployment attempt. Instances are immutable once
// recorded; corrections are made by recording a new event.
type Deployment struct {
	ID          ID             `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Environment Environment    `json:"environment"`
	Version     string         `json:"version"`
	CommitHash  string         `json:"commit_hash,omitempty"`
	Success     bool           `json:"success"`
	Duration    *time.Duration `json:"duration,omitempty"`
	Rollback    bool           `json:"rollback,omitempty"`
	Artifacts   []string       `json:"artifacts,omitempty"`
}

// Failed reports whether the deployment counts against the change failure
// rate: either the deployment itself failed or it was rolled back.
func (d Deployment) Failed() bool {
	return !d.Success || d.Rollback
}
