package entity

import "time"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities so callers can compare them. Unknown severities
// rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

func (s Severity) Valid() bool { return s.Rank() > 0 }

// Incident is a recorded service incident. It is mutated exactly once, by
// resolution, which sets Resolved, ResolvedAt and MTTR together.
type Incident struct {
	ID           ID             `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	Environment  Environment    `json:"environment"`
	Severity     Severity       `json:"severity"`
	Description  string         `json:"description"`
	DeploymentID *ID            `json:"deployment_id,omitempty"`
	Resolved     bool           `json:"resolved"`
	ResolvedAt   *time.Time     `json:"resolved_at,omitempty"`
	MTTR         *time.Duration `json:"mttr,omitempty"`
	Note         string         `json:"note,omitempty"`
}
