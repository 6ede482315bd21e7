package entity

import "time"

// Export is the single-document serialization of the whole store.
// Importing one replaces the current state wholesale.
type Export struct {
	ExportedAt  time.Time    `json:"exported_at"`
	Deployments []Deployment `json:"deployments"`
	Incidents   []Incident   `json:"incidents"`
	Commits     []Commit     `json:"commits"`
}
