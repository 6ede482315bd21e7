package entity

import "time"

// Commit is one source-control commit loaded from the repository history.
// DeployedAt is attached during correlation and is the only field ever
// updated after load.
type Commit struct {
	Hash        string     `json:"hash"`
	Timestamp   time.Time  `json:"timestamp"`
	Author      string     `json:"author"`
	Message     string     `json:"message"`
	Branch      string     `json:"branch,omitempty"`
	DeployedAt  *time.Time `json:"deployed_at,omitempty"`
	PullRequest string     `json:"pull_request,omitempty"`
}
