package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Store is the single source of truth for recorded events. It guards the
// three collections with one lock and mirrors every mutation to disk
// before reporting success. One Store instance exclusively owns its data
// directory; concurrent processes on the same directory are unsupported.
type Store struct {
	mu     sync.RWMutex
	dir    string
	log    zerolog.Logger
	now    func() time.Time // injectable for deterministic tests
	loaded bool

	deployments []entity.Deployment
	incidents   []entity.Incident
	commits     []entity.Commit
}

func New(dir string, log zerolog.Logger) *Store {
	return &Store{
		dir: dir,
		log: log,
		now: time.Now,
	}
}

// DeploymentInput carries the caller-supplied fields of a deployment;
// identity and timestamp are generated by the store.
type DeploymentInput struct {
	Environment entity.Environment
	Version     string
	CommitHash  string
	Success     bool
	Duration    *time.Duration
	Rollback    bool
	Artifacts   []string
}

// IncidentInput carries the caller-supplied fields of an incident.
type IncidentInput struct {
	Environment  entity.Environment
	Severity     entity.Severity
	Description  string
	DeploymentID *entity.ID
}

// DeploymentFilter restricts Deployments output. Zero values mean no filter.
type DeploymentFilter struct {
	Environment entity.Environment
	Limit       int
}

// IncidentFilter restricts Incidents output. Zero values mean no filter.
type IncidentFilter struct {
	Environment entity.Environment
	Severity    entity.Severity
	Limit       int
}

// Snapshot is a read-only copy of all three collections.
type Snapshot struct {
	Deployments []entity.Deployment
	Incidents   []entity.Incident
	Commits     []entity.Commit
}

// Load reads any previously persisted collections from the data directory.
// Missing or malformed files start as empty collections rather than
// failing. Calling Load again after a successful load is a no-op.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	if err := ensureDir(s.dir); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrPersistence, err)
	}
	loadJSON(s.dir, deploymentsFile, &s.deployments, s.log)
	loadJSON(s.dir, incidentsFile, &s.incidents, s.log)
	loadJSON(s.dir, commitsFile, &s.commits, s.log)
	s.loaded = true
	s.log.Debug().
		Int("deployments", len(s.deployments)).
		Int("incidents", len(s.incidents)).
		Int("commits", len(s.commits)).
		Msg("store loaded")
	return nil
}

// RecordDeployment appends a new deployment event and persists the store.
// On a persistence failure the in-memory append is undone and the error
// is returned to the caller.
func (s *Store) RecordDeployment(in DeploymentInput) (entity.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := entity.Deployment{
		ID:          entity.NewID(),
		Timestamp:   s.now().UTC(),
		Environment: in.Environment,
		Version:     in.Version,
		CommitHash:  in.CommitHash,
		Success:     in.Success,
		Duration:    in.Duration,
		Rollback:    in.Rollback,
		Artifacts:   in.Artifacts,
	}
	s.deployments = append(s.deployments, d)
	if err := s.persistLocked(); err != nil {
		s.deployments = s.deployments[:len(s.deployments)-1]
		return entity.Deployment{}, err
	}
	return d, nil
}

// RecordIncident appends a new unresolved incident and persists the store.
func (s *Store) RecordIncident(in IncidentInput) (entity.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inc := entity.Incident{
		ID:           entity.NewID(),
		Timestamp:    s.now().UTC(),
		Environment:  in.Environment,
		Severity:     in.Severity,
		Description:  in.Description,
		DeploymentID: in.DeploymentID,
	}
	s.incidents = append(s.incidents, inc)
	if err := s.persistLocked(); err != nil {
		s.incidents = s.incidents[:len(s.incidents)-1]
		return entity.Incident{}, err
	}
	return inc, nil
}

// ResolveIncident marks the incident resolved, derives its MTTR and
// persists the store. Resolving an unknown incident returns ErrNotFound;
// resolving twice returns ErrAlreadyResolved so recovery time is never
// counted twice.
func (s *Store) ResolveIncident(id entity.ID, note string) (entity.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.incidents {
		if s.incidents[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.Incident{}, fmt.Errorf("incident %s: %w", id, entity.ErrNotFound)
	}
	if s.incidents[idx].Resolved {
		return entity.Incident{}, fmt.Errorf("incident %s: %w", id, entity.ErrAlreadyResolved)
	}
	prev := s.incidents[idx]
	resolvedAt := s.now().UTC()
	mttr := resolvedAt.Sub(prev.Timestamp)
	if mttr < 0 {
		mttr = 0
	}
	s.incidents[idx].Resolved = true
	s.incidents[idx].ResolvedAt = &resolvedAt
	s.incidents[idx].MTTR = &mttr
	s.incidents[idx].Note = note
	if err := s.persistLocked(); err != nil {
		s.incidents[idx] = prev
		return entity.Incident{}, err
	}
	return s.incidents[idx], nil
}

// SetCommits replaces the commit collection wholesale and persists it.
// Used by the git correlator after each history refresh.
func (s *Store) SetCommits(commits []entity.Commit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.commits
	s.commits = commits
	if err := s.persistLocked(); err != nil {
		s.commits = prev
		return err
	}
	return nil
}

// Replace swaps in a full snapshot (import) and persists it.
func (s *Store) Replace(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := Snapshot{Deployments: s.deployments, Incidents: s.incidents, Commits: s.commits}
	s.deployments = snap.Deployments
	s.incidents = snap.Incidents
	s.commits = snap.Commits
	if err := s.persistLocked(); err != nil {
		s.deployments = prev.Deployments
		s.incidents = prev.Incidents
		s.commits = prev.Commits
		return err
	}
	return nil
}

// Deployments returns deployments sorted by timestamp descending,
// optionally filtered by environment and truncated.
func (s *Store) Deployments(f DeploymentFilter) []entity.Deployment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := lo.Filter(s.deployments, func(d entity.Deployment, _ int) bool {
		return f.Environment == "" || d.Environment == f.Environment
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// Incidents returns incidents sorted by timestamp descending, optionally
// filtered by environment and severity and truncated.
func (s *Store) Incidents(f IncidentFilter) []entity.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := lo.Filter(s.incidents, func(in entity.Incident, _ int) bool {
		if f.Environment != "" && in.Environment != f.Environment {
			return false
		}
		if f.Severity != "" && in.Severity != f.Severity {
			return false
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// Snapshot copies out all three collections for side-effect-free reads.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Deployments: append([]entity.Deployment(nil), s.deployments...),
		Incidents:   append([]entity.Incident(nil), s.incidents...),
		Commits:     append([]entity.Commit(nil), s.commits...),
	}
}
