package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/rs/zerolog"
)

const (
	deploymentsFile = "deployments.json"
	incidentsFile   = "incidents.json"
	commitsFile     = "commits.json"
)

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// persistLocked writes all three collections to disk. Callers must hold
// the write lock. Each file is written to a temp path and renamed so a
// failed write never corrupts the previous state.
func (s *Store) persistLocked() error {
	if s.deployments == nil {
		s.deployments = []entity.Deployment{}
	}
	if s.incidents == nil {
		s.incidents = []entity.Incident{}
	}
	if s.commits == nil {
		s.commits = []entity.Commit{}
	}
	if err := writeJSON(s.dir, deploymentsFile, s.deployments); err != nil {
		return err
	}
	if err := writeJSON(s.dir, incidentsFile, s.incidents); err != nil {
		return err
	}
	if err := writeJSON(s.dir, commitsFile, s.commits); err != nil {
		return err
	}
	return nil
}

func writeJSON(dir, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", entity.ErrPersistence, name, err)
	}
	path := filepath.Join(dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", entity.ErrPersistence, name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", entity.ErrPersistence, name, err)
	}
	return nil
}

// loadJSON fills dst from the named file. A missing file is an empty
// collection; malformed content logs a warning and also starts empty so
// initialization never fails on bad state.
func loadJSON[T any](dir, name string, dst *[]T, log zerolog.Logger) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", path).Msg("failed to read persisted state, starting empty")
		}
		*dst = nil
		return
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("malformed persisted state, starting empty")
		*dst = nil
		return
	}
	*dst = out
}
