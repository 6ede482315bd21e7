package gitlog

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCommitLimit bounds how much history is read so initialization
// completes in bounded time even against very large repositories.
const DefaultCommitLimit = 1000

// Commit is the raw tuple the engine needs from the version-control
// collaborator.
type Commit struct {
	Hash      string
	Timestamp time.Time
	Author    string
	Message   string
}

// Source lists recent commits. Implementations are best-effort: the
// engine treats any failure as "zero commits available".
type Source interface {
	RecentCommits(ctx context.Context, limit int) ([]Commit, error)
	Branch(ctx context.Context) string
}

// Field and record separators for the git log wire format. Unit
// separator / record separator cannot appear in commit metadata.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// CLISource reads history by invoking the git binary against a local
// repository.
type CLISource struct {
	repoPath string
}

func NewCLISource(repoPath string) *CLISource {
	return &CLISource{repoPath: repoPath}
}

// RecentCommits returns up to limit commits, newest first. A missing
// repository or failing git invocation is returned as an error for the
// caller to log and swallow.
func (s *CLISource) RecentCommits(ctx context.Context, limit int) ([]Commit, error) {
	log := zerolog.Ctx(ctx)
	if s.repoPath == "" {
		return nil, fmt.Errorf("no repository configured")
	}
	if _, err := os.Stat(filepath.Join(s.repoPath, ".git")); err != nil {
		return nil, fmt.Errorf("not a git repository: %s", s.repoPath)
	}
	if limit <= 0 {
		limit = DefaultCommitLimit
	}
	format := "%H" + fieldSep + "%ct" + fieldSep + "%an" + fieldSep + "%s" + recordSep
	cmd := exec.CommandContext(ctx, "git", "-C", s.repoPath,
		"log", "-n", strconv.Itoa(limit), "--pretty=format:"+format)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	commits := parseLog(string(out))
	log.Debug().Int("count", len(commits)).Str("repo", s.repoPath).Msg("read git history")
	return commits, nil
}

// Branch returns the current branch name, or empty if it cannot be
// determined.
func (s *CLISource) Branch(ctx context.Context) string {
	cmd := exec.CommandContext(ctx, "git", "-C", s.repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func parseLog(raw string) []Commit {
	var commits []Commit
	for _, rec := range strings.Split(raw, recordSep) {
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		parts := strings.SplitN(rec, fieldSep, 4)
		if len(parts) != 4 {
			continue
		}
		epoch, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		commits = append(commits, Commit{
			Hash:      parts[0],
			Timestamp: time.Unix(epoch, 0).UTC(),
			Author:    parts[2],
			Message:   parts[3],
		})
	}
	return commits
}
