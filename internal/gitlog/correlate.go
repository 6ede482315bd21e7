package gitlog

import (
	"regexp"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/samber/lo"
)

var prRefPattern = regexp.MustCompile(`\(#(\d+)\)|[Mm]erge pull request #(\d+)`)

// Annotate converts raw commits into commit events, flagging deployment
// commits with their own timestamp as the deployment-time proxy and
// extracting an originating pull-request number when the message carries
// one.
func Annotate(commits []Commit, branch string, classifier *Classifier) []entity.Commit {
	return lo.Map(commits, func(c Commit, _ int) entity.Commit {
		ev := entity.Commit{
			Hash:        c.Hash,
			Timestamp:   c.Timestamp,
			Author:      c.Author,
			Message:     c.Message,
			Branch:      branch,
			PullRequest: pullRequestRef(c.Message),
		}
		if classifier.IsDeployment(c.Message) {
			deployedAt := c.Timestamp
			ev.DeployedAt = &deployedAt
		}
		return ev
	})
}

func pullRequestRef(message string) string {
	m := prRefPattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
