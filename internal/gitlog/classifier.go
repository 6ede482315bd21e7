package gitlog

import (
	"regexp"
	"strings"
)

// DefaultMessagePattern flags commit messages written in the common
// "deploy:", "release:", "ship:" style.
const DefaultMessagePattern = `(?i)^(deploy|release|ship)[:(\s]`

var (
	deployKeywords = []string{"deploy", "release", "ship", "publish"}

	// Version-tag-shaped references ("v1.2.3", "1.2.3") are a weaker,
	// secondary deployment signal.
	versionTagPattern = regexp.MustCompile(`\bv?\d+\.\d+\.\d+\b`)
)

// Classifier decides whether a commit represents a deployment, using the
// configured message pattern first and deployment keywords as a fallback.
type Classifier struct {
	pattern *regexp.Regexp
}

// NewClassifier compiles the given message pattern; an empty pattern
// falls back to DefaultMessagePattern.
func NewClassifier(pattern string) (*Classifier, error) {
	if pattern == "" {
		pattern = DefaultMessagePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Classifier{pattern: re}, nil
}

// IsDeployment classifies a commit message as a deployment commit.
func (c *Classifier) IsDeployment(message string) bool {
	if c.pattern.MatchString(message) {
		return true
	}
	lower := strings.ToLower(message)
	for _, kw := range deployKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return versionTagPattern.MatchString(message)
}
