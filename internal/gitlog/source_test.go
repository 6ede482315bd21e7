package gitlog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	raw := strings.Join([]string{
		"aaa111" + fieldSep + "1750000000" + fieldSep + "alice" + fieldSep + "deploy: v2" + recordSep,
		"bbb222" + fieldSep + "1749990000" + fieldSep + "bob" + fieldSep + "fix parser" + recordSep,
	}, "\n")

	commits := parseLog(raw)

	require.Len(t, commits, 2)
	assert.Equal(t, "aaa111", commits[0].Hash)
	assert.Equal(t, "alice", commits[0].Author)
	assert.Equal(t, "deploy: v2", commits[0].Message)
	assert.Equal(t, time.Unix(1750000000, 0).UTC(), commits[0].Timestamp)
	assert.Equal(t, "fix parser", commits[1].Message)
}

func TestParseLogSkipsMalformedRecords(t *testing.T) {
	raw := "garbage-without-separators" + recordSep +
		"ccc333" + fieldSep + "not-a-number" + fieldSep + "carol" + fieldSep + "msg" + recordSep +
		"ddd444" + fieldSep + "1750000000" + fieldSep + "dave" + fieldSep + "ok" + recordSep

	commits := parseLog(raw)

	require.Len(t, commits, 1)
	assert.Equal(t, "ddd444", commits[0].Hash)
}

func TestCLISourceWithoutRepository(t *testing.T) {
	src := NewCLISource(t.TempDir()) // no .git inside
	_, err := src.RecentCommits(context.Background(), 10)
	assert.Error(t, err)

	src = NewCLISource("")
	_, err = src.RecentCommits(context.Background(), 10)
	assert.Error(t, err)
}
