package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtimehq/devtime/internal/domain"
)

func TestGitExtractParsesLog(t *testing.T) {
	repo := t.TempDir()
	out := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa|2024-03-01T15:04:05+01:00|Ana|fix parser\n" +
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb|2024-03-01T15:10:00+01:00|Ana|add tests\n" +
		"garbage line without separators\n"

	var gotArgs []string
	g := &Git{
		Repos: map[string]string{"myproj": repo},
		Runner: func(ctx context.Context, repoPath string, args ...string) (string, error) {
			gotArgs = args
			return out, nil
		},
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	res, err := g.Extract(context.Background(), from, from.Add(24*time.Hour))
	require.NoError(t, err)

	require.Len(t, res.Commits, 2)
	c := res.Commits[0]
	assert.Equal(t, "aaaaaaa", c.Hash, "hashes are shortened")
	assert.Equal(t, "myproj", c.Project)
	assert.Equal(t, "Ana", c.Author)
	assert.Equal(t, "fix parser", c.Message)
	assert.True(t, c.Timestamp.Equal(time.Date(2024, 3, 1, 14, 4, 5, 0, time.UTC)), "timestamps normalize to UTC")

	// Every commit also yields a commit-source raw record.
	require.Len(t, res.Records, 2)
	assert.Equal(t, domain.SourceVersionControl, res.Records[0].Source)
	assert.Equal(t, "myproj", res.Records[0].ProjectHint)

	require.Len(t, res.Warnings, 1, "malformed lines degrade to a warning")

	assert.Contains(t, gotArgs, "--all")
	assert.Contains(t, gotArgs, "--format=%H|%aI|%an|%s")
}

func TestGitExtractBrokenRepoIsWarningNotError(t *testing.T) {
	ok := t.TempDir()
	g := &Git{
		Repos: map[string]string{
			"broken": ok,
			"fine":   ok,
		},
		Runner: func(ctx context.Context, repoPath string, args ...string) (string, error) {
			return "", errors.New("exit status 128")
		},
	}

	res, err := g.Extract(context.Background(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err, "a broken repo must not fail the batch")
	assert.Len(t, res.Warnings, 2)
	assert.Empty(t, res.Commits)
}

func TestGitAvailable(t *testing.T) {
	assert.False(t, (&Git{}).Available())
	assert.True(t, (&Git{Repos: map[string]string{"p": "/tmp"}}).Available())
}
