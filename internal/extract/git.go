package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/devtimehq/devtime/internal/domain"
)

// GitRunner executes a git command in a repository and returns its
// output. The indirection keeps the extractor testable without git.
type GitRunner func(ctx context.Context, repoPath string, args ...string) (string, error)

// Git extracts commit history from configured local repositories. Each
// commit becomes both a Commit (for correlation) and a commit-source
// raw record (so dense commit bursts show up as sessions of their own).
type Git struct {
	// Repos maps a project name to a local repository path.
	Repos map[string]string

	// Runner defaults to a real git subprocess.
	Runner GitRunner
}

func NewGit(repos map[string]string) *Git { return &Git{Repos: repos} }

func (g *Git) Name() string { return "git" }

func (g *Git) Available() bool { return len(g.Repos) > 0 }

func defaultGitRunner(ctx context.Context, repoPath string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath
	out, err := cmd.Output()
	return string(out), err
}

const logFormat = "%H|%aI|%an|%s"

func (g *Git) Extract(ctx context.Context, from, to time.Time) (Result, error) {
	runner := g.Runner
	if runner == nil {
		runner = defaultGitRunner
	}

	projects := make([]string, 0, len(g.Repos))
	for project := range g.Repos {
		projects = append(projects, project)
	}
	sort.Strings(projects)

	var res Result
	for _, project := range projects {
		repoPath := g.Repos[project]
		if _, err := os.Stat(repoPath); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", project, err))
			continue
		}
		out, err := runner(ctx, repoPath,
			"log", "--all",
			"--format="+logFormat,
			"--since="+from.Format(time.RFC3339),
			"--until="+to.Format(time.RFC3339),
		)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: git log: %v", project, err))
			continue
		}
		commits, skipped := parseGitLog(out, project)
		if skipped > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: skipped %d malformed log lines", project, skipped))
		}
		res.Commits = append(res.Commits, commits...)
		for _, c := range commits {
			res.Records = append(res.Records, domain.RawRecord{
				Timestamp:   c.Timestamp.Format(time.RFC3339),
				ProjectHint: project,
				Source:      domain.SourceVersionControl,
				Meta:        map[string]string{"hash": c.Hash},
			})
		}
	}
	return res, nil
}

// parseGitLog parses "hash|authored-at|author|subject" lines.
func parseGitLog(out, project string) (commits []domain.Commit, skipped int) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "|", 4)
		if len(fields) != 4 {
			skipped++
			continue
		}
		ts, err := time.Parse(time.RFC3339, fields[1])
		if err != nil {
			skipped++
			continue
		}
		commits = append(commits, domain.Commit{
			Timestamp: ts.UTC(),
			Project:   project,
			Hash:      shortHash(fields[0]),
			Author:    fields[2],
			Message:   fields[3],
		})
	}
	return commits, skipped
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
