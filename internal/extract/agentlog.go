package extract

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devtimehq/devtime/internal/domain"
)

// AgentLog reads the per-project JSONL interaction logs an AI coding
// agent writes under its data directory. Each line with a timestamp is
// one observation; the project is derived from the directory name,
// which encodes the workspace path with dashes
// ("-home-dev-code-myproj" -> "myproj").
type AgentLog struct {
	// Dir is the root of the agent's project logs, e.g. ~/.agent/projects.
	Dir string
}

func NewAgentLog(dir string) *AgentLog { return &AgentLog{Dir: dir} }

func (a *AgentLog) Name() string { return "agent-log" }

func (a *AgentLog) Available() bool {
	info, err := os.Stat(a.Dir)
	return err == nil && info.IsDir()
}

type agentLine struct {
	Timestamp string `json:"timestamp"`
}

func (a *AgentLog) Extract(ctx context.Context, from, to time.Time) (Result, error) {
	var res Result
	err := filepath.WalkDir(a.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("walk %s: %v", path, err))
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}
		project := ProjectFromEncodedDir(filepath.Base(filepath.Dir(path)))
		records, skipped := a.parseFile(path, project)
		res.Records = append(res.Records, records...)
		if skipped > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: skipped %d malformed lines", filepath.Base(path), skipped))
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// parseFile reads one JSONL file. Malformed lines are counted and
// skipped; the engine applies the authoritative timestamp parsing and
// range filtering, so raw timestamps pass through untouched.
func (a *AgentLog) parseFile(path, project string) (records []domain.RawRecord, skipped int) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Agent transcripts can hold very long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry agentLine
		if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.Timestamp == "" {
			skipped++
			continue
		}
		records = append(records, domain.RawRecord{
			Timestamp:   entry.Timestamp,
			ProjectHint: project,
			Source:      domain.SourceAgentLog,
			Meta:        map[string]string{"file": filepath.Base(path)},
		})
	}
	return records, skipped
}

// ProjectFromEncodedDir recovers a readable project name from a log
// directory name that encodes a filesystem path with dashes. The last
// non-empty segment is the best available guess.
func ProjectFromEncodedDir(dir string) string {
	if !strings.HasPrefix(dir, "-") {
		return dir
	}
	parts := strings.Split(dir, "-")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return domain.UnknownProject
}
