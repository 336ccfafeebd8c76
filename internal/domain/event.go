package domain

import "time"

// Source identifies the tool category an observation came from.
type Source string

const (
	// SourceAgentLog is a per-interaction JSONL log written by an AI coding agent.
	SourceAgentLog Source = "agent-log"
	// SourceEditorState is the local editor's state store (mtime-based observations).
	SourceEditorState Source = "editor-state"
	// SourceVersionControl is git history.
	SourceVersionControl Source = "git"
)

// Priority orders sources by confidence for deterministic dedup tie-breaks.
// Lower wins.
func (s Source) Priority() int {
	switch s {
	case SourceAgentLog:
		return 0
	case SourceEditorState:
		return 1
	case SourceVersionControl:
		return 2
	}
	return 3
}

func (s Source) String() string { return string(s) }

// UnknownProject is the bucket for activity that could not be attributed.
// It is always reported, never silently dropped.
const UnknownProject = "Unknown"

// RawRecord is one observation as handed over by an extractor, before
// normalization. Timestamp is the raw string form (RFC3339, a common
// date-time layout, or a unix seconds/millis integer).
type RawRecord struct {
	Timestamp string `json:"timestamp"`

	// ProjectHint is the extractor's best guess at the project name.
	// Empty means the extractor observed activity but has no idea which
	// project it belongs to (a "general" observation).
	ProjectHint string `json:"project_hint,omitempty"`

	Source Source `json:"source"`

	// Backup marks a lower-confidence duplicate observation, e.g. a
	// backup copy of an editor state database.
	Backup bool `json:"backup,omitempty"`

	Meta map[string]string `json:"meta,omitempty"`
}

// ActivityEvent is one normalized moment of tool activity. Timestamp is
// always a concrete UTC instant; ranges only exist once the session
// builder has run.
type ActivityEvent struct {
	Timestamp time.Time `json:"timestamp"`
	// Project is the canonical project name. Empty means unattributed:
	// the deduplicator tests such events against every project's kept
	// timestamps and files survivors under UnknownProject.
	Project string `json:"project"`
	Source  Source `json:"source"`
	Backup  bool   `json:"backup,omitempty"`
}
