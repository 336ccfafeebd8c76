package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/devtimehq/devtime/internal/domain"
)

// EditorState mines the editor's local state store for activity. The
// store only records last-modified times, not session boundaries, so
// every observation is a point event: the mtime of the global state
// database, of each workspace database, and of a handful of cache
// files. Backup copies of a database yield Backup=true observations
// that the engine dedupes against the primary. Cache and session
// storage files carry no workspace association at all and go out as
// general (unattributed) observations.
type EditorState struct {
	// Dir is the editor's config root, e.g. ~/.config/Editor.
	Dir string
}

// Relative paths of files whose mtimes indicate activity without any
// project attribution.
var generalActivityFiles = []string{
	"Cache/Cache_Data/data_0",
	"Cache/Cache_Data/data_1",
	"Session Storage/LOG",
	"Local Storage/leveldb/LOG",
}

func NewEditorState(dir string) *EditorState { return &EditorState{Dir: dir} }

func (e *EditorState) Name() string { return "editor-state" }

func (e *EditorState) Available() bool {
	_, err := os.Stat(filepath.Join(e.Dir, "User", "globalStorage", "state.vscdb"))
	return err == nil
}

func (e *EditorState) Extract(ctx context.Context, from, to time.Time) (Result, error) {
	var res Result

	// Global store: activity but no workspace attribution.
	global := filepath.Join(e.Dir, "User", "globalStorage", "state.vscdb")
	e.observe(&res, global, "", false, from, to)
	e.observe(&res, global+".backup", "", true, from, to)

	// Per-workspace stores, with the project read from workspace.json.
	workspaces, err := filepath.Glob(filepath.Join(e.Dir, "User", "workspaceStorage", "*", "state.vscdb"))
	if err != nil {
		return Result{}, fmt.Errorf("glob workspace stores: %w", err)
	}
	for _, db := range workspaces {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		project := e.workspaceProject(filepath.Dir(db))
		e.observe(&res, db, project, false, from, to)
		e.observe(&res, db+".backup", project, true, from, to)
	}

	for _, rel := range generalActivityFiles {
		e.observe(&res, filepath.Join(e.Dir, rel), "", false, from, to)
	}

	return res, nil
}

// observe appends a point observation for the file's mtime, if the file
// exists and the mtime falls in range. A missing file is simply no
// activity.
func (e *EditorState) observe(res *Result, file, project string, backup bool, from, to time.Time) {
	info, err := os.Stat(file)
	if err != nil {
		return
	}
	mtime := info.ModTime().UTC()
	if mtime.Before(from) || mtime.After(to) {
		return
	}
	res.Records = append(res.Records, domain.RawRecord{
		Timestamp:   mtime.Format(time.RFC3339Nano),
		ProjectHint: project,
		Source:      domain.SourceEditorState,
		Backup:      backup,
		Meta:        map[string]string{"file": filepath.Base(file)},
	})
}

type workspaceMeta struct {
	Folder string `json:"folder"`
}

// workspaceProject resolves the project name for a workspace storage
// directory from its workspace.json folder URI. Unresolvable
// workspaces land in the Unknown bucket rather than being dropped.
func (e *EditorState) workspaceProject(dir string) string {
	raw, err := os.ReadFile(filepath.Join(dir, "workspace.json"))
	if err != nil {
		return domain.UnknownProject
	}
	var meta workspaceMeta
	if err := json.Unmarshal(raw, &meta); err != nil || meta.Folder == "" {
		return domain.UnknownProject
	}
	folder := meta.Folder
	if u, err := url.Parse(folder); err == nil && u.Path != "" {
		folder = u.Path
	}
	name := path.Base(strings.TrimRight(folder, "/"))
	if name == "" || name == "." || name == "/" {
		return domain.UnknownProject
	}
	return name
}
