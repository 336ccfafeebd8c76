package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtimehq/devtime/internal/domain"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestEditorStateExtract(t *testing.T) {
	dir := t.TempDir()
	recent := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	global := filepath.Join(dir, "User", "globalStorage", "state.vscdb")
	touch(t, global, recent)
	touch(t, global+".backup", recent.Add(2*time.Second))

	ws := filepath.Join(dir, "User", "workspaceStorage", "abc123")
	touch(t, filepath.Join(ws, "state.vscdb"), recent.Add(-30*time.Minute))
	writeFile(t, filepath.Join(ws, "workspace.json"), `{"folder":"file:///home/dev/code/myproj"}`)

	// Outside the extraction range, must not appear.
	ws2 := filepath.Join(dir, "User", "workspaceStorage", "old999")
	touch(t, filepath.Join(ws2, "state.vscdb"), old)

	touch(t, filepath.Join(dir, "Session Storage", "LOG"), recent.Add(-10*time.Minute))

	e := NewEditorState(dir)
	require.True(t, e.Available())

	from := time.Now().UTC().Add(-24 * time.Hour)
	res, err := e.Extract(context.Background(), from, time.Now().UTC())
	require.NoError(t, err)

	byHint := map[string]int{}
	var backups, generals int
	for _, rec := range res.Records {
		byHint[rec.ProjectHint]++
		if rec.Backup {
			backups++
		}
		if rec.ProjectHint == "" {
			generals++
		}
		assert.Equal(t, domain.SourceEditorState, rec.Source)
	}

	assert.Equal(t, 1, byHint["myproj"], "workspace store attributed via workspace.json")
	assert.Equal(t, 1, backups, "backup copy observed with the backup flag")
	// Global store, its backup, and the session storage log are all
	// unattributed.
	assert.Equal(t, 3, generals)
	assert.Len(t, res.Records, 4)
}

func TestEditorStateWorkspaceProjectFallsBackToUnknown(t *testing.T) {
	dir := t.TempDir()
	ws := filepath.Join(dir, "ws")
	require.NoError(t, os.MkdirAll(ws, 0o755))

	e := NewEditorState(dir)
	assert.Equal(t, domain.UnknownProject, e.workspaceProject(ws), "missing workspace.json")

	writeFile(t, filepath.Join(ws, "workspace.json"), `not json`)
	assert.Equal(t, domain.UnknownProject, e.workspaceProject(ws), "unreadable workspace.json")

	writeFile(t, filepath.Join(ws, "workspace.json"), `{"folder":"file:///home/dev/code/myproj"}`)
	assert.Equal(t, "myproj", e.workspaceProject(ws))
}

func TestEditorStateUnavailable(t *testing.T) {
	assert.False(t, NewEditorState(t.TempDir()).Available())
}
