package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtimehq/devtime/internal/domain"
)

func TestWriteHTML(t *testing.T) {
	rep := sampleReport()
	rep.UncorrelatedCommits = 1

	buf := &bytes.Buffer{}
	require.NoError(t, WriteHTML(buf, rep))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.NotContains(t, out, "src=\"http", "dashboard must be self-contained")
	assert.Contains(t, out, "myproj")
	assert.Contains(t, out, domain.UnknownProject, "unattributed time must stay visible")
	assert.Contains(t, out, "Friday, March 1, 2024")
	assert.Contains(t, out, "08:00 - 09:20")
	assert.Contains(t, out, "abc1234")
	assert.Contains(t, out, ">1.3<", "session hours roll up into the total stat")
	assert.Contains(t, out, "1 malformed")
	assert.Contains(t, out, "Uncorrelated commits: 1")
}

func TestWriteHTMLEscapesProjectNames(t *testing.T) {
	rep := sampleReport()
	rep.Projects[0].Project = `<script>alert("x")</script>`

	buf := &bytes.Buffer{}
	require.NoError(t, WriteHTML(buf, rep))

	out := buf.String()
	assert.NotContains(t, out, `<script>alert`)
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestWriteHTMLColors(t *testing.T) {
	assert.Equal(t, projectColor("myproj"), projectColor("myproj"), "colors are stable per project")
	assert.NotEqual(t, projectColor("myproj"), projectColor("other"))
	assert.Contains(t, string(projectColor(domain.UnknownProject)), "#95a5a6")

	// The hsl() value must survive the template's CSS context intact.
	buf := &bytes.Buffer{}
	require.NoError(t, WriteHTML(buf, sampleReport()))
	assert.Contains(t, buf.String(), "hsl(")
	assert.NotContains(t, buf.String(), "ZgotmplZ")
}

func TestWriteHTMLEmptyReport(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rep := &domain.Report{From: day, To: day.Add(24 * time.Hour)}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteHTML(buf, rep))
	assert.NotContains(t, buf.String(), "Uncorrelated")
	assert.NotContains(t, buf.String(), "Skipped:")
}