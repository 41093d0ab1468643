package faprune

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		expected   OutputFormat
	}{
		{"default", "", OutputSummary},
		{"explicit summary", "summary", OutputSummary},
		{"explicit issues", "issues", OutputIssues},
		{"explicit json", "json", OutputJSON},
		{"unknown falls back", "xml", OutputSummary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag))
		})
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleBuildResult(), OutputJSON, ReportConfig{}))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.Equal(t, 2, output.Summary.TemplatesScanned)
	assert.Equal(t, 1, output.Summary.VendorFiles)
	assert.Equal(t, 4, output.Summary.RulesRemoved)
	assert.Equal(t, 3072, output.Summary.BytesSaved)
	assert.Equal(t, 1, output.Summary.TotalIssues)

	assert.True(t, output.Icons.AllPossible)
	assert.Equal(t, []string{PossiblyAll, "car"}, output.Icons.Used)

	require.Len(t, output.Files, 1)
	assert.Equal(t, "assets/vendor.css", output.Files[0].Path)
	assert.Equal(t, []string{"bus"}, output.Files[0].RemovedIcons)

	require.Len(t, output.Issues, 1)
	assert.Equal(t, "app/b.hbs", output.Issues[0].File)
	assert.Equal(t, 4, output.Issues[0].Line)
	assert.Equal(t, "{{fa-icon this.icon}}", output.Issues[0].Source)
}

func TestWriteOutput_JSONEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, &BuildResult{}, OutputJSON, ReportConfig{}))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	// Empty collections encode as [] rather than null
	assert.Equal(t, []any{}, raw["files"])
	assert.Equal(t, []any{}, raw["issues"])
	assert.Equal(t, []any{}, raw["warnings"])
	assert.NotContains(t, raw, "plan")
}

func TestWriteOutput_Issues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleBuildResult(), OutputIssues, ReportConfig{PrintLinterName: true}))

	out := buf.String()
	assert.Contains(t, out, "app/b.hbs:4:1:")
	assert.Contains(t, out, "1 issue:")
	assert.NotContains(t, out, "Scanned")
}

func TestWriteOutput_Summary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleBuildResult(), OutputSummary, ReportConfig{}))

	out := buf.String()
	assert.Contains(t, out, "app/b.hbs:4:1:")
	assert.Contains(t, out, "Scanned 2 templates")
	assert.Contains(t, out, "Removed 4 rules")
}
