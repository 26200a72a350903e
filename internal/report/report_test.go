package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjy-dev/ir-bugpoint/internal/report"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

func sampleReport() *report.CrashReport {
	return &report.CrashReport{
		FunctionName: "crasher",
		Target:       target.Descriptor{Name: "x86_64", Triple: "x86_64-unknown-linux-gnu"},
		CrashMessage: "index out of bounds",
		Before:       report.FunctionStats{Blocks: 5, Insts: 20},
		After:        report.FunctionStats{Blocks: 1, Insts: 1},
	}
}

func TestMarkdownReporterWritesReadableFile(t *testing.T) {
	dir := t.TempDir()
	r := report.NewMarkdownReporter(dir)

	err := r.Save(sampleReport())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "index out of bounds")
	assert.Contains(t, string(content), "x86_64")
}

func TestJSONReporterWritesValidDocument(t *testing.T) {
	dir := t.TempDir()
	r := report.NewJSONReporter(dir)

	err := r.Save(sampleReport())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "crasher", decoded["function"])
	assert.Equal(t, "index out of bounds", decoded["crash_message"])

	assert.Equal(t, "crasher", report.FunctionNameFromJSONReport(raw))
}
