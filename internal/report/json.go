package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/multierr"
)

// JSONReporter implements Reporter by saving reports as JSON documents,
// built field-by-field with sjson rather than through encoding/json, so
// a report can be assembled incrementally as fields become known.
type JSONReporter struct {
	outputDir string
}

// NewJSONReporter creates a new JSONReporter.
func NewJSONReporter(outputDir string) *JSONReporter {
	return &JSONReporter{outputDir: outputDir}
}

// Save saves the outcome of a reduction run to a JSON file.
func (r *JSONReporter) Save(rep *CrashReport) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	doc := "{}"
	var errs error
	set := func(path string, value interface{}) {
		var err error
		doc, err = sjson.Set(doc, path, value)
		errs = multierr.Append(errs, err)
	}

	set("function", rep.FunctionName)
	set("target.name", rep.Target.Name)
	set("target.triple", rep.Target.Triple)
	set("crash_message", rep.CrashMessage)
	set("before.blocks", rep.Before.Blocks)
	set("before.insts", rep.Before.Insts)
	set("after.blocks", rep.After.Blocks)
	set("after.insts", rep.After.Insts)
	if errs != nil {
		return fmt.Errorf("failed to assemble report document: %w", errs)
	}

	reportName := fmt.Sprintf("reduced_%s_%d.json", rep.FunctionName, time.Now().UnixNano())
	reportPath := filepath.Join(r.outputDir, reportName)
	return os.WriteFile(reportPath, []byte(doc), 0644)
}

// FunctionNameFromJSONReport extracts the "function" field from a
// previously saved report without fully unmarshaling it, useful for
// quick CLI summaries over a directory of reports.
func FunctionNameFromJSONReport(raw []byte) string {
	return gjson.GetBytes(raw, "function").String()
}
