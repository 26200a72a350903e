package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MarkdownReporter implements Reporter by saving reports as markdown files.
type MarkdownReporter struct {
	outputDir string
}

// NewMarkdownReporter creates a new MarkdownReporter.
func NewMarkdownReporter(outputDir string) *MarkdownReporter {
	return &MarkdownReporter{
		outputDir: outputDir,
	}
}

// Save saves the outcome of a reduction run to a markdown file.
func (r *MarkdownReporter) Save(rep *CrashReport) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	reportName := fmt.Sprintf("reduced_%s_%d.md", rep.FunctionName, time.Now().UnixNano())
	reportPath := filepath.Join(r.outputDir, reportName)

	var content string
	content += fmt.Sprintf("# Reduction Report: %s\n\n", rep.FunctionName)
	content += fmt.Sprintf("## Target\n\n%s", rep.Target.Name)
	if rep.Target.Triple != "" {
		content += fmt.Sprintf(" (%s)", rep.Target.Triple)
	}
	content += "\n\n"
	content += fmt.Sprintf("## Crash Message\n\n```\n%s\n```\n\n", rep.CrashMessage)
	content += fmt.Sprintf("## Size\n\n")
	content += fmt.Sprintf("| | blocks | instructions |\n|---|---|---|\n")
	content += fmt.Sprintf("| before | %d | %d |\n", rep.Before.Blocks, rep.Before.Insts)
	content += fmt.Sprintf("| after | %d | %d |\n", rep.After.Blocks, rep.After.Insts)

	return os.WriteFile(reportPath, []byte(content), 0644)
}
