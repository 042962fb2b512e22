// Package formatter renders projector views as the output formats a CLI
// front-end needs: aligned tables, JSON Lines for piping, and a markdown
// status report for pasting into an issue or a standup note.
package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/gitgovernance/core/internal/projector"
)

// MarkdownFormatter renders a projector.Result as a markdown backlog report.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown report formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Extension returns the file extension for markdown.
func (mf *MarkdownFormatter) Extension() string {
	return ".md"
}

// Format writes result as a markdown report.
func (mf *MarkdownFormatter) Format(w io.Writer, result projector.Result) error {
	data := buildReportData(result)

	tmpl, err := template.New("report").Funcs(reportFuncs()).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	return tmpl.Execute(w, data)
}

// reportData holds the flattened view the markdown template walks.
type reportData struct {
	Health       projector.HealthMetrics
	Cycles       []projector.CycleView
	StalledTasks []string
	AtRiskTasks  []string
}

func buildReportData(result projector.Result) *reportData {
	return &reportData{
		Health:       result.Health,
		Cycles:       result.Cycles,
		StalledTasks: result.Stalled,
		AtRiskTasks:  result.AtRisk,
	}
}

func reportFuncs() template.FuncMap {
	return template.FuncMap{
		"join":       strings.Join,
		"percent":    func(r float64) string { return fmt.Sprintf("%.0f%%", r*100) },
		"hasContent": func(s []string) bool { return len(s) > 0 },
		"hasCycles":  func(c []projector.CycleView) bool { return len(c) > 0 },
	}
}

const reportTemplate = `# Backlog Health Report

**Total tasks:** {{ .Health.TotalTasks }}
**Done:** {{ .Health.DoneTasks }} ({{ percent .Health.DoneRatio }})
**Active:** {{ .Health.ActiveTasks }}
**Stalled:** {{ .Health.StalledTasks }}
**At risk:** {{ .Health.AtRiskTasks }}

{{- if hasContent .StalledTasks }}

## Stalled tasks

{{- range .StalledTasks }}
- ` + "`{{ . }}`" + `
{{- end }}
{{- end }}

{{- if hasContent .AtRiskTasks }}

## At-risk tasks

{{- range .AtRiskTasks }}
- ` + "`{{ . }}`" + `
{{- end }}
{{- end }}

{{- if hasCycles .Cycles }}

## Cycles

| Cycle | Status | Tasks | Done | Active | Progress |
|-------|--------|-------|------|--------|----------|
{{- range .Cycles }}
| {{ .Title }} | {{ .Status }} | {{ .TaskCount }} | {{ .DoneCount }} | {{ .ActiveCount }} | {{ percent .ProgressRatio }} |
{{- end }}
{{- end }}
`
