package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
	"github.com/bryanwahyu/scriptguard/internal/response"
)

// renderEnvelope prints the verdict line followed by one table row per
// result, or the details text when there is no report.
func renderEnvelope(env response.Envelope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", env.Body.Status, env.Body.Message)

	report, ok := env.Body.Details.(domain.Report)
	if !ok {
		if env.Body.Details != nil {
			fmt.Fprintf(&b, "%v\n", env.Body.Details)
		}
		return strings.TrimRight(b.String(), "\n")
	}
	b.WriteString(renderReport(report))
	return b.String()
}

func renderReport(report domain.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Category", "Criteria", "Passed", "Severity", "Feedback", "Suggestions"})

	for _, c := range domain.Categories() {
		for _, res := range report.Results(c) {
			severity := "-"
			if res.Severity != nil {
				severity = string(*res.Severity)
			}
			tw.AppendRow(table.Row{
				c.String(),
				res.Criteria,
				passedMark(res.Passed),
				severity,
				res.Feedback,
				strings.Join(res.Suggestions, "\n"),
			})
		}
		tw.AppendSeparator()
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignCenter},
		{Number: 5, WidthMax: 60},
		{Number: 6, WidthMax: 40},
	})
	return tw.Render()
}

func passedMark(passed bool) string {
	if passed {
		return "yes"
	}
	return "NO"
}
