// Package report assembles validation findings and column profiles into
// a single document and renders it as plain text, Markdown, HTML, or
// JSON.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/reedan88/ooicgsn-data-tools/domain/core"
	"github.com/reedan88/ooicgsn-data-tools/domain/qc"
	"github.com/reedan88/ooicgsn-data-tools/internal/profiling"
)

// Document is one rendered QC run: the findings plus optional column
// profiles.
type Document struct {
	qc.Report
	Profiles []profiling.ColumnSummary `json:"profiles,omitempty"`
}

// New assembles a document with a fresh report ID.
func New(source string, errs []qc.Error, profiles []profiling.ColumnSummary) *Document {
	return &Document{
		Report: qc.Report{
			ID:          core.NewReportID(),
			Source:      source,
			GeneratedAt: core.Now(),
			Errors:      errs,
		},
		Profiles: profiles,
	}
}

// Text renders the document as one finding per line, for terminals.
func (d *Document) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "QC report %s", d.ID)
	if d.Source != "" {
		fmt.Fprintf(&b, " for %s", d.Source)
	}
	fmt.Fprintf(&b, ": %d finding(s)\n", len(d.Errors))
	for _, e := range d.Errors {
		fmt.Fprintf(&b, "  %s\n", e.String())
	}
	return b.String()
}

// Markdown renders the document as a Markdown report with findings and
// profile tables.
func (d *Document) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Discrete Sample Summary QC Report\n\n")
	fmt.Fprintf(&b, "- Report: `%s`\n", d.ID)
	if d.Source != "" {
		fmt.Fprintf(&b, "- Source: `%s`\n", d.Source)
	}
	fmt.Fprintf(&b, "- Generated: %s\n", d.GeneratedAt.Time().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Findings: %d\n\n", len(d.Errors))

	if d.Passed() {
		b.WriteString("No findings. The sheet conforms to the schema.\n")
	} else {
		b.WriteString("## Findings\n\n")
		b.WriteString("| Kind | Column | Row | Value | Group | Message |\n")
		b.WriteString("|------|--------|-----|-------|-------|--------|\n")
		for _, e := range d.Errors {
			row := ""
			if !e.Structural() {
				row = fmt.Sprintf("%d", e.Row)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				e.Kind, mdEscape(e.Column), row, mdEscape(e.Raw),
				mdEscape(strings.Join(e.Group, "/")), mdEscape(e.Message))
		}
	}

	if len(d.Profiles) > 0 {
		b.WriteString("\n## Column Profiles\n\n")
		b.WriteString("| Column | Rows | Null | Fill | Numeric | Min | Max | Mean | StdDev |\n")
		b.WriteString("|--------|------|------|------|---------|-----|-----|------|--------|\n")
		for _, p := range d.Profiles {
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %s | %s | %s | %s |\n",
				mdEscape(p.Name), p.Rows, p.NullCount, p.FillCount, p.Numeric,
				num(p.Min, p.Numeric), num(p.Max, p.Numeric),
				num(p.Mean, p.Numeric), num(p.StdDev, p.Numeric))
		}
	}
	return b.String()
}

// HTML renders the Markdown report as a complete HTML page.
func (d *Document) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Discrete Sample Summary QC Report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(d.Markdown()), p, renderer)
}

// JSON renders the document for API responses.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func mdEscape(s string) string {
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(s)
}

func num(v float64, numeric int) string {
	if numeric == 0 {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}
