// Package report renders plans and execution reports for the terminal or as
// JSON/YAML documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v3"

	"github.com/schemagen/schemagen/internal/barrel"
	"github.com/schemagen/schemagen/internal/naming"
	"github.com/schemagen/schemagen/internal/scaffold"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("format %q cannot encode values", format)
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
	bold   = color.New(color.Bold)
)

func statusColor(s scaffold.Status) *color.Color {
	switch s {
	case scaffold.StatusCreated, scaffold.StatusOverwritten, scaffold.StatusApplied:
		return green
	case scaffold.StatusSkipped:
		return yellow
	case scaffold.StatusFailed:
		return red
	}
	return faint
}

// FileDiff is the dry-run diff of one file.
type FileDiff struct {
	Path string `json:"path" yaml:"path"`
	Diff string `json:"diff" yaml:"diff"`
}

// RunView is the encoded form of an execution report.
type RunView struct {
	Request scaffold.Request  `json:"request" yaml:"request"`
	DryRun  bool              `json:"dry_run" yaml:"dry_run"`
	Results []scaffold.Result `json:"results" yaml:"results"`
	Summary map[string]int    `json:"summary" yaml:"summary"`
	Diffs   []FileDiff        `json:"diffs,omitempty" yaml:"diffs,omitempty"`
}

// NewRunView builds the encoded form of r.
func NewRunView(r *scaffold.Report, diffs []FileDiff) RunView {
	summary := make(map[string]int)
	for _, s := range scaffold.Statuses {
		if n := r.Count(s); n > 0 {
			summary[string(s)] = n
		}
	}
	return RunView{Request: r.Request, DryRun: r.DryRun, Results: r.Results, Summary: summary, Diffs: diffs}
}

// Printer writes plans and reports in one format.
type Printer struct {
	w      io.Writer
	format Format
}

// New returns a printer writing to w.
func New(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Report writes the results of a run. In text form existing files are not
// listed and diffs follow the result lines.
func (p *Printer) Report(r *scaffold.Report, diffs []FileDiff) error {
	if p.format != FormatText {
		return Encode(p.w, p.format, NewRunView(r, diffs))
	}

	title := fmt.Sprintf("Scaffolding %s %q in feature %q", typeLabel(r.Request.Type), r.Request.Name, r.Request.Feature)
	if r.DryRun {
		title += faint.Sprint(" (dry run, no files written)")
	}
	fmt.Fprintln(p.w, bold.Sprint(title))
	fmt.Fprintln(p.w)

	for _, res := range r.Results {
		if res.Status == scaffold.StatusExists {
			continue
		}
		line := fmt.Sprintf("  %s %s", statusColor(res.Status).Sprintf("%-11s", res.Status), res.Path)
		switch {
		case res.Status == scaffold.StatusFailed:
			line += " " + red.Sprint(res.Error)
		case res.Reason != "" && res.Reason != scaffold.ReasonObjectType:
			line += faint.Sprintf(" (%s)", res.Reason)
		case res.Reason != "":
			line += faint.Sprintf(" [%s] (%s)", res.ID, res.Reason)
		}
		fmt.Fprintln(p.w, line)
	}

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, summaryLine(r))

	for _, d := range diffs {
		if d.Diff == "" {
			continue
		}
		fmt.Fprintln(p.w)
		p.diff(d.Diff)
	}
	return nil
}

func typeLabel(t scaffold.SchemaType) string {
	if t == "" {
		return string(scaffold.Document)
	}
	return string(t)
}

func summaryLine(r *scaffold.Report) string {
	var parts []string
	for _, s := range scaffold.Statuses {
		if n := r.Count(s); n > 0 {
			parts = append(parts, statusColor(s).Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		return "Nothing to do."
	}
	return "Summary: " + strings.Join(parts, ", ")
}

func (p *Printer) diff(text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(p.w, bold.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(p.w, cyan.Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(p.w, green.Sprint(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(p.w, red.Sprint(line))
		default:
			fmt.Fprint(p.w, line)
		}
	}
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(p.w)
	}
}

// OperationView is the encoded form of a planned operation.
type OperationView struct {
	ID          string        `json:"id" yaml:"id"`
	Kind        string        `json:"kind" yaml:"kind"`
	Path        string        `json:"path" yaml:"path"`
	Template    string        `json:"template,omitempty" yaml:"template,omitempty"`
	Text        string        `json:"text,omitempty" yaml:"text,omitempty"`
	Exists      string        `json:"exists,omitempty" yaml:"exists,omitempty"`
	Placement   string        `json:"placement,omitempty" yaml:"placement,omitempty"`
	Anchor      string        `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	Marker      string        `json:"marker,omitempty" yaml:"marker,omitempty"`
	Barrel      *barrel.Entry `json:"barrel,omitempty" yaml:"barrel,omitempty"`
	Condition   string        `json:"condition,omitempty" yaml:"condition,omitempty"`
	After       []string      `json:"after,omitempty" yaml:"after,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// PlanView is the encoded form of a plan.
type PlanView struct {
	Request    scaffold.Request `json:"request" yaml:"request"`
	Feature    naming.Names     `json:"feature" yaml:"feature"`
	Name       naming.Names     `json:"name" yaml:"name"`
	Dedupe     bool             `json:"dedupe" yaml:"dedupe"`
	Operations []OperationView  `json:"operations" yaml:"operations"`
}

// NewPlanView builds the encoded form of plan.
func NewPlanView(plan *scaffold.Plan) PlanView {
	ops := make([]OperationView, len(plan.Operations))
	for i, op := range plan.Operations {
		ops[i] = OperationView{
			ID:          op.ID,
			Kind:        string(op.Kind),
			Path:        op.Path,
			Template:    op.Template,
			Text:        op.Text,
			Exists:      string(op.Exists),
			Placement:   string(op.Placement),
			Anchor:      op.AnchorPattern(),
			Marker:      op.MarkerPattern(),
			Barrel:      op.Barrel,
			Condition:   op.Condition(),
			After:       op.After,
			Description: op.Description,
		}
	}
	return PlanView{
		Request:    plan.Request,
		Feature:    plan.Feature,
		Name:       plan.Name,
		Dedupe:     plan.Options.Dedupe,
		Operations: ops,
	}
}

// Plan writes the ordered operations of plan.
func (p *Printer) Plan(plan *scaffold.Plan) error {
	if p.format != FormatText {
		return Encode(p.w, p.format, NewPlanView(plan))
	}

	fmt.Fprintln(p.w, bold.Sprintf("Plan for %s %q in feature %q", typeLabel(plan.Request.Type), plan.Request.Name, plan.Request.Feature))
	fmt.Fprintln(p.w)

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tKIND\tPATH\tCONDITION\tAFTER")
	for i, op := range plan.Operations {
		cond := op.Condition()
		if cond == "" {
			cond = "-"
		}
		after := strings.Join(op.After, ",")
		if after == "" {
			after = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, op.ID, op.Kind, op.Path, cond, after)
	}
	return tw.Flush()
}
