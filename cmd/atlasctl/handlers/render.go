package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"sigs.k8s.io/yaml"

	"github.com/imamik/atlasctl/internal/orchestration"
	"github.com/imamik/atlasctl/internal/platform/atlas"
	"github.com/imamik/atlasctl/internal/reconcile"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorYellow = lipgloss.Color("#eab308")
	colorRed    = lipgloss.Color("#ef4444")
	colorDim    = lipgloss.Color("#6b7280")
)

// styles are plain when the output is not a terminal.
type styles struct {
	changed lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	dim     lipgloss.Style
	header  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{changed: plain, ok: plain, failed: plain, dim: plain, header: plain}
	}
	return styles{
		changed: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		ok:      lipgloss.NewStyle().Foreground(colorGreen),
		failed:  lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		dim:     lipgloss.NewStyle().Foreground(colorDim),
		header:  lipgloss.NewStyle().Bold(true),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func validateOutput(format string) error {
	switch format {
	case "", OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q: must be %s, %s or %s", format, OutputText, OutputJSON, OutputYAML)
	}
}

// redact drops the password Atlas may echo back on create.
func redact(out *reconcile.Outcome) *reconcile.Outcome {
	if out == nil {
		return nil
	}
	u, ok := out.Resource.(*atlas.DatabaseUser)
	if !ok || u == nil || u.Password == "" {
		return out
	}
	cp := *out
	clean := *u
	clean.Password = ""
	cp.Resource = &clean
	return &cp
}

func renderOutcome(w io.Writer, format string, out *reconcile.Outcome) error {
	out = redact(out)
	switch format {
	case OutputJSON:
		return writeJSON(w, out)
	case OutputYAML:
		return writeYAML(w, out)
	default:
		st := newStyles(w)
		_, err := fmt.Fprintln(w, outcomeLine(st, out))
		return err
	}
}

func outcomeLine(st styles, out *reconcile.Outcome) string {
	status := st.ok.Render("ok")
	if out.Changed {
		status = st.changed.Render("changed")
	}
	line := fmt.Sprintf("%s %s %s", status, out.Kind, out.Key)
	if out.Action != reconcile.ActionNone {
		line += st.dim.Render(fmt.Sprintf(" (%s)", out.Action))
	}
	if c, ok := out.Resource.(*atlas.Cluster); ok && c.StateName != "" {
		line += st.dim.Render(" state=" + c.StateName)
	}
	return line
}

// reportView is the serialized form of an apply report.
type reportView struct {
	Changed   int          `json:"changed"`
	Unchanged int          `json:"unchanged"`
	Failed    int          `json:"failed"`
	Results   []resultView `json:"results"`
}

type resultView struct {
	Kind    reconcile.Kind     `json:"kind"`
	Key     string             `json:"key"`
	Outcome *reconcile.Outcome `json:"outcome,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func newReportView(report *orchestration.Report) reportView {
	v := reportView{
		Changed:   report.Changed(),
		Unchanged: report.Unchanged(),
		Failed:    report.Failed(),
		Results:   make([]resultView, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		rv := resultView{Kind: res.Kind, Key: res.Key, Outcome: redact(res.Outcome)}
		if res.Err != nil {
			rv.Error = res.Err.Error()
		}
		v.Results = append(v.Results, rv)
	}
	return v
}

func renderReport(w io.Writer, format string, report *orchestration.Report) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, newReportView(report))
	case OutputYAML:
		return writeYAML(w, newReportView(report))
	default:
		_, err := fmt.Fprint(w, renderReportText(newStyles(w), report))
		return err
	}
}

func renderReportText(st styles, report *orchestration.Report) string {
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		switch {
		case res.Err != nil:
			rows = append(rows, []string{string(res.Kind), res.Key, "-", "failed"})
		case res.Outcome.Changed:
			rows = append(rows, []string{string(res.Kind), res.Key, string(res.Outcome.Action), "changed"})
		default:
			rows = append(rows, []string{string(res.Kind), res.Key, string(res.Outcome.Action), "ok"})
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.dim).
		Headers("KIND", "KEY", "ACTION", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return st.header.Padding(0, 1)
			}
			if col == 3 && row >= 0 && row < len(rows) {
				switch rows[row][3] {
				case "failed":
					return st.failed.Padding(0, 1)
				case "changed":
					return st.changed.Padding(0, 1)
				}
			}
			return style
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d changed, %d unchanged, %d failed\n", report.Changed(), report.Unchanged(), report.Failed()))

	for _, res := range report.Results {
		if res.Err != nil {
			b.WriteString(st.failed.Render(res.Name()+":") + " " + res.Err.Error() + "\n")
		}
	}
	return b.String()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
