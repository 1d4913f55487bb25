package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"cadr/internal/decay"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
)

// Document is everything the CLI prints for one analysis.
type Document struct {
	Profile    string       `yaml:"profile"`
	Strategy   string       `yaml:"strategy"`
	RoomVolume float64      `yaml:"room_volume"`
	Sources    []string     `yaml:"sources"`
	Report     decay.Report `yaml:"report"`
}

// Write renders doc in the requested format.
func Write(w io.Writer, format string, doc Document) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, Text(doc))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		rows := make([]FitRow, len(doc.Report.Trials))
		for i, tr := range doc.Report.Trials {
			rows[i] = FitRow{Source: source(doc.Sources, i), Fit: tr.Fit, CADR: tr.CADR}
		}
		return WriteFitCSV(w, false, rows...)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Text renders doc as a short human readable block.
func Text(doc Document) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("CADR analysis (%s, %s)", doc.Profile, doc.Strategy)))
	b.WriteByte('\n')
	line("baseline ACH", fmt.Sprintf("%s ±%s", Fixed(doc.Report.Baseline.Rate), Fixed(doc.Report.Baseline.StdErr)))
	for i, tr := range doc.Report.Trials {
		b.WriteString(titleStyle.Render(source(doc.Sources, i)))
		b.WriteByte('\n')
		line("C0", Fixed(tr.Fit.C0))
		line("ACH", Fixed(tr.Fit.Rate))
		line("stderr (ACH)", Fixed(tr.Fit.StdErr))
		line("window", fmt.Sprintf("[%d, %d)", tr.Window.Start, tr.Window.End))
		line("CADR", fmt.Sprintf("%s ±%s", Fixed(tr.CADR.CADR), Fixed(tr.CADR.StdErr)))
	}
	if doc.Report.Summary.N > 1 {
		line("mean CADR", fmt.Sprintf("%s ±%s (n=%d)", Fixed(doc.Report.Summary.Mean), Fixed(doc.Report.Summary.SEM), doc.Report.Summary.N))
	}
	return b.String()
}

func source(sources []string, i int) string {
	if i < len(sources) && sources[i] != "" {
		return sources[i]
	}
	return fmt.Sprintf("trial %d", i+1)
}
