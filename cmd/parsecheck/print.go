package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"parsecheck/internal/diag"
	"parsecheck/internal/parse"
)

type printer struct {
	out io.Writer

	okStyle   lipgloss.Style
	errStyle  lipgloss.Style
	warnStyle lipgloss.Style
	noteStyle lipgloss.Style
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:       out,
		okStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		errStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warnStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		noteStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

func (p *printer) success(path string, result *parse.Result) {
	fmt.Fprintf(p.out, "%s %s\n", p.okStyle.Render("ok"), path)
	for _, d := range result.Diagnostics(diag.SevWarning) {
		fmt.Fprintf(p.out, "  %s\n", p.warnStyle.Render(d.String()))
	}
	for _, d := range result.Diagnostics(diag.SevNote) {
		fmt.Fprintf(p.out, "  %s\n", p.noteStyle.Render(d.String()))
	}
}

func (p *printer) parseFailure(err *parse.ParseError) {
	fmt.Fprintf(p.out, "%s %s\n", p.errStyle.Render("FAIL"), err.Description)
	for _, d := range err.Diagnostics {
		line := d.String()
		switch d.Severity {
		case diag.SevError:
			line = p.errStyle.Render(line)
		case diag.SevWarning:
			line = p.warnStyle.Render(line)
		default:
			line = p.noteStyle.Render(line)
		}
		fmt.Fprintf(p.out, "  %s\n", line)
	}
}

func (p *printer) sessionFailure(path string, err error) {
	fmt.Fprintf(p.out, "%s %s: %v\n", p.errStyle.Render("ERROR"), path, err)
}
