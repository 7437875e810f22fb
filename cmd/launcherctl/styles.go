package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorGreen = lipgloss.Color("#50FA7B")
	colorRed   = lipgloss.Color("#FF5555")
	colorCyan  = lipgloss.Color("#8BE9FD")
	colorGray  = lipgloss.Color("#6272A4")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	okStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	failStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(colorGray)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)
)

// printer writes either styled terminal output or plain text.
type printer struct {
	out    io.Writer
	styled bool
}

func newPrinter(out io.Writer) *printer {
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &printer{out: out, styled: styled}
}

func (p *printer) render(style lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return style.Render(text)
}

func (p *printer) title(text string) {
	fmt.Fprintln(p.out, p.render(titleStyle, text))
}

// status prints one check line with its detail and, when failing, the fix.
func (p *printer) status(ok bool, label, details, fix string) {
	mark := p.render(okStyle, "✓")
	if !ok {
		mark = p.render(failStyle, "✗")
	}
	line := fmt.Sprintf("%s %s", mark, label)
	if details != "" {
		line += p.render(dimStyle, " · "+details)
	}
	fmt.Fprintln(p.out, line)
	if !ok && fix != "" {
		fmt.Fprintln(p.out, "    "+p.render(dimStyle, "→ "+fix))
	}
}

func (p *printer) field(label string, value any) {
	fmt.Fprintf(p.out, "%s %v\n", p.render(dimStyle, label+":"), value)
}

func (p *printer) panel(text string) {
	if !p.styled {
		fmt.Fprintln(p.out, text)
		return
	}
	fmt.Fprintln(p.out, panelStyle.Render(text))
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
