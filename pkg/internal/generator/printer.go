package generator

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// printer writes the user-facing status lines.
type printer struct {
	w       io.Writer
	info    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	prompt  lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	if w == nil {
		w = io.Discard
	}
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		info:    r.NewStyle().Foreground(lipgloss.Color("#2196F3")),
		success: r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#FFC107")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		prompt:  r.NewStyle().Bold(true),
	}
}

func (p *printer) Infof(format string, args ...any) {
	fmt.Fprintln(p.w, p.info.Render("📋 "+fmt.Sprintf(format, args...)))
}

func (p *printer) Successf(format string, args ...any) {
	fmt.Fprintln(p.w, p.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (p *printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.w, p.warn.Render("⚠️  "+fmt.Sprintf(format, args...)))
}

func (p *printer) Failf(format string, args ...any) {
	fmt.Fprintln(p.w, p.fail.Render("❌ "+fmt.Sprintf(format, args...)))
}

// Prompt writes a question without a trailing newline.
func (p *printer) Prompt(question string) {
	fmt.Fprint(p.w, p.prompt.Render("💡 "+question)+" ")
}
