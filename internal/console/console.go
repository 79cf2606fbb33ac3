// Package console writes styled notices next to the word stream. Styles
// degrade to plain text when the writer is not a color terminal.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer renders notices for one writer.
type Printer struct {
	w io.Writer

	title    lipgloss.Style
	dim      lipgloss.Style
	key      lipgloss.Style
	badgeErr lipgloss.Style
	badgeOK  lipgloss.Style
}

// New returns a Printer whose color profile is detected from w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:     w,
		title: r.NewStyle().Bold(true),
		dim:   r.NewStyle().Faint(true),
		key: r.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true),
		badgeErr: r.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
		badgeOK: r.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true),
	}
}

// Title writes a bold line.
func (p *Printer) Title(format string, args ...any) error {
	_, err := fmt.Fprintln(p.w, p.title.Render(fmt.Sprintf(format, args...)))
	return err
}

// Hint writes a faint label followed by a highlighted value.
func (p *Printer) Hint(label, value string) error {
	_, err := fmt.Fprintln(p.w, p.dim.Render(label)+p.key.Render(value))
	return err
}

// Done writes a success line.
func (p *Printer) Done(format string, args ...any) error {
	_, err := fmt.Fprintln(p.w, p.badgeOK.Render(fmt.Sprintf(format, args...)))
	return err
}

// Error writes err behind an "error:" badge.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.badgeErr.Render("error:")+" "+err.Error())
}
