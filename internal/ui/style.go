// Package ui renders command output: aligned tables and status icons.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity shown next to a line of output.
type Level int

const (
	LevelOK Level = iota
	LevelWarn
	LevelFail
)

// Printer styles text for one output stream. Colours are dropped when the
// stream is not a terminal.
type Printer struct {
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a Printer whose colour profile follows out.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Icon returns the status marker for l.
func (p *Printer) Icon(l Level) string {
	switch l {
	case LevelWarn:
		return p.warn.Render("!")
	case LevelFail:
		return p.fail.Render("✗")
	default:
		return p.ok.Render("✓")
	}
}

// Label renders text in the colour of l.
func (p *Printer) Label(l Level, text string) string {
	switch l {
	case LevelWarn:
		return p.warn.Render(text)
	case LevelFail:
		return p.fail.Render(text)
	default:
		return p.ok.Render(text)
	}
}

// Muted renders secondary text such as fix hints.
func (p *Printer) Muted(text string) string {
	return p.muted.Render(text)
}
