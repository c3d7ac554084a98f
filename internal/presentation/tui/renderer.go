// Package tui renders lines, hexagrams and interpretations for the
// terminal. It is a one-directional consumer of the divination types: it
// reads their public state and returns strings, nothing more.
package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/cliching/pkg/divination"
	"github.com/aretw0/cliching/pkg/oracle"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	yangSymbol = "#######"
	yinSymbol  = "### ###"
)

// Renderer turns divination values into display text. In plain mode the
// output carries no escape codes at all.
type Renderer struct {
	plain  bool
	old    lipgloss.Style
	young  lipgloss.Style
	header lipgloss.Style
}

// NewRenderer creates a renderer. Plain mode is for pipes, logs and
// --no-color.
func NewRenderer(plain bool) *Renderer {
	r := &Renderer{plain: plain}
	if !plain {
		// Old (mutable) lines in blue, young lines in red, as on the
		// traditional colored table.
		r.old = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		r.young = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		r.header = lipgloss.NewStyle().Bold(true)
	}
	return r
}

// Yao renders a single line. Old lines carry their traditional marker:
// 'o' for old Yang, 'x' for old Yin.
func (r *Renderer) Yao(yao divination.Yao) string {
	symbol := yinSymbol
	if yao.Value == divination.Yang {
		symbol = yangSymbol
	}

	marker := ""
	switch yao.Kind() {
	case divination.OldYang:
		marker = " o"
	case divination.OldYin:
		marker = " x"
	}

	if r.plain {
		return symbol + marker
	}

	style := r.young
	if yao.Mutable {
		style = r.old
	}
	return style.Render(symbol) + marker
}

// Hexagram renders a full hexagram top to bottom (position 6 first) with a
// header naming it.
func (r *Renderer) Hexagram(h *divination.Hexagram, entry oracle.Entry) string {
	var b strings.Builder

	header := fmt.Sprintf("%c %d · %s — %s", entry.Symbol(), entry.Number, entry.Name, entry.Title)
	if r.plain {
		b.WriteString(header)
	} else {
		b.WriteString(r.header.Render(header))
	}
	b.WriteString("\n")

	yaos := h.Yaos()
	for i := divination.LineCount - 1; i >= 0; i-- {
		b.WriteString(r.Yao(yaos[i]))
		b.WriteString("\n")
	}

	return b.String()
}

// Interpretation renders a corpus entry. Colored mode goes through
// glamour; plain mode returns the raw markdown.
func (r *Renderer) Interpretation(entry oracle.Entry) string {
	markdown := entry.Markdown()
	if r.plain {
		return markdown
	}

	gr, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return markdown
	}

	out, err := gr.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
