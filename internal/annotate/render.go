package annotate

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrUnknownRenderer is returned by NewRenderer for an unregistered name
var ErrUnknownRenderer = errors.New("unsupported renderer")

// Renderer turns an annotated message into a displayable string
type Renderer interface {
	Render(m Message) string
}

// Renderer names accepted by NewRenderer
const (
	RendererTerminal = "terminal"
	RendererPlain    = "plain"
	RendererHTML     = "html"
)

// NewRenderer returns the renderer registered under name
func NewRenderer(name string) (Renderer, error) {
	switch strings.ToLower(name) {
	case RendererTerminal, "":
		return NewTerminalRenderer(), nil
	case RendererPlain:
		return PlainRenderer{}, nil
	case RendererHTML:
		return HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRenderer, name)
	}
}

// TerminalRenderer highlights tagged words with terminal colours
type TerminalRenderer struct {
	Spam lipgloss.Style
	Ham  lipgloss.Style
}

// NewTerminalRenderer returns a TerminalRenderer with red spam and green ham highlights
func NewTerminalRenderer() TerminalRenderer {
	return TerminalRenderer{
		Spam: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626")),
		Ham:  lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")),
	}
}

// Render implements Renderer
func (r TerminalRenderer) Render(m Message) string {
	var b strings.Builder
	for _, s := range m.Segments {
		switch s.Tag {
		case TagSpam:
			b.WriteString(r.Spam.Render(s.Text))
		case TagHam:
			b.WriteString(r.Ham.Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// PlainRenderer marks spam words as [[word]] and ham words as ((word))
type PlainRenderer struct{}

// Render implements Renderer
func (PlainRenderer) Render(m Message) string {
	var b strings.Builder
	for _, s := range m.Segments {
		switch s.Tag {
		case TagSpam:
			b.WriteString("[[" + s.Text + "]]")
		case TagHam:
			b.WriteString("((" + s.Text + "))")
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// HTMLRenderer escapes the message and wraps tagged words in <mark> elements
type HTMLRenderer struct{}

// Render implements Renderer
func (HTMLRenderer) Render(m Message) string {
	var b strings.Builder
	for _, s := range m.Segments {
		text := html.EscapeString(s.Text)
		switch s.Tag {
		case TagSpam:
			b.WriteString(`<mark class="spam">` + text + `</mark>`)
		case TagHam:
			b.WriteString(`<mark class="ham">` + text + `</mark>`)
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}
