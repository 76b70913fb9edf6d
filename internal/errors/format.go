package errors

import (
	"encoding/json"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// detailWidth is the column Format wraps the detail paragraph at.
const detailWidth = 70

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	codeStyle  = lipgloss.NewStyle().Bold(true)
	causeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

var plain atomic.Bool

// DisableColors makes Format emit unstyled text.
func DisableColors() { plain.Store(true) }

// EnableColors restores styled output.
func EnableColors() { plain.Store(false) }

func paint(s lipgloss.Style, text string) string {
	if plain.Load() {
		return text
	}
	return s.Render(text)
}

// Format renders a multi-line report for the terminal:
//
//	ERROR T003: Marker is not a child of the parent
//
//	  marker 4v2 belongs to parent 1v1
//
//	  Hint: Pass the zero NodeKey to append, or a current child of the parent.
func (e *Error) Format() string {
	title := paint(titleStyle, "ERROR: ")
	if e.Code != "" {
		title = paint(titleStyle, "ERROR ") + paint(codeStyle, e.Code+": ")
	}
	sections := []string{title + e.Message}
	if e.Detail != "" {
		sections = append(sections, indent(wrapText(e.Detail, detailWidth)...))
	}
	if e.Wrapped != nil {
		sections = append(sections, indent(paint(causeStyle, "Cause: "+e.Wrapped.Error())))
	}
	if e.Suggestion != "" {
		sections = append(sections, indent(paint(hintStyle, "Hint: ")+e.Suggestion))
	}
	return "\n" + strings.Join(sections, "\n\n") + "\n"
}

func indent(lines ...string) string {
	return "  " + strings.Join(lines, "\n  ")
}

// FormatCompact renders the error on one line: "CODE: message - detail".
func (e *Error) FormatCompact() string {
	s := e.Message
	if e.Code != "" {
		s = e.Code + ": " + s
	}
	if e.Detail != "" {
		s += " - " + e.Detail
	}
	return s
}

// MarshalJSON encodes the error for machine consumers such as devtools.
func (e *Error) MarshalJSON() ([]byte, error) {
	r := struct {
		Code       string   `json:"code,omitempty"`
		Category   Category `json:"category"`
		Message    string   `json:"message"`
		Detail     string   `json:"detail,omitempty"`
		Suggestion string   `json:"suggestion,omitempty"`
		Cause      string   `json:"cause,omitempty"`
	}{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		r.Cause = e.Wrapped.Error()
	}
	return json.Marshal(r)
}

// wrapText breaks text into lines of at most width display columns. A
// single word wider than width gets a line of its own.
func wrapText(text string, width int) []string {
	var (
		lines []string
		line  strings.Builder
		cols  int
	)
	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if cols > 0 && cols+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			cols = 0
		}
		if cols > 0 {
			line.WriteByte(' ')
			cols++
		}
		line.WriteString(word)
		cols += w
	}
	if cols > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
