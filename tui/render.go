package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/ionut-t/vio/core"
)

// screenRenderer collects the text-area rows of one frame. The caret is drawn
// by styling the cluster under it, so the terminal cursor stays free for the
// command bar's own input.
type screenRenderer struct {
	theme    Theme
	rows     []string
	caret    core.Position
	hasCaret bool
}

func newScreenRenderer(theme Theme, height int, caret core.Position, hasCaret bool) *screenRenderer {
	return &screenRenderer{
		theme:    theme,
		rows:     make([]string, max(height, 0)),
		caret:    caret,
		hasCaret: hasCaret,
	}
}

func (r *screenRenderer) PrintRow(row int, text string) error {
	if row < 0 || row >= len(r.rows) {
		return nil
	}
	if r.hasCaret && r.caret.Row == row {
		r.rows[row] = r.styleRow(core.NewAnnotatedString(text), r.caret.Col)
		return nil
	}
	r.rows[row] = text
	return nil
}

func (r *screenRenderer) PrintAnnotatedRow(row int, s core.AnnotatedString) error {
	if row < 0 || row >= len(r.rows) {
		return nil
	}
	caretCol := -1
	if r.hasCaret && r.caret.Row == row {
		caretCol = r.caret.Col
	}
	r.rows[row] = r.styleRow(s, caretCol)
	return nil
}

// styleRow walks the text cluster by cluster, grouping runs that share a
// style so clusters are never split mid-sequence. caretCol is a display
// column, negative when the caret is not on this row.
func (r *screenRenderer) styleRow(s core.AnnotatedString, caretCol int) string {
	var out strings.Builder
	var run strings.Builder
	var runStyle *annotationStyle

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runStyle != nil {
			out.WriteString(runStyle.style.Render(run.String()))
		} else {
			out.WriteString(run.String())
		}
		run.Reset()
	}

	col := 0
	byteIdx := 0
	rest := s.Text
	state := -1
	for len(rest) > 0 {
		cluster, tail, _, newState := uniseg.StepString(rest, state)
		style := r.styleAt(s, byteIdx)
		if caretCol >= 0 && col == caretCol {
			style = &annotationStyle{caret: true, style: r.theme.CaretStyle}
		}
		if !sameStyle(style, runStyle) {
			flush()
			runStyle = style
		}
		run.WriteString(cluster)

		col += runewidth.StringWidth(cluster)
		byteIdx += len(cluster)
		rest = tail
		state = newState
	}
	flush()

	// Caret past the end of the row content: pad up to it and style a blank
	// cell.
	if caretCol >= 0 && caretCol >= col {
		out.WriteString(strings.Repeat(" ", caretCol-col))
		out.WriteString(r.theme.CaretStyle.Render(" "))
	}

	return out.String()
}

type annotationStyle struct {
	kind  core.AnnotationType
	caret bool
	style lipgloss.Style
}

func sameStyle(a, b *annotationStyle) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.kind == b.kind && a.caret == b.caret
}

// styleAt resolves the annotation covering the given byte offset. Later
// annotations win, matching the order they were applied.
func (r *screenRenderer) styleAt(s core.AnnotatedString, byteIdx int) *annotationStyle {
	var found *core.Annotation
	for i := range s.Annotations {
		a := &s.Annotations[i]
		if a.StartByteIdx <= byteIdx && byteIdx < a.EndByteIdx {
			found = a
		}
	}
	if found == nil {
		return nil
	}
	switch found.Type {
	case core.AnnotationSelectedMatch:
		return &annotationStyle{kind: found.Type, style: r.theme.SelectedMatchStyle}
	default:
		return &annotationStyle{kind: found.Type, style: r.theme.MatchStyle}
	}
}
