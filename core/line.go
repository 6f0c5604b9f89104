package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// tabDisplayWidth is the fixed column width of a tab cluster. Tabs render as a
// single space so rendered bytes stay aligned with content bytes.
const tabDisplayWidth = 1

// fragment describes one grapheme cluster of a line: its text, the byte offset
// where it starts, and the display columns it occupies. Fragments are
// contiguous, non-overlapping, and cover the line content exactly once.
type fragment struct {
	cluster   string
	startByte int
	width     int
}

// Line is a single line of document text exposing grapheme-indexed,
// byte-indexed and column-indexed views over the same content. The fragment
// list is resegmented after every mutation.
type Line struct {
	text      string
	fragments []fragment
}

func NewLine(text string) Line {
	l := Line{text: text}
	l.rebuild()
	return l
}

func (l *Line) rebuild() {
	l.fragments = l.fragments[:0]
	rest := l.text
	state := -1
	offset := 0
	for len(rest) > 0 {
		cluster, tail, _, newState := uniseg.StepString(rest, state)
		l.fragments = append(l.fragments, fragment{
			cluster:   cluster,
			startByte: offset,
			width:     clusterWidth(cluster),
		})
		offset += len(cluster)
		rest = tail
		state = newState
	}
}

// clusterWidth is the display width policy: runewidth over the whole cluster,
// with tabs pinned to a fixed width.
func clusterWidth(cluster string) int {
	if cluster == "\t" {
		return tabDisplayWidth
	}
	return runewidth.StringWidth(cluster)
}

func (l *Line) String() string {
	return l.text
}

func (l *Line) GraphemeCount() int {
	return len(l.fragments)
}

// WidthUntil returns the total display width of the clusters [0, graphemeIdx).
// Indices beyond the end are clamped to the grapheme count.
func (l *Line) WidthUntil(graphemeIdx int) int {
	graphemeIdx = min(max(graphemeIdx, 0), len(l.fragments))
	width := 0
	for _, f := range l.fragments[:graphemeIdx] {
		width += f.width
	}
	return width
}

func (l *Line) Width() int {
	return l.WidthUntil(len(l.fragments))
}

// byteIdxOf returns the starting byte offset of the cluster at graphemeIdx,
// clamped to [0, len(text)].
func (l *Line) byteIdxOf(graphemeIdx int) int {
	if graphemeIdx <= 0 {
		return 0
	}
	if graphemeIdx >= len(l.fragments) {
		return len(l.text)
	}
	return l.fragments[graphemeIdx].startByte
}

// graphemeIdxOf maps a byte offset to the index of the cluster containing it.
func (l *Line) graphemeIdxOf(byteIdx int) int {
	for i, f := range l.fragments {
		if byteIdx < f.startByte+len(f.cluster) {
			return i
		}
	}
	return len(l.fragments)
}

// InsertRune inserts r at the byte offset of graphemeIdx; out-of-range indices
// insert at the end of the content.
func (l *Line) InsertRune(at int, r rune) {
	idx := l.byteIdxOf(at)
	l.text = l.text[:idx] + string(r) + l.text[idx:]
	l.rebuild()
}

// Remove deletes the whole cluster at the given grapheme index. No-op when the
// index is out of range.
func (l *Line) Remove(at int) {
	if at < 0 || at >= len(l.fragments) {
		return
	}
	f := l.fragments[at]
	l.text = l.text[:f.startByte] + l.text[f.startByte+len(f.cluster):]
	l.rebuild()
}

// SplitOff cuts the line at the given grapheme index and returns the
// remainder.
func (l *Line) SplitOff(at int) Line {
	idx := l.byteIdxOf(at)
	remainder := NewLine(l.text[idx:])
	l.text = l.text[:idx]
	l.rebuild()
	return remainder
}

// Append concatenates other onto the end of the line.
func (l *Line) Append(other *Line) {
	l.text += other.text
	l.rebuild()
}

// SearchForward finds the first occurrence of query at or after fromGrapheme,
// returning the index of the cluster containing the match start.
func (l *Line) SearchForward(query string, fromGrapheme int) (int, bool) {
	if query == "" {
		return 0, false
	}
	start := l.byteIdxOf(fromGrapheme)
	idx := strings.Index(l.text[start:], query)
	if idx < 0 {
		return 0, false
	}
	return l.graphemeIdxOf(start + idx), true
}

// SearchBackward finds the last occurrence of query contained entirely before
// the byte offset of fromGrapheme. Passing GraphemeCount() scans the whole
// line.
func (l *Line) SearchBackward(query string, fromGrapheme int) (int, bool) {
	if query == "" {
		return 0, false
	}
	end := l.byteIdxOf(fromGrapheme)
	idx := strings.LastIndex(l.text[:end], query)
	if idx < 0 {
		return 0, false
	}
	return l.graphemeIdxOf(idx), true
}

// AnnotatedVisibleSubstr renders the line for the display-column window
// [left, right): every non-overlapping occurrence of query becomes a Match
// annotation, the occurrence starting at the cluster selectedMatch (a grapheme
// index, negative for none) is re-tagged SelectedMatch, and the text is sliced
// at grapheme boundaries. A cluster straddling either window edge is wholly
// excluded, never partially rendered. Kept annotation ranges are rebased onto
// the sliced text, and tabs render as spaces.
func (l *Line) AnnotatedVisibleSubstr(left, right int, query string, selectedMatch int) AnnotatedString {
	if right <= left {
		return AnnotatedString{}
	}

	result := NewAnnotatedString(l.text)
	if query != "" {
		selectedByte := -1
		if selectedMatch >= 0 && selectedMatch < len(l.fragments) {
			selectedByte = l.fragments[selectedMatch].startByte
		}
		for from := 0; ; {
			idx := strings.Index(l.text[from:], query)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(query)
			typ := AnnotationMatch
			if start == selectedByte {
				typ = AnnotationSelectedMatch
			}
			result.Annotate(typ, start, end)
			from = end
		}
	}

	// Visible byte window: clusters whose columns lie fully inside
	// [left, right).
	startByte, endByte := -1, 0
	col := 0
	for _, f := range l.fragments {
		fragEnd := col + f.width
		if col >= left && fragEnd <= right {
			if startByte < 0 {
				startByte = f.startByte
			}
			endByte = f.startByte + len(f.cluster)
		}
		col = fragEnd
		if col >= right {
			break
		}
	}
	if startByte < 0 {
		return AnnotatedString{}
	}

	result.TruncateRightFrom(endByte)
	result.TruncateLeftUntil(startByte)
	result.Text = strings.ReplaceAll(result.Text, "\t", " ")
	return result
}
