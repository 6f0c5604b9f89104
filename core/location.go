package core

// Location addresses a spot in the document: a line index and a grapheme
// index within that line. The grapheme index may equal the line's grapheme
// count (the caret past the last cluster), and the line index may equal the
// document height (the caret on the phantom line past the last line).
type Location struct {
	LineIdx     int
	GraphemeIdx int
}

// Position is a spot on the display grid, measured in rows and display
// columns.
type Position struct {
	Row int
	Col int
}

// SaturatingSub subtracts other component-wise, clamping at zero.
func (p Position) SaturatingSub(other Position) Position {
	return Position{
		Row: max(p.Row-other.Row, 0),
		Col: max(p.Col-other.Col, 0),
	}
}

// Size is the width and height of a render target in terminal cells.
type Size struct {
	Width  int
	Height int
}
