package core

// SearchForward finds the first occurrence of query at or after from,
// scanning in increasing (line, byte) order and wrapping to the document
// start. It reports false only when query occurs nowhere; an empty query
// never matches. Callers advance past a current match themselves to
// implement "next".
func (d *Document) SearchForward(query string, from Location) (Location, bool) {
	if query == "" || len(d.lines) == 0 {
		return Location{}, false
	}
	height := len(d.lines)
	// One extra pass so the portion of the starting line before `from` is
	// re-scanned after wrapping.
	for i := 0; i <= height; i++ {
		lineIdx := (from.LineIdx + i) % height
		fromGrapheme := 0
		if i == 0 {
			fromGrapheme = from.GraphemeIdx
		}
		if idx, ok := d.lines[lineIdx].SearchForward(query, fromGrapheme); ok {
			return Location{LineIdx: lineIdx, GraphemeIdx: idx}, true
		}
	}
	return Location{}, false
}

// SearchBackward finds the last occurrence of query contained entirely
// before from, scanning in decreasing order and wrapping to the document
// end.
func (d *Document) SearchBackward(query string, from Location) (Location, bool) {
	if query == "" || len(d.lines) == 0 {
		return Location{}, false
	}
	height := len(d.lines)
	for i := 0; i <= height; i++ {
		lineIdx := ((from.LineIdx-i)%height + height) % height
		line := &d.lines[lineIdx]
		fromGrapheme := line.GraphemeCount()
		if i == 0 {
			fromGrapheme = from.GraphemeIdx
		}
		if idx, ok := line.SearchBackward(query, fromGrapheme); ok {
			return Location{LineIdx: lineIdx, GraphemeIdx: idx}, true
		}
	}
	return Location{}, false
}
