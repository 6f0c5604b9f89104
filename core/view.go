package core

import (
	"fmt"
	"strings"
)

const (
	Name    = "vio"
	Version = "0.1.0"
)

type searchDirection int

const (
	searchForward searchDirection = iota
	searchBackward
)

// searchSession holds an in-progress search: the query typed so far and the
// location/scroll snapshot restored on dismissal.
type searchSession struct {
	prevLocation Location
	prevScroll   Position
	query        string
}

// View owns the current text location, scroll offset and visible size, and
// drives rendering of the visible window of a Document. All index arithmetic
// clamps; malformed navigation requests never panic.
type View struct {
	doc          *Document
	size         Size
	textLocation Location
	scrollOffset Position
	search       *searchSession
	needsRedraw  bool
}

func NewView() *View {
	return &View{doc: NewDocument(), needsRedraw: true}
}

// NewViewFromBytes seeds the view with unsaved content.
func NewViewFromBytes(content []byte) *View {
	return &View{doc: NewDocumentFromBytes(content), needsRedraw: true}
}

func (v *View) Document() *Document {
	return v.doc
}

func (v *View) Status() DocumentStatus {
	return DocumentStatus{
		TotalLines:     v.doc.Height(),
		CurrentLineIdx: v.textLocation.LineIdx,
		FileName:       v.doc.FileInfo().DisplayName(),
		IsModified:     v.doc.IsDirty(),
	}
}

func (v *View) IsFileLoaded() bool {
	return v.doc.IsFileLoaded()
}

func (v *View) NeedsRedraw() bool {
	return v.needsRedraw
}

func (v *View) SetNeedsRedraw(value bool) {
	v.needsRedraw = value
}

func (v *View) Size() Size {
	return v.size
}

func (v *View) TextLocation() Location {
	return v.textLocation
}

func (v *View) ScrollOffset() Position {
	return v.scrollOffset
}

// Resize sets the visible size and keeps the cursor inside the window.
func (v *View) Resize(size Size) {
	v.size = size
	v.ScrollIntoView()
	v.needsRedraw = true
}

// CurrentLine returns the content of the cursor's line, or "" on the phantom
// line past the end of the document.
func (v *View) CurrentLine() string {
	if line := v.doc.Line(v.textLocation.LineIdx); line != nil {
		return line.String()
	}
	return ""
}

// --- file operations ---

func (v *View) Load(path string) error {
	if err := v.doc.Load(path); err != nil {
		return err
	}
	v.textLocation = Location{}
	v.scrollOffset = Position{}
	v.needsRedraw = true
	return nil
}

func (v *View) Save() error {
	return v.doc.Save()
}

func (v *View) SaveAs(path string) error {
	return v.doc.SaveAs(path)
}

// --- editing ---

// InsertChar inserts at the cursor and advances it by one grapheme when the
// insertion actually grew the line (a combining mark can merge into the
// preceding cluster and leave the count unchanged).
func (v *View) InsertChar(r rune) {
	oldLen, newLen := 0, 0
	if line := v.doc.Line(v.textLocation.LineIdx); line != nil {
		oldLen = line.GraphemeCount()
	}
	v.doc.InsertChar(r, v.textLocation)
	if line := v.doc.Line(v.textLocation.LineIdx); line != nil {
		newLen = line.GraphemeCount()
	}
	if newLen > oldLen {
		v.MoveRight()
	}
	v.needsRedraw = true
}

func (v *View) InsertNewline() {
	v.doc.InsertNewline(v.textLocation)
	v.MoveRight()
	v.needsRedraw = true
}

func (v *View) Delete() {
	v.doc.Delete(v.textLocation)
	v.needsRedraw = true
}

// DeleteBackward deletes the cluster before the cursor, joining onto the
// previous line at a line start. No-op at the very start of the document.
func (v *View) DeleteBackward() {
	if v.textLocation.LineIdx != 0 || v.textLocation.GraphemeIdx != 0 {
		v.MoveLeft()
		v.Delete()
	}
}

// --- movement ---

// Every public movement op delegates to an internal helper and then pulls the
// cursor back into the visible window in one step.

func (v *View) MoveUp(step int) {
	v.moveUp(step)
	v.ScrollIntoView()
}

func (v *View) MoveDown(step int) {
	v.moveDown(step)
	v.ScrollIntoView()
}

func (v *View) MoveRight() {
	v.moveRight()
	v.ScrollIntoView()
}

func (v *View) MoveLeft() {
	v.moveLeft()
	v.ScrollIntoView()
}

func (v *View) MoveToStartOfLine() {
	v.textLocation.GraphemeIdx = 0
	v.ScrollIntoView()
}

func (v *View) MoveToEndOfLine() {
	v.moveToEndOfLine()
	v.ScrollIntoView()
}

func (v *View) PageUp() {
	v.moveUp(max(v.size.Height-1, 1))
	v.ScrollIntoView()
}

func (v *View) PageDown() {
	v.moveDown(max(v.size.Height-1, 1))
	v.ScrollIntoView()
}

func (v *View) moveUp(step int) {
	v.textLocation.LineIdx = max(v.textLocation.LineIdx-step, 0)
	v.snapToValidGrapheme()
}

func (v *View) moveDown(step int) {
	v.textLocation.LineIdx += step
	v.snapToValidGrapheme()
	v.snapToValidLine()
}

func (v *View) moveRight() {
	count := 0
	if line := v.doc.Line(v.textLocation.LineIdx); line != nil {
		count = line.GraphemeCount()
	}
	if v.textLocation.GraphemeIdx < count {
		v.textLocation.GraphemeIdx++
	} else {
		v.textLocation.GraphemeIdx = 0
		v.moveDown(1)
	}
}

func (v *View) moveLeft() {
	if v.textLocation.GraphemeIdx > 0 {
		v.textLocation.GraphemeIdx--
	} else if v.textLocation.LineIdx > 0 {
		v.moveUp(1)
		v.moveToEndOfLine()
	}
}

func (v *View) moveToEndOfLine() {
	if line := v.doc.Line(v.textLocation.LineIdx); line != nil {
		v.textLocation.GraphemeIdx = line.GraphemeCount()
	} else {
		v.textLocation.GraphemeIdx = 0
	}
}

func (v *View) snapToValidGrapheme() {
	if line := v.doc.Line(v.textLocation.LineIdx); line != nil {
		v.textLocation.GraphemeIdx = min(v.textLocation.GraphemeIdx, line.GraphemeCount())
	} else {
		v.textLocation.GraphemeIdx = 0
	}
}

func (v *View) snapToValidLine() {
	v.textLocation.LineIdx = min(v.textLocation.LineIdx, v.doc.Height())
}

// --- scrolling ---

func (v *View) scrollVertically(to int) {
	if v.size.Height <= 0 {
		return
	}
	if to < v.scrollOffset.Row {
		v.scrollOffset.Row = to
		v.needsRedraw = true
	} else if to >= v.scrollOffset.Row+v.size.Height {
		v.scrollOffset.Row = to - v.size.Height + 1
		v.needsRedraw = true
	}
}

func (v *View) scrollHorizontally(to int) {
	if v.size.Width <= 0 {
		return
	}
	if to < v.scrollOffset.Col {
		v.scrollOffset.Col = to
		v.needsRedraw = true
	} else if to >= v.scrollOffset.Col+v.size.Width {
		v.scrollOffset.Col = to - v.size.Width + 1
		v.needsRedraw = true
	}
}

// ScrollIntoView adjusts the scroll offset just far enough that the cursor's
// display position re-enters the visible window.
func (v *View) ScrollIntoView() {
	pos := v.textLocationToPosition()
	v.scrollVertically(pos.Row)
	v.scrollHorizontally(pos.Col)
}

// Center places the cursor's display position at the window midpoint, so a
// search match stays visually stable while the query keeps being typed.
func (v *View) Center() {
	pos := v.textLocationToPosition()
	v.scrollOffset.Row = max(pos.Row-ceilDiv(v.size.Height, 2), 0)
	v.scrollOffset.Col = max(pos.Col-ceilDiv(v.size.Width, 2), 0)
	v.needsRedraw = true
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func (v *View) textLocationToPosition() Position {
	row := v.textLocation.LineIdx
	col := 0
	if line := v.doc.Line(row); line != nil {
		col = line.WidthUntil(v.textLocation.GraphemeIdx)
	}
	return Position{Row: row, Col: col}
}

// CaretPosition is the cursor's display position within the visible window:
// the text location's display position minus the scroll offset.
func (v *View) CaretPosition() Position {
	return v.textLocationToPosition().SaturatingSub(v.scrollOffset)
}

// --- search ---

// EnterSearch opens a search session, snapshotting the location and scroll
// offset for restoration on dismissal.
func (v *View) EnterSearch() {
	v.search = &searchSession{
		prevLocation: v.textLocation,
		prevScroll:   v.scrollOffset,
	}
}

// Search stores the query and looks forward from the current location, so
// incremental typing keeps relocating to the nearest match.
func (v *View) Search(query string) {
	if v.search == nil {
		return
	}
	v.search.query = query
	v.searchInDirection(v.textLocation, searchForward)
}

// SearchNext advances one grapheme past the current location before
// searching, so repeated calls walk occurrences and wrap at the end.
func (v *View) SearchNext() {
	if v.search == nil {
		return
	}
	step := 0
	if v.search.query != "" {
		step = 1
	}
	from := Location{
		LineIdx:     v.textLocation.LineIdx,
		GraphemeIdx: v.textLocation.GraphemeIdx + step,
	}
	v.searchInDirection(from, searchForward)
}

func (v *View) SearchPrev() {
	v.searchInDirection(v.textLocation, searchBackward)
}

func (v *View) searchInDirection(from Location, direction searchDirection) {
	if v.search == nil || v.search.query == "" {
		v.needsRedraw = true
		return
	}
	var location Location
	var found bool
	if direction == searchForward {
		location, found = v.doc.SearchForward(v.search.query, from)
	} else {
		location, found = v.doc.SearchBackward(v.search.query, from)
	}
	if found {
		v.textLocation = location
		v.Center()
	}
	v.needsRedraw = true
}

// ExitSearch confirms the search, keeping the current location as the new
// cursor position.
func (v *View) ExitSearch() {
	v.search = nil
	v.needsRedraw = true
}

// DismissSearch cancels the search, restoring the snapshotted location and
// scroll offset. The follow-up scroll-into-view tolerates a terminal resize
// that happened while searching.
func (v *View) DismissSearch() {
	if v.search != nil {
		v.textLocation = v.search.prevLocation
		v.scrollOffset = v.search.prevScroll
		v.ScrollIntoView()
	}
	v.search = nil
	v.needsRedraw = true
}

func (v *View) IsSearching() bool {
	return v.search != nil
}

func (v *View) searchQuery() string {
	if v.search == nil {
		return ""
	}
	return v.search.query
}

// --- rendering ---

func buildWelcomeMessage(width int) string {
	if width == 0 {
		return ""
	}
	message := fmt.Sprintf("%s editor -- version %s", Name, Version)
	remaining := width - 1
	if len(message) > remaining {
		return "~"
	}
	pad := (remaining - len(message)) / 2
	return "~" + strings.Repeat(" ", pad) + message
}

// Draw renders the visible window through r, one row at a time starting at
// originRow: annotated document lines, a tilde per row past the end, and a
// centered welcome message a third of the way down an empty document.
func (v *View) Draw(r Renderer, originRow int) error {
	topThird := ceilDiv(v.size.Height, 3)
	for current := originRow; current < originRow+v.size.Height; current++ {
		lineIdx := current - originRow + v.scrollOffset.Row
		line := v.doc.Line(lineIdx)
		switch {
		case line != nil:
			left := v.scrollOffset.Col
			right := left + v.size.Width
			query := v.searchQuery()
			selected := -1
			if query != "" && v.textLocation.LineIdx == lineIdx {
				selected = v.textLocation.GraphemeIdx
			}
			if err := r.PrintAnnotatedRow(current, line.AnnotatedVisibleSubstr(left, right, query, selected)); err != nil {
				return err
			}
		case current == originRow+topThird && v.doc.IsEmpty():
			if err := r.PrintRow(current, buildWelcomeMessage(v.size.Width)); err != nil {
				return err
			}
		default:
			if err := r.PrintRow(current, "~"); err != nil {
				return err
			}
		}
	}
	v.needsRedraw = false
	return nil
}
