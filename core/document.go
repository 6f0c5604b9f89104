package core

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"
)

// Document is an ordered sequence of Lines with dirty tracking and an
// optional backing file. A document may hold zero lines; rendering treats
// that as a single empty line, and edits addressed to the line one past the
// end append a fresh line.
type Document struct {
	lines    []Line
	dirty    bool
	fileInfo FileInfo
}

func NewDocument() *Document {
	return &Document{}
}

// NewDocumentFromBytes builds an unsaved document from raw content.
func NewDocumentFromBytes(content []byte) *Document {
	return &Document{lines: splitLines(string(content))}
}

// splitLines splits content on line terminators. The terminator is not
// retained as line content and a trailing terminator does not produce an
// extra empty line.
func splitLines(content string) []Line {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	parts := strings.Split(content, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = NewLine(p)
	}
	return lines
}

func (d *Document) Height() int {
	return len(d.lines)
}

// IsEmpty reports whether there is nothing to show: no lines at all, or a
// single empty line with no file loaded.
func (d *Document) IsEmpty() bool {
	if len(d.lines) == 0 {
		return true
	}
	return len(d.lines) == 1 && d.lines[0].GraphemeCount() == 0 && !d.fileInfo.HasPath()
}

func (d *Document) IsDirty() bool {
	return d.dirty
}

func (d *Document) IsFileLoaded() bool {
	return d.fileInfo.HasPath()
}

func (d *Document) FileInfo() FileInfo {
	return d.fileInfo
}

// Line returns the line at idx, or nil when out of range.
func (d *Document) Line(idx int) *Line {
	if idx < 0 || idx >= len(d.lines) {
		return nil
	}
	return &d.lines[idx]
}

// Load replaces the document with the contents of path, clears the dirty
// flag and records the file identity. On failure the document is left
// unchanged.
func (d *Document) Load(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return fmt.Errorf("load %s: %w", path, ErrInvalidEncoding)
	}
	d.lines = splitLines(string(content))
	d.dirty = false
	d.fileInfo = FileInfo{path: path}
	return nil
}

// Save writes the document to its backing file. It fails with ErrNoFileName
// when no destination is known.
func (d *Document) Save() error {
	if !d.fileInfo.HasPath() {
		return ErrNoFileName
	}
	return d.saveTo(d.fileInfo.path)
}

// SaveAs writes the document to path and adopts it as the file identity.
func (d *Document) SaveAs(path string) error {
	if err := d.saveTo(path); err != nil {
		return err
	}
	d.fileInfo = FileInfo{path: path}
	return nil
}

func (d *Document) saveTo(path string) error {
	var b strings.Builder
	for i := range d.lines {
		b.WriteString(d.lines[i].String())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.dirty = false
	return nil
}

// InsertChar inserts r at the given location. Inserting at the line one past
// the end appends a new line; locations further out are a no-op.
func (d *Document) InsertChar(r rune, at Location) {
	if at.LineIdx > len(d.lines) {
		return
	}
	if at.LineIdx == len(d.lines) {
		d.lines = append(d.lines, NewLine(string(r)))
	} else {
		d.lines[at.LineIdx].InsertRune(at.GraphemeIdx, r)
	}
	d.dirty = true
}

// InsertNewline splits the targeted line in two at the given grapheme index,
// keeping every other line in order.
func (d *Document) InsertNewline(at Location) {
	if at.LineIdx > len(d.lines) {
		return
	}
	if at.LineIdx == len(d.lines) {
		d.lines = append(d.lines, NewLine(""))
		d.dirty = true
		return
	}
	remainder := d.lines[at.LineIdx].SplitOff(at.GraphemeIdx)
	d.lines = slices.Insert(d.lines, at.LineIdx+1, remainder)
	d.dirty = true
}

// Delete removes the cluster at the given location. At or past the end of a
// line it joins the following line onto the current one instead. Deleting at
// the true end of the document is a no-op.
func (d *Document) Delete(at Location) {
	line := d.Line(at.LineIdx)
	if line == nil {
		return
	}
	if at.GraphemeIdx >= line.GraphemeCount() {
		if at.LineIdx+1 >= len(d.lines) {
			return
		}
		next := d.lines[at.LineIdx+1]
		line.Append(&next)
		d.lines = slices.Delete(d.lines, at.LineIdx+1, at.LineIdx+2)
		d.dirty = true
		return
	}
	line.Remove(at.GraphemeIdx)
	d.dirty = true
}
