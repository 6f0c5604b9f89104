package core

import "fmt"

// DocumentStatus is a read-only snapshot of the document for the status bar.
// It is recomputed on demand, never pushed.
type DocumentStatus struct {
	TotalLines     int
	CurrentLineIdx int
	FileName       string
	IsModified     bool
}

func (s DocumentStatus) ModifiedIndicator() string {
	if s.IsModified {
		return "(modified)"
	}
	return ""
}

func (s DocumentStatus) LineCountText() string {
	return fmt.Sprintf("%d lines", s.TotalLines)
}

// PositionIndicator shows the 1-based cursor line over the line total.
func (s DocumentStatus) PositionIndicator() string {
	return fmt.Sprintf("%d/%d", s.CurrentLineIdx+1, s.TotalLines)
}
