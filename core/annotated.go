package core

// AnnotationType tags a highlighted byte range within a line.
type AnnotationType int

const (
	AnnotationMatch AnnotationType = iota
	AnnotationSelectedMatch
)

// Annotation marks the byte range [StartByteIdx, EndByteIdx) of the owning
// text.
type Annotation struct {
	Type         AnnotationType
	StartByteIdx int
	EndByteIdx   int
}

// AnnotatedString is a piece of text with overlaid highlight ranges. It is a
// transient value rebuilt on every render pass, never persisted.
type AnnotatedString struct {
	Text        string
	Annotations []Annotation
}

func NewAnnotatedString(text string) AnnotatedString {
	return AnnotatedString{Text: text}
}

func (s *AnnotatedString) Annotate(t AnnotationType, startByteIdx, endByteIdx int) {
	s.Annotations = append(s.Annotations, Annotation{
		Type:         t,
		StartByteIdx: startByteIdx,
		EndByteIdx:   endByteIdx,
	})
}

// TruncateLeftUntil removes everything before the given byte index and rebases
// the surviving annotations onto the shortened text. Ranges that end at or
// before the cut are dropped; ranges that straddle it are clamped.
func (s *AnnotatedString) TruncateLeftUntil(until int) {
	if until <= 0 {
		return
	}
	if until > len(s.Text) {
		until = len(s.Text)
	}
	s.Text = s.Text[until:]
	kept := s.Annotations[:0]
	for _, a := range s.Annotations {
		a.StartByteIdx -= until
		a.EndByteIdx -= until
		if a.EndByteIdx <= 0 {
			continue
		}
		if a.StartByteIdx < 0 {
			a.StartByteIdx = 0
		}
		kept = append(kept, a)
	}
	s.Annotations = kept
}

// TruncateRightFrom drops everything at and after the given byte index,
// clamping annotations that reach past it.
func (s *AnnotatedString) TruncateRightFrom(from int) {
	if from >= len(s.Text) {
		return
	}
	if from < 0 {
		from = 0
	}
	s.Text = s.Text[:from]
	kept := s.Annotations[:0]
	for _, a := range s.Annotations {
		if a.StartByteIdx >= from {
			continue
		}
		if a.EndByteIdx > from {
			a.EndByteIdx = from
		}
		kept = append(kept, a)
	}
	s.Annotations = kept
}

func (s AnnotatedString) IsEmpty() bool {
	return s.Text == ""
}
