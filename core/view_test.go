package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeRenderer records every printed row for inspection.
type fakeRenderer struct {
	rows      map[int]string
	annotated map[int]AnnotatedString
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		rows:      map[int]string{},
		annotated: map[int]AnnotatedString{},
	}
}

func (r *fakeRenderer) PrintRow(row int, text string) error {
	r.rows[row] = text
	return nil
}

func (r *fakeRenderer) PrintAnnotatedRow(row int, s AnnotatedString) error {
	r.rows[row] = s.Text
	r.annotated[row] = s
	return nil
}

func newTestView(content string, width, height int) *View {
	v := NewViewFromBytes([]byte(content))
	v.Resize(Size{Width: width, Height: height})
	return v
}

func TestViewMoveRightThenDelete(t *testing.T) {
	v := newTestView("hello world", 80, 24)
	for i := 0; i < 4; i++ {
		v.MoveRight()
	}
	assert.Equal(t, Location{LineIdx: 0, GraphemeIdx: 4}, v.TextLocation())

	v.Delete()
	assert.Equal(t, "hell world", v.CurrentLine())
	assert.Equal(t, Location{LineIdx: 0, GraphemeIdx: 4}, v.TextLocation())
}

func TestViewMovement(t *testing.T) {
	t.Run("right wraps to next line", func(t *testing.T) {
		v := newTestView("ab\ncd", 80, 24)
		v.MoveToEndOfLine()
		v.MoveRight()
		assert.Equal(t, Location{LineIdx: 1, GraphemeIdx: 0}, v.TextLocation())
	})

	t.Run("left wraps to previous line end", func(t *testing.T) {
		v := newTestView("ab\ncd", 80, 24)
		v.MoveDown(1)
		v.MoveLeft()
		assert.Equal(t, Location{LineIdx: 0, GraphemeIdx: 2}, v.TextLocation())
	})

	t.Run("left at document start stays put", func(t *testing.T) {
		v := newTestView("ab", 80, 24)
		v.MoveLeft()
		assert.Equal(t, Location{}, v.TextLocation())
	})

	t.Run("down snaps to shorter line", func(t *testing.T) {
		v := newTestView("a long line\nab", 80, 24)
		v.MoveToEndOfLine()
		v.MoveDown(1)
		assert.Equal(t, Location{LineIdx: 1, GraphemeIdx: 2}, v.TextLocation())
	})

	t.Run("down is clamped to one past the last line", func(t *testing.T) {
		v := newTestView("one\ntwo", 80, 24)
		v.MoveDown(99)
		assert.Equal(t, Location{LineIdx: 2, GraphemeIdx: 0}, v.TextLocation())
	})

	t.Run("up is clamped to the first line", func(t *testing.T) {
		v := newTestView("one\ntwo", 80, 24)
		v.MoveUp(99)
		assert.Equal(t, Location{}, v.TextLocation())
	})

	t.Run("page down steps a window minus one", func(t *testing.T) {
		v := newTestView(strings.Repeat("x\n", 50), 80, 10)
		v.PageDown()
		assert.Equal(t, 9, v.TextLocation().LineIdx)
		v.PageUp()
		assert.Equal(t, 0, v.TextLocation().LineIdx)
	})
}

func TestViewEditing(t *testing.T) {
	t.Run("insert advances the cursor", func(t *testing.T) {
		v := newTestView("", 80, 24)
		for _, r := range "hi" {
			v.InsertChar(r)
		}
		assert.Equal(t, "hi", v.CurrentLine())
		assert.Equal(t, Location{LineIdx: 0, GraphemeIdx: 2}, v.TextLocation())
	})

	t.Run("combining mark merges without advancing", func(t *testing.T) {
		v := newTestView("", 80, 24)
		v.InsertChar('e')
		v.InsertChar('\u0301')
		assert.Equal(t, "e\u0301", v.CurrentLine())
		assert.Equal(t, Location{LineIdx: 0, GraphemeIdx: 1}, v.TextLocation())
	})

	t.Run("newline moves to next line start", func(t *testing.T) {
		v := newTestView("hello world", 80, 24)
		for i := 0; i < 5; i++ {
			v.MoveRight()
		}
		v.InsertNewline()
		assert.Equal(t, Location{LineIdx: 1, GraphemeIdx: 0}, v.TextLocation())
		assert.Equal(t, " world", v.CurrentLine())
	})

	t.Run("backward delete joins lines", func(t *testing.T) {
		v := newTestView("hello\n world", 80, 24)
		v.MoveDown(1)
		v.DeleteBackward()
		assert.Equal(t, "hello world", v.CurrentLine())
		assert.Equal(t, Location{LineIdx: 0, GraphemeIdx: 5}, v.TextLocation())
	})

	t.Run("backward delete at document start is a no-op", func(t *testing.T) {
		v := newTestView("abc", 80, 24)
		v.DeleteBackward()
		assert.Equal(t, "abc", v.CurrentLine())
	})
}

func TestViewScrolling(t *testing.T) {
	t.Run("cursor below window scrolls down minimally", func(t *testing.T) {
		v := newTestView(strings.Repeat("x\n", 50), 80, 10)
		v.MoveDown(15)
		assert.Equal(t, 6, v.ScrollOffset().Row)
		assert.Equal(t, Position{Row: 9, Col: 0}, v.CaretPosition())
	})

	t.Run("cursor above window scrolls up to it", func(t *testing.T) {
		v := newTestView(strings.Repeat("x\n", 50), 80, 10)
		v.MoveDown(30)
		v.MoveUp(25)
		assert.Equal(t, 5, v.ScrollOffset().Row)
		assert.Equal(t, Position{Row: 0, Col: 0}, v.CaretPosition())
	})

	t.Run("horizontal scroll follows the cursor", func(t *testing.T) {
		v := newTestView(strings.Repeat("a", 40), 10, 5)
		v.MoveToEndOfLine()
		assert.Equal(t, 31, v.ScrollOffset().Col)
		assert.Equal(t, Position{Row: 0, Col: 9}, v.CaretPosition())
	})

	t.Run("resize pulls the cursor back into view", func(t *testing.T) {
		v := newTestView(strings.Repeat("x\n", 50), 80, 20)
		v.MoveDown(18)
		v.Resize(Size{Width: 80, Height: 5})
		pos := v.CaretPosition()
		assert.GreaterOrEqual(t, pos.Row, 0)
		assert.Less(t, pos.Row, 5)
	})
}

func TestViewCaretStaysInsideWindow(t *testing.T) {
	content := "short\n" + strings.Repeat("a long line of text 世界\n", 30)

	rapid.Check(t, func(t *rapid.T) {
		v := newTestView(content, 12, 6)
		moves := rapid.SliceOfN(rapid.IntRange(0, 5), 1, 40).Draw(t, "moves")
		for _, m := range moves {
			switch m {
			case 0:
				v.MoveUp(1)
			case 1:
				v.MoveDown(1)
			case 2:
				v.MoveLeft()
			case 3:
				v.MoveRight()
			case 4:
				v.MoveToEndOfLine()
			case 5:
				v.PageDown()
			}
			v.ScrollIntoView()
			pos := v.CaretPosition()
			require.GreaterOrEqual(t, pos.Row, 0)
			require.Less(t, pos.Row, 6)
			require.GreaterOrEqual(t, pos.Col, 0)
			require.Less(t, pos.Col, 12)
		}
	})
}

func TestViewSearch(t *testing.T) {
	content := "first line\nsecond line\nno match here\nline three"

	t.Run("incremental query relocates to nearest match", func(t *testing.T) {
		v := newTestView(content, 80, 24)
		v.EnterSearch()
		v.Search("line")
		assert.Equal(t, Location{LineIdx: 0, GraphemeIdx: 6}, v.TextLocation())
	})

	t.Run("next walks matches and wraps", func(t *testing.T) {
		v := newTestView(content, 80, 24)
		v.EnterSearch()
		v.Search("line")

		v.SearchNext()
		assert.Equal(t, Location{LineIdx: 1, GraphemeIdx: 7}, v.TextLocation())
		v.SearchNext()
		assert.Equal(t, Location{LineIdx: 3, GraphemeIdx: 0}, v.TextLocation())
		v.SearchNext()
		assert.Equal(t, Location{LineIdx: 0, GraphemeIdx: 6}, v.TextLocation())
	})

	t.Run("prev walks backward", func(t *testing.T) {
		v := newTestView(content, 80, 24)
		v.EnterSearch()
		v.Search("line")
		v.SearchNext()
		v.SearchPrev()
		assert.Equal(t, Location{LineIdx: 0, GraphemeIdx: 6}, v.TextLocation())
	})

	t.Run("dismiss restores location and scroll", func(t *testing.T) {
		v := newTestView(strings.Repeat("x\n", 40)+"needle", 80, 10)
		v.MoveDown(3)
		before, beforeScroll := v.TextLocation(), v.ScrollOffset()

		v.EnterSearch()
		v.Search("needle")
		require.NotEqual(t, before, v.TextLocation())

		v.DismissSearch()
		assert.Equal(t, before, v.TextLocation())
		assert.Equal(t, beforeScroll, v.ScrollOffset())
		assert.False(t, v.IsSearching())
	})

	t.Run("exit keeps the match location", func(t *testing.T) {
		v := newTestView(content, 80, 24)
		v.EnterSearch()
		v.Search("three")
		loc := v.TextLocation()

		v.ExitSearch()
		assert.Equal(t, loc, v.TextLocation())
		assert.False(t, v.IsSearching())
	})

	t.Run("no match leaves the cursor alone", func(t *testing.T) {
		v := newTestView(content, 80, 24)
		v.MoveDown(1)
		loc := v.TextLocation()
		v.EnterSearch()
		v.Search("absent")
		assert.Equal(t, loc, v.TextLocation())
	})

	t.Run("match is centered in the window", func(t *testing.T) {
		v := newTestView(strings.Repeat("x\n", 40)+"needle\n"+strings.Repeat("x\n", 40), 80, 10)
		v.EnterSearch()
		v.Search("needle")
		assert.Equal(t, Position{Row: 5, Col: 0}, v.CaretPosition())
	})

	t.Run("resize while searching keeps the caret visible", func(t *testing.T) {
		v := newTestView(strings.Repeat("x\n", 40)+"needle", 80, 20)
		v.EnterSearch()
		v.Search("needle")
		v.Resize(Size{Width: 40, Height: 6})
		pos := v.CaretPosition()
		require.Less(t, pos.Row, 6)

		v.DismissSearch()
		pos = v.CaretPosition()
		assert.Less(t, pos.Row, 6)
	})
}

func TestViewDraw(t *testing.T) {
	t.Run("document lines then tildes", func(t *testing.T) {
		v := newTestView("one\ntwo", 80, 5)
		r := newFakeRenderer()
		require.NoError(t, v.Draw(r, 0))

		assert.Equal(t, "one", r.rows[0])
		assert.Equal(t, "two", r.rows[1])
		assert.Equal(t, "~", r.rows[2])
		assert.Equal(t, "~", r.rows[3])
		assert.Equal(t, "~", r.rows[4])
		assert.False(t, v.NeedsRedraw())
	})

	t.Run("welcome message on empty document", func(t *testing.T) {
		v := NewView()
		v.Resize(Size{Width: 60, Height: 9})
		r := newFakeRenderer()
		require.NoError(t, v.Draw(r, 0))

		welcome := r.rows[3]
		assert.True(t, strings.HasPrefix(welcome, "~"))
		assert.Contains(t, welcome, "vio editor -- version "+Version)
		for row := 0; row < 9; row++ {
			if row != 3 {
				assert.Equal(t, "~", r.rows[row])
			}
		}
	})

	t.Run("welcome collapses to tilde on narrow window", func(t *testing.T) {
		v := NewView()
		v.Resize(Size{Width: 5, Height: 9})
		r := newFakeRenderer()
		require.NoError(t, v.Draw(r, 0))
		assert.Equal(t, "~", r.rows[3])
	})

	t.Run("respects the scroll offset and origin row", func(t *testing.T) {
		v := newTestView("l0\nl1\nl2\nl3\nl4\nl5", 80, 3)
		v.MoveDown(4)
		r := newFakeRenderer()
		require.NoError(t, v.Draw(r, 2))

		assert.Equal(t, "l2", r.rows[2])
		assert.Equal(t, "l3", r.rows[3])
		assert.Equal(t, "l4", r.rows[4])
	})

	t.Run("selected match only on the cursor line", func(t *testing.T) {
		v := newTestView("match here\nmatch there", 80, 4)
		v.EnterSearch()
		v.Search("match")
		r := newFakeRenderer()
		require.NoError(t, v.Draw(r, 0))

		first := r.annotated[0]
		require.Len(t, first.Annotations, 1)
		assert.Equal(t, AnnotationSelectedMatch, first.Annotations[0].Type)

		second := r.annotated[1]
		require.Len(t, second.Annotations, 1)
		assert.Equal(t, AnnotationMatch, second.Annotations[0].Type)
	})

	t.Run("no annotations once search ends", func(t *testing.T) {
		v := newTestView("match here", 80, 2)
		v.EnterSearch()
		v.Search("match")
		v.ExitSearch()
		r := newFakeRenderer()
		require.NoError(t, v.Draw(r, 0))
		assert.Empty(t, r.annotated[0].Annotations)
	})
}

func TestBuildWelcomeMessage(t *testing.T) {
	assert.Equal(t, "", buildWelcomeMessage(0))
	assert.Equal(t, "~", buildWelcomeMessage(10))

	msg := buildWelcomeMessage(60)
	assert.True(t, strings.HasPrefix(msg, "~"))
	assert.LessOrEqual(t, len(msg), 60)
	assert.Contains(t, msg, "vio editor")
}
