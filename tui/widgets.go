package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/ionut-t/vio/core"
)

// widget is the contract shared by the bars below the text area: they take a
// width, render a single line, and report whether their content changed since
// the last render.
type widget interface {
	SetSize(width int)
	Render() string
	NeedsRedraw() bool
}

var (
	_ widget = (*statusBar)(nil)
	_ widget = (*messageBar)(nil)
	_ widget = (*commandBar)(nil)
)

// statusBar shows the file name, line count, modified marker and cursor
// position. The rendered line is cached until the status snapshot changes.
type statusBar struct {
	theme       Theme
	width       int
	status      core.DocumentStatus
	cache       string
	needsRedraw bool
}

func newStatusBar(theme Theme) *statusBar {
	return &statusBar{theme: theme, needsRedraw: true}
}

func (b *statusBar) SetSize(width int) {
	if b.width != width {
		b.width = width
		b.needsRedraw = true
	}
}

func (b *statusBar) SetStatus(status core.DocumentStatus) {
	if b.status != status {
		b.status = status
		b.needsRedraw = true
	}
}

func (b *statusBar) NeedsRedraw() bool {
	return b.needsRedraw
}

func (b *statusBar) Render() string {
	if !b.needsRedraw {
		return b.cache
	}

	left := b.status.FileName + " - " + b.status.LineCountText()
	if indicator := b.status.ModifiedIndicator(); indicator != "" {
		left += " " + indicator
	}
	right := b.status.PositionIndicator()

	gap := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	var line string
	if gap >= 1 {
		line = left + strings.Repeat(" ", gap) + right
	} else {
		line = truncateToWidth(left, b.width)
	}

	b.cache = b.theme.StatusBarStyle.Render(line)
	b.needsRedraw = false
	return b.cache
}

// messageBar shows a transient status or error message.
type messageBar struct {
	theme       Theme
	width       int
	message     string
	isError     bool
	cache       string
	needsRedraw bool
}

func newMessageBar(theme Theme) *messageBar {
	return &messageBar{theme: theme, needsRedraw: true}
}

func (b *messageBar) SetSize(width int) {
	if b.width != width {
		b.width = width
		b.needsRedraw = true
	}
}

func (b *messageBar) SetMessage(message string) {
	b.set(message, false)
}

func (b *messageBar) SetError(message string) {
	b.set(message, true)
}

func (b *messageBar) Clear() {
	b.set("", false)
}

func (b *messageBar) set(message string, isError bool) {
	if b.message != message || b.isError != isError {
		b.message = message
		b.isError = isError
		b.needsRedraw = true
	}
}

func (b *messageBar) NeedsRedraw() bool {
	return b.needsRedraw
}

func (b *messageBar) Render() string {
	if !b.needsRedraw {
		return b.cache
	}

	style := b.theme.MessageStyle
	if b.isError {
		style = b.theme.ErrorStyle
	}
	b.cache = style.Render(truncateToWidth(b.message, b.width))
	b.needsRedraw = false
	return b.cache
}

// commandBar is the prompt line for save-as and find, backed by a text input.
type commandBar struct {
	theme       Theme
	width       int
	input       textinput.Model
	needsRedraw bool
}

func newCommandBar(theme Theme) *commandBar {
	input := textinput.New()
	input.Prompt = ""
	return &commandBar{theme: theme, input: input, needsRedraw: true}
}

func (b *commandBar) SetSize(width int) {
	if b.width != width {
		b.width = width
		b.input.Width = max(width-lipgloss.Width(b.input.Prompt)-1, 1)
		b.needsRedraw = true
	}
}

// Open resets the input with the given prompt label and focuses it.
func (b *commandBar) Open(prompt string) {
	b.input.Prompt = b.theme.PromptStyle.Render(prompt)
	b.input.SetValue("")
	b.input.Focus()
	b.needsRedraw = true
}

func (b *commandBar) Close() {
	b.input.Blur()
	b.input.SetValue("")
	b.needsRedraw = true
}

func (b *commandBar) Value() string {
	return b.input.Value()
}

func (b *commandBar) NeedsRedraw() bool {
	return b.needsRedraw
}

func (b *commandBar) Render() string {
	b.needsRedraw = false
	return b.theme.CommandBarStyle.Render(b.input.View())
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(text) <= width {
		return text
	}
	line := core.NewLine(text)
	return line.AnnotatedVisibleSubstr(0, width, "", -1).Text
}
