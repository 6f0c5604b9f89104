package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ionut-t/vio/core"
)

// quitConfirmations is how many times ctrl+q must be pressed to quit with
// unsaved changes.
const quitConfirmations = 3

const messageDuration = 5 * time.Second

const helpMessage = "HELP: Ctrl-F = find | Ctrl-S = save | Ctrl-Y = copy line | Ctrl-Q = quit"

type promptType int

const (
	promptNone promptType = iota
	promptSave
	promptFind
)

// Clipboard abstracts the system clipboard so tests can capture writes.
type Clipboard interface {
	Write(text string) error
}

type systemClipboard struct{}

func (systemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

type clearMessageMsg struct{}

func dispatchClearMessage() tea.Cmd {
	return tea.Tick(messageDuration, func(time.Time) tea.Msg {
		return clearMessageMsg{}
	})
}

// Model wires the editor core to Bubble Tea: it routes keys, sizes the text
// area, and assembles the frame from the view and the three bars.
type Model struct {
	view      *core.View
	keys      keyMap
	theme     Theme
	status    *statusBar
	message   *messageBar
	command   *commandBar
	clipboard Clipboard

	width  int
	height int

	prompt        promptType
	quitRemaining int
}

func New() Model {
	theme := DefaultTheme
	m := Model{
		view:          core.NewView(),
		keys:          defaultKeyMap(),
		theme:         theme,
		status:        newStatusBar(theme),
		message:       newMessageBar(theme),
		command:       newCommandBar(theme),
		clipboard:     systemClipboard{},
		quitRemaining: quitConfirmations,
	}
	m.message.SetMessage(helpMessage)
	return m
}

// WithTheme allows setting a custom theme.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
	m.status.theme = theme
	m.message.theme = theme
	m.command.theme = theme
}

// WithClipboard replaces the system clipboard.
func (m *Model) WithClipboard(c Clipboard) {
	m.clipboard = c
}

// Load reads the given file into the editor. A failure becomes a message on
// the message bar rather than an error to the caller.
func (m *Model) Load(path string) {
	if err := m.view.Load(path); err != nil {
		m.message.SetError(err.Error())
	}
}

func (m Model) View() string {
	m.status.SetStatus(m.view.Status())

	caret := m.view.CaretPosition()
	r := newScreenRenderer(m.theme, m.textHeight(), caret, m.prompt == promptNone)
	_ = m.view.Draw(r, 0)

	var b strings.Builder
	for _, row := range r.rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	b.WriteString(m.status.Render())
	b.WriteByte('\n')
	if m.prompt != promptNone {
		b.WriteString(m.command.Render())
	} else {
		b.WriteString(m.message.Render())
	}
	return b.String()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case clearMessageMsg:
		m.message.Clear()
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}

	// Everything else (cursor blink ticks and the like) belongs to the prompt
	// input while one is open.
	if m.prompt != promptNone {
		var cmd tea.Cmd
		m.command.input, cmd = m.command.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// textHeight is the number of rows of the text area; the status and message
// bars take the bottom two.
func (m *Model) textHeight() int {
	return max(m.height-2, 0)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.view.Resize(core.Size{Width: width, Height: m.textHeight()})
	m.status.SetSize(width)
	m.message.SetSize(width)
	m.command.SetSize(width)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key other than the quit chord resets the confirmation countdown.
	if !key.Matches(msg, m.keys.Quit) {
		m.quitRemaining = quitConfirmations
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()

	case key.Matches(msg, m.keys.Save):
		return m.handleSave()

	case key.Matches(msg, m.keys.Find):
		m.view.EnterSearch()
		m.showPrompt(promptFind, "Search (Esc to cancel, arrows to navigate): ")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.CopyLine):
		return m.copyLine()

	case key.Matches(msg, m.keys.Up):
		m.view.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.view.MoveDown(1)
	case key.Matches(msg, m.keys.Left):
		m.view.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		m.view.MoveRight()
	case key.Matches(msg, m.keys.PageUp):
		m.view.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.view.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.view.MoveToStartOfLine()
	case key.Matches(msg, m.keys.End):
		m.view.MoveToEndOfLine()

	case key.Matches(msg, m.keys.Backspace):
		m.view.DeleteBackward()
	case key.Matches(msg, m.keys.Delete):
		m.view.Delete()
	case key.Matches(msg, m.keys.Confirm):
		m.view.InsertNewline()
	case key.Matches(msg, m.keys.Tab):
		m.view.InsertChar('\t')

	case key.Matches(msg, m.keys.Cancel):
		// No prompt to dismiss.

	case msg.Type == tea.KeySpace:
		m.view.InsertChar(' ')

	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			m.view.InsertChar(r)
		}
	}

	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.prompt == promptFind {
			m.view.DismissSearch()
		}
		m.dismissPrompt()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.handlePromptConfirm()
	}

	if m.prompt == promptFind {
		switch {
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
			m.view.SearchPrev()
			return m, nil
		case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
			m.view.SearchNext()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.command.input, cmd = m.command.input.Update(msg)
	m.command.needsRedraw = true

	if m.prompt == promptFind {
		m.view.Search(m.command.Value())
	}
	return m, cmd
}

func (m Model) handlePromptConfirm() (tea.Model, tea.Cmd) {
	switch m.prompt {
	case promptFind:
		m.view.ExitSearch()
		m.dismissPrompt()
		return m, nil

	case promptSave:
		path := m.command.Value()
		m.dismissPrompt()
		if path == "" {
			m.message.SetMessage("Save aborted.")
			return m, dispatchClearMessage()
		}
		if err := m.view.SaveAs(path); err != nil {
			m.message.SetError("Error writing file: " + err.Error())
		} else {
			m.message.SetMessage("File saved successfully.")
		}
		return m, dispatchClearMessage()
	}

	m.dismissPrompt()
	return m, nil
}

func (m Model) handleSave() (tea.Model, tea.Cmd) {
	if !m.view.IsFileLoaded() {
		m.showPrompt(promptSave, "Save as: ")
		return m, textinput.Blink
	}
	if err := m.view.Save(); err != nil {
		m.message.SetError("Error writing file: " + err.Error())
	} else {
		m.message.SetMessage("File saved successfully.")
	}
	return m, dispatchClearMessage()
}

func (m Model) handleQuit() (tea.Model, tea.Cmd) {
	if m.view.Document().IsDirty() && m.quitRemaining > 1 {
		m.quitRemaining--
		m.message.SetError(fmt.Sprintf(
			"WARNING! File has unsaved changes. Press Ctrl-Q %d more times to quit.",
			m.quitRemaining,
		))
		return m, nil
	}
	return m, tea.Quit
}

func (m Model) copyLine() (tea.Model, tea.Cmd) {
	if err := m.clipboard.Write(m.view.CurrentLine()); err != nil {
		m.message.SetError("Clipboard unavailable: " + err.Error())
	} else {
		m.message.SetMessage("Line copied.")
	}
	return m, dispatchClearMessage()
}

func (m *Model) showPrompt(prompt promptType, label string) {
	m.prompt = prompt
	m.command.Open(label)
}

func (m *Model) dismissPrompt() {
	m.prompt = promptNone
	m.command.Close()
}
