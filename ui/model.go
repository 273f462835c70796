package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rCiDK/test-script-helper/clip"
	"github.com/rCiDK/test-script-helper/config"
	"github.com/rCiDK/test-script-helper/engine"
	"github.com/rCiDK/test-script-helper/session"
)

// Field is a focusable form input.
type Field int

const (
	// FieldName is the test name input.
	FieldName Field = iota
	// FieldStart is the start number input.
	FieldStart
	// FieldEnd is the end number input.
	FieldEnd
	// FieldExport is the export location input.
	FieldExport
	// FieldSteps is the multi-line steps input.
	FieldSteps
	// FieldDefect is the defect note input, focusable only on FAIL.
	FieldDefect

	fieldCount
)

// Model represents the application state for the Bubbletea program.
type Model struct {
	// UI State
	width    int
	height   int
	showHelp bool
	focus    Field

	// Inputs
	nameInput   textinput.Model
	startInput  textinput.Model
	endInput    textinput.Model
	exportInput textinput.Model
	defectInput textinput.Model
	steps       textarea.Model

	// Components
	keys KeyMap
	help help.Model

	// Dependencies
	engine *engine.Engine

	// Notification State
	notification        string
	notificationID      int
	notificationTimeout time.Duration

	initCmds []tea.Cmd
	farewell string
}

// Messages

// clearNotificationMsg clears the notification it was scheduled for.
type clearNotificationMsg struct{ id int }

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

// NewModel creates and initializes a new Model around the session controller.
func NewModel(e *engine.Engine, cfg config.Config) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#A0A0A0"})
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#808080"})
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#606060"})
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.FullSeparator = h.Styles.ShortSeparator

	ta := textarea.New()
	ta.Placeholder = "One step per line..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(50)
	ta.SetHeight(8)

	timeout := cfg.NotificationTimeout
	if timeout <= 0 {
		timeout = config.DefaultNotificationTimeout
	}

	m := Model{
		nameInput:           newInput("Login smoke test", 120),
		startInput:          newInput("1", 9),
		endInput:            newInput("1", 9),
		exportInput:         newInput("/path/to/reports", 1024),
		defectInput:         newInput("Describe the defect", 500),
		steps:               ta,
		keys:                NewKeyMap(),
		help:                h,
		engine:              e,
		notificationTimeout: timeout,
	}
	m.initCmds = append(m.initCmds, m.setFocus(FieldName))

	if cfg.ExportDir != "" {
		m.exportInput.SetValue(cfg.ExportDir)
		m.initCmds = append(m.initCmds, m.chooseExport())
	}
	return m
}

// Init initializes the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Batch(append([]tea.Cmd{textinput.Blink}, m.initCmds...)...)
}

// Farewell is the message left for the terminal after the program exits.
func (m Model) Farewell() string {
	return m.farewell
}

// Update handles incoming messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		formWidth := (m.width / 2) - 6
		if formWidth > 20 {
			m.steps.SetWidth(formWidth)
			inputWidth := formWidth - labelStyle.GetWidth()
			m.nameInput.Width = inputWidth
			m.startInput.Width = inputWidth
			m.endInput.Width = inputWidth
			m.exportInput.Width = inputWidth
			m.defectInput.Width = inputWidth
		}
		return m, nil

	case clearNotificationMsg:
		if msg.id == m.notificationID {
			m.notification = ""
		}
		return m, nil

	case engine.WatcherReadyMsg, engine.WatcherMsg, engine.ReportsLoadedMsg:
		return m, m.engine.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.engine.Close()
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		if msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextField):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keys.ChooseExport):
		return m, m.chooseExport()
	case key.Matches(msg, m.keys.Start):
		return m, m.start()
	case key.Matches(msg, m.keys.AddSteps):
		return m, m.addSteps()
	case key.Matches(msg, m.keys.Paste):
		return m, m.pasteImage()
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleVerdict()
	case key.Matches(msg, m.keys.Finish):
		return m.finish()
	case key.Matches(msg, m.keys.Enter) && m.focus != FieldSteps:
		if m.focus == FieldExport {
			return m, m.chooseExport()
		}
		if m.focus != FieldDefect {
			return m, m.moveFocus(1)
		}
		return m, nil
	}

	return m, m.updateFocused(msg)
}

// updateFocused forwards a key to the focused input.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case FieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case FieldStart:
		m.startInput, cmd = m.startInput.Update(msg)
	case FieldEnd:
		m.endInput, cmd = m.endInput.Update(msg)
	case FieldExport:
		m.exportInput, cmd = m.exportInput.Update(msg)
	case FieldSteps:
		m.steps, cmd = m.steps.Update(msg)
	case FieldDefect:
		m.defectInput, cmd = m.defectInput.Update(msg)
		m.engine.SetDefect(m.defectInput.Value())
	}
	return cmd
}

func (m *Model) focusable(f Field) bool {
	if f == FieldDefect {
		return m.engine.State.DefectEnabled()
	}
	return true
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	next := m.focus
	for i := 0; i < int(fieldCount); i++ {
		next = Field((int(next) + delta + int(fieldCount)) % int(fieldCount))
		if m.focusable(next) {
			break
		}
	}
	return m.setFocus(next)
}

func (m *Model) setFocus(f Field) tea.Cmd {
	m.focus = f
	m.nameInput.Blur()
	m.startInput.Blur()
	m.endInput.Blur()
	m.exportInput.Blur()
	m.defectInput.Blur()
	m.steps.Blur()

	switch f {
	case FieldName:
		return m.nameInput.Focus()
	case FieldStart:
		return m.startInput.Focus()
	case FieldEnd:
		return m.endInput.Focus()
	case FieldExport:
		return m.exportInput.Focus()
	case FieldSteps:
		return m.steps.Focus()
	case FieldDefect:
		return m.defectInput.Focus()
	}
	return nil
}

// notify shows text and schedules its removal.
func (m *Model) notify(text string) tea.Cmd {
	m.notificationID++
	m.notification = text
	id := m.notificationID
	return tea.Tick(m.notificationTimeout, func(time.Time) tea.Msg {
		return clearNotificationMsg{id: id}
	})
}

// Actions

func (m *Model) chooseExport() tea.Cmd {
	cmd, err := m.engine.SetExportDir(m.exportInput.Value())
	if err != nil {
		return m.notify(errorMessage(err))
	}
	m.exportInput.SetValue(m.engine.State.ExportDir)
	return tea.Batch(cmd, m.notify("Files will be saved to: "+m.engine.State.ExportDir))
}

func (m *Model) start() tea.Cmd {
	start, end, err := parseRange(m.startInput.Value(), m.endInput.Value())
	if err == nil {
		err = m.engine.Start(m.nameInput.Value(), start, end)
	}
	if err != nil {
		return m.notify(errorMessage(err))
	}

	m.steps.Reset()
	m.defectInput.Reset()
	s := m.engine.State.Session
	return tea.Batch(
		m.setFocus(FieldSteps),
		m.notify(fmt.Sprintf("Started %s #%d of %d. %s", s.TestName, s.Current, s.End, guidance(s))),
	)
}

func (m *Model) addSteps() tea.Cmd {
	n, err := m.engine.AddSteps(m.steps.Value())
	if err != nil {
		return m.notify(errorMessage(err))
	}
	m.steps.Reset()
	return m.notify(fmt.Sprintf("%d step(s) have been added. %s", n, guidance(m.engine.State.Session)))
}

func (m *Model) pasteImage() tea.Cmd {
	res, err := m.engine.PasteImage()
	if err != nil {
		if res.Kind == clip.ReadFailed {
			return m.notify(fmt.Sprintf("Could not read clipboard: %v", err))
		}
		return m.notify(errorMessage(err))
	}
	s := m.engine.State.Session
	return m.notify(fmt.Sprintf("Image added (%d/%d). %s", len(s.Images), len(s.Steps), guidance(s)))
}

func (m *Model) toggleVerdict() tea.Cmd {
	v, err := m.engine.ToggleVerdict()
	if err != nil {
		return m.notify(errorMessage(err))
	}
	if v == session.VerdictFail {
		return tea.Batch(m.setFocus(FieldDefect), m.notify("Marked as FAIL. Describe the defect."))
	}
	m.defectInput.Reset()
	var cmd tea.Cmd
	if m.focus == FieldDefect {
		cmd = m.setFocus(FieldSteps)
	}
	return tea.Batch(cmd, m.notify("Marked as PASS."))
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	out, err := m.engine.Finish()
	if err != nil {
		if rejected(err) {
			return m, m.notify(errorMessage(err))
		}
		return m, m.notify(fmt.Sprintf("An error occurred while saving the report: %v", err))
	}

	saved := "Excel report saved as " + out.Path
	if out.Done {
		m.farewell = saved
		m.engine.Close()
		return m, tea.Quit
	}

	m.steps.Reset()
	m.defectInput.Reset()
	s := m.engine.State.Session
	return m, tea.Batch(
		m.setFocus(FieldSteps),
		m.notify(fmt.Sprintf("%s\nNext: %s #%d.", saved, s.TestName, s.Current)),
	)
}

// View renders the UI based on the current state.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	if m.width == 0 {
		return "Loading..."
	}

	paneWidth := (m.width / 2) - 2
	paneHeight := m.height - 6

	form := paneStyle.
		Width(paneWidth).
		Height(paneHeight).
		Render(m.renderForm())
	side := paneStyle.
		Width(paneWidth).
		Height(paneHeight).
		Render(m.renderSession(paneHeight))

	panes := lipgloss.JoinHorizontal(lipgloss.Top, form, side)
	return lipgloss.JoinVertical(lipgloss.Left, panes, m.renderFooter())
}

func (m Model) renderFooter() string {
	var b strings.Builder
	if m.notification != "" {
		b.WriteString(notificationStyle.Render(m.notification))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}
