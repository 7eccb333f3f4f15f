// Package ui renders the monitor as a two-pane terminal program: topics on
// the left, the filtered message feed or a numeric chart on the right, with a
// status bar on top. All state lives in the monitor session; the model only
// caches the latest derived view and translates key presses into session
// commands.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"

	"github.com/saunahuone/mqttscope/internal/monitor"
	"github.com/saunahuone/mqttscope/pkg/prefs"
)

// activityMsg signals that the session's derived state changed.
type activityMsg struct{}

// waitForActivity blocks on the session's change channel and converts each
// signal into a Bubble Tea message.
func waitForActivity(ch <-chan struct{}) tui.Cmd {
	return func() tui.Msg {
		<-ch
		return activityMsg{}
	}
}

type keyMap struct {
	Connect    key.Binding
	Disconnect key.Binding
	Clear      key.Binding
	EditURL    key.Binding
	Select     key.Binding
	Unselect   key.Binding
	Chart      key.Binding
	Up         key.Binding
	Down       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Connect, k.Disconnect, k.Select, k.Chart, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Connect, k.Disconnect, k.EditURL, k.Clear},
		{k.Up, k.Down, k.Select, k.Unselect, k.Chart, k.Quit},
	}
}

var keys = keyMap{
	Connect: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "connect"),
	),
	Disconnect: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "disconnect"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear"),
	),
	EditURL: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "broker url"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select topic"),
	),
	Unselect: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "all topics"),
	),
	Chart: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "chart/feed"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}

type model struct {
	session *monitor.Session
	store   *prefs.Store

	view      monitor.View
	brokerURL string
	cmdErr    error

	cursor     int
	showChart  bool
	editingURL bool
	urlInput   textinput.Model
	help       help.Model

	width  int
	height int
}

// NewModel builds the root model. brokerURL is the endpoint offered before
// the user edits it (remembered preference or configured default).
func NewModel(session *monitor.Session, store *prefs.Store, brokerURL string) tui.Model {
	ti := textinput.New()
	ti.Placeholder = "tcp://localhost:1883"
	ti.CharLimit = 200
	ti.Width = 40

	return &model{
		session:   session,
		store:     store,
		view:      session.View(),
		brokerURL: brokerURL,
		urlInput:  ti,
		help:      help.New(),
		showChart: true,
	}
}

func (m *model) Init() tui.Cmd {
	return waitForActivity(m.session.Changes())
}

func (m *model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case activityMsg:
		m.view = m.session.View()
		m.clampCursor()
		return m, waitForActivity(m.session.Changes())

	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tui.KeyMsg:
		if m.editingURL {
			return m.updateURLEditor(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tui.KeyMsg) (tui.Model, tui.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.session.Close()
		return m, tui.Quit

	case key.Matches(msg, keys.Connect):
		m.cmdErr = m.session.Connect(m.brokerURL)
		m.view = m.session.View()

	case key.Matches(msg, keys.Disconnect):
		m.session.Disconnect()
		m.cmdErr = nil
		m.view = m.session.View()

	case key.Matches(msg, keys.Clear):
		m.session.ClearMessages()
		m.view = m.session.View()

	case key.Matches(msg, keys.EditURL):
		m.editingURL = true
		m.urlInput.SetValue(m.brokerURL)
		m.urlInput.CursorEnd()
		return m, m.urlInput.Focus()

	case key.Matches(msg, keys.Up):
		m.cursor--
		m.clampCursor()

	case key.Matches(msg, keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, keys.Select):
		if len(m.view.Topics) > 0 {
			m.session.SelectTopic(m.view.Topics[m.cursor])
			m.view = m.session.View()
		}

	case key.Matches(msg, keys.Unselect):
		m.session.SelectTopic("")
		m.view = m.session.View()

	case key.Matches(msg, keys.Chart):
		m.showChart = !m.showChart
	}
	return m, nil
}

func (m *model) updateURLEditor(msg tui.KeyMsg) (tui.Model, tui.Cmd) {
	switch msg.String() {
	case "enter":
		m.editingURL = false
		m.urlInput.Blur()
		if v := strings.TrimSpace(m.urlInput.Value()); v != "" {
			m.brokerURL = v
			if err := m.store.Set(prefs.KeyBrokerURL, v); err != nil {
				m.cmdErr = err
			}
		}
		return m, nil
	case "esc":
		m.editingURL = false
		m.urlInput.Blur()
		return m, nil
	}
	var cmd tui.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m *model) clampCursor() {
	if m.cursor >= len(m.view.Topics) {
		m.cursor = len(m.view.Topics) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) View() string {
	if m.width == 0 {
		return "starting..."
	}

	header := m.statusBar()
	footer := m.footer()

	bodyHeight := m.height - styles.Height(header) - styles.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	leftW := m.width * 35 / 100
	if leftW < 16 {
		leftW = 16
	}
	rightW := m.width - leftW
	if rightW < 10 {
		rightW = 10
	}

	left := m.topicPane(leftW, bodyHeight)
	right := m.messagePane(rightW, bodyHeight)
	body := styles.JoinHorizontal(styles.Top, left, right)

	return styles.JoinVertical(styles.Left, header, body, footer)
}

func (m *model) statusBar() string {
	var status string
	switch m.view.Status {
	case monitor.StatusConnected:
		status = statusConnected.Render("● connected")
	case monitor.StatusConnecting:
		status = statusConnecting.Render("◌ connecting")
	default:
		status = statusDisconnected.Render("○ disconnected")
	}

	parts := []string{
		status,
		borderFg.Render(m.brokerURL),
		borderFg.Render(fmt.Sprintf("%d msgs", len(m.view.Messages))),
	}
	if m.view.Selected != "" {
		parts = append(parts, accentFg.Render("topic: "+m.view.Selected))
	}

	if m.editingURL {
		parts = append(parts, "broker: "+m.urlInput.View())
	}
	return strings.Join(parts, "  ")
}

func (m *model) topicPane(w, h int) string {
	innerH := h - 2 // pane border
	lines := make([]string, 0, innerH)

	if len(m.view.Topics) == 0 {
		lines = append(lines, plainTopic.Render("no topics yet"))
	}
	for i, topic := range m.view.Topics {
		if i >= innerH {
			break
		}
		label := truncate(topic, w-4)
		switch {
		case topic == m.view.Selected && i == m.cursor:
			lines = append(lines, selectedTopic.Bold(true).Render(label))
		case i == m.cursor:
			lines = append(lines, selectedTopic.Render(label))
		case topic == m.view.Selected:
			lines = append(lines, plainTopic.Foreground(accentColor).Render(label))
		default:
			lines = append(lines, plainTopic.Render(label))
		}
	}

	pane := styles.NewStyle().Width(w - 2).Height(innerH).Render(strings.Join(lines, "\n"))
	return paneStyle.Render(pane)
}

func (m *model) messagePane(w, h int) string {
	innerW, innerH := w-2, h-2

	if m.showChart && m.view.Selected != "" && len(m.view.Series) > 0 {
		chart := renderChart(m.view.Series, innerW, innerH-1)
		if chart != "" {
			label := fmt.Sprintf("%d points", len(m.view.Series))
			block := styles.JoinVertical(styles.Top, chart, borderFg.Render(label))
			return paneStyle.Render(styles.NewStyle().Width(innerW).Height(innerH).Render(block))
		}
	}

	lines := make([]string, 0, innerH)
	for i, msg := range m.view.Filtered {
		if i >= innerH {
			break
		}
		topic := truncate(msg.Topic, innerW/2)
		payload := truncate(msg.Payload, innerW-len([]rune(topic))-2)
		lines = append(lines, accentFg.Render(topic)+"  "+payload)
	}
	if len(lines) == 0 {
		lines = append(lines, borderFg.Render("  no messages"))
	}

	pane := styles.NewStyle().Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
	return paneStyle.Render(pane)
}

func (m *model) footer() string {
	if m.cmdErr != nil {
		return errStyle.Render("ERROR: "+m.cmdErr.Error()) + "\n" + m.help.View(keys)
	}
	return m.help.View(keys)
}

func truncate(s string, w int) string {
	if w < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}
