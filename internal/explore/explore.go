// Package explore is a terminal front end for the visualizer: the cursor
// plays the mouse, and two toggle keys stand in for held modifiers because
// terminals do not report bare Shift or Control presses.
package explore

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anthonybishopric/graphfocus/pkg/highlight"
	"github.com/anthonybishopric/graphfocus/pkg/interaction"
	"github.com/anthonybishopric/graphfocus/pkg/scene"
	"github.com/anthonybishopric/graphfocus/pkg/visualizer"
)

// Frame is the animation step per tick.
const Frame = 50 * time.Millisecond

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Click    key.Binding
	Leave    key.Binding
	Referred key.Binding
	Refer    key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "hover prev"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "hover next"),
	),
	Click: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Leave: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "leave node"),
	),
	Referred: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "toggle referred (shift)"),
	),
	Refer: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "toggle refer (ctrl)"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Click, k.Referred, k.Refer, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Click, k.Leave},
		{k.Referred, k.Refer, k.Clear},
		{k.Quit},
	}
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(Frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model. The cursor is -1 while no node is hovered.
type Model struct {
	vis    *visualizer.Visualizer
	keys   keyMap
	help   help.Model
	cursor int
	width  int
	height int
}

// New mounts a visualizer for opts.
func New(opts visualizer.Options) Model {
	return Model{
		vis:    visualizer.Mount(opts),
		keys:   keys,
		help:   help.New(),
		cursor: -1,
	}
}

// Visualizer returns the mounted component.
func (m Model) Visualizer() *visualizer.Visualizer { return m.vis }

// Hovered returns the id under the cursor, or "".
func (m Model) Hovered() string {
	circles := m.vis.Scene().Circles()
	if m.cursor < 0 || m.cursor >= len(circles) {
		return ""
	}
	return circles[m.cursor].ID
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.vis.Advance(Frame)
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.vis.Unmount()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			m.move(-1)

		case key.Matches(msg, m.keys.Down):
			m.move(1)

		case key.Matches(msg, m.keys.Leave):
			if m.cursor >= 0 {
				m.vis.HoverOut()
				m.cursor = -1
			}

		case key.Matches(msg, m.keys.Click):
			if id := m.Hovered(); id != "" {
				m.vis.Click(id)
				m.rehover(id)
			}

		case key.Matches(msg, m.keys.Referred):
			m.toggle(interaction.Referred, interaction.KeyShift)

		case key.Matches(msg, m.keys.Refer):
			m.toggle(interaction.Refer, interaction.KeyControl)

		case key.Matches(msg, m.keys.Clear):
			m.vis.KeyDown(interaction.KeyEscape)
			m.vis.KeyUp(interaction.KeyEscape)
			m.cursor = -1
		}
	}
	return m, nil
}

// move leaves the hovered node and enters the next one.
func (m *Model) move(delta int) {
	n := len(m.vis.Scene().Circles())
	if n == 0 {
		return
	}
	if m.cursor >= 0 {
		m.vis.HoverOut()
	}
	switch {
	case m.cursor < 0 && delta < 0:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	default:
		m.cursor = (m.cursor + delta + n) % n
	}
	m.vis.Hover(m.Hovered())
}

// rehover moves the cursor back onto id after a redraw and hovers it again,
// as a pointer resting on the node would.
func (m *Model) rehover(id string) {
	m.cursor = -1
	for i, c := range m.vis.Scene().Circles() {
		if c.ID == id {
			m.cursor = i
			m.vis.Hover(id)
			return
		}
	}
}

// toggle holds or releases a modifier. The highlight is refreshed by
// leaving and re-entering the hovered node.
func (m *Model) toggle(mode interaction.Mode, k string) {
	if m.vis.Mode() == mode {
		m.vis.KeyUp(k)
	} else {
		m.vis.KeyDown(k)
	}
	if id := m.Hovered(); id != "" {
		m.vis.HoverOut()
		m.vis.Hover(id)
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("graphfocus"))
	s.WriteString("\n")

	selected := m.vis.Selected()
	if selected == "" {
		selected = "none"
	}
	s.WriteString(statusStyle.Render(fmt.Sprintf("mode: %s • selected: %s • nodes: %d • edges: %d",
		m.vis.Mode(), selected, len(m.vis.Scene().Circles()), len(m.vis.Scene().Lines()))))
	s.WriteString("\n")

	var body strings.Builder
	sc := m.vis.Scene()
	for i, c := range sc.Circles() {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("▸ ")
		}
		body.WriteString(pointer)
		body.WriteString(fill(c.Fill).Render("●"))
		body.WriteString(" ")
		body.WriteString(labelStyle(sc.Label(c.ID)).Render(labelText(sc.Label(c.ID), c.ID)))
		body.WriteString("\n")
	}
	if lines := sc.Lines(); len(lines) > 0 {
		body.WriteString("\n")
		for _, l := range lines {
			body.WriteString("  ")
			body.WriteString(l.Edge.SourceID())
			body.WriteString(" ")
			body.WriteString(fill(l.Stroke).Render(connector(l)))
			body.WriteString(" ")
			body.WriteString(l.Edge.TargetID())
			body.WriteString("\n")
		}
	}
	s.WriteString(contentStyle.Render(body.String()))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func labelText(l *scene.Element, id string) string {
	if l == nil {
		return id
	}
	return l.Text
}

func labelStyle(l *scene.Element) lipgloss.Style {
	if l == nil {
		return lipgloss.NewStyle()
	}
	return fill(l.Fill).Bold(l.FontWeight == highlight.WeightBold)
}

func fill(css string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Color(css))
}

// connector draws a line as text. Related lines are thick, and dashed lines
// shift their gaps with the dash offset so the flow animation is visible.
func connector(l *scene.Element) string {
	const width = 6
	if l.DashArray == "" {
		if l.StrokeWidth > highlight.BaseWidth {
			return strings.Repeat("━", width) + "▶"
		}
		return strings.Repeat("─", width) + "▶"
	}
	phase := int(l.DashOffset/(highlight.DashTravel/3)) % 3
	var b strings.Builder
	for i := 0; i < width; i++ {
		if (i+3-phase)%3 == 2 {
			b.WriteString(" ")
		} else {
			b.WriteString("━")
		}
	}
	return b.String() + "▶"
}
