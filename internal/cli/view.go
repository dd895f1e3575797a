package cli

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/synthgrid/tabwatch/internal/monitor"
)

// refreshInterval paces snapshot reads from the monitor.
const refreshInterval = 250 * time.Millisecond

// visibleRecords caps how many feed lines the view renders.
const visibleRecords = 12

// Theme holds the color scheme for the watch display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Warning: lipgloss.Color("#FFAF00"), // amber
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success)
}

func (t Theme) warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status).Bold(true)
}

// tickMsg triggers the next snapshot refresh.
type tickMsg time.Time

// streamDoneMsg reports that the stream reader returned.
type streamDoneMsg struct {
	err error
}

// watchModel is the bubbletea model for the live monitor view. It is a
// pure projection: every refresh reads a snapshot from the monitor and
// all classification state stays inside the engine.
type watchModel struct {
	mon      *monitor.Monitor
	progress progress.Model
	search   textinput.Model
	theme    Theme

	// active filters
	term        string
	agentFilter string
	searching   bool

	// current snapshot
	records []monitor.ActivityRecord
	agents  []monitor.AgentPerformance
	pct     int

	streamDone bool
	streamErr  error
	quitting   bool
}

// newWatchModel creates the live view over a monitor.
func newWatchModel(mon *monitor.Monitor) watchModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	search := textinput.New()
	search.Placeholder = "search message or agent"
	search.CharLimit = 64

	return watchModel{
		mon:         mon,
		progress:    prog,
		search:      search,
		theme:       defaultTheme,
		agentFilter: monitor.FilterAll,
	}
}

// Init returns the initial command (start the refresh loop).
func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case streamDoneMsg:
		m.streamDone = true
		m.streamErr = msg.err
		m.refresh()
		return m, nil

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// While the search prompt is open, keys edit the prompt.
	if m.searching {
		switch msg.String() {
		case "enter":
			m.term = m.search.Value()
			m.searching = false
			m.search.Blur()
			m.refresh()
			return m, nil
		case "esc":
			m.searching = false
			m.term = ""
			m.search.SetValue("")
			m.search.Blur()
			m.refresh()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "p":
		if m.mon.Paused() {
			m.mon.Resume()
		} else {
			m.mon.Pause()
		}
		return m, nil
	case "c":
		m.mon.Clear()
		m.refresh()
		return m, nil
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "f":
		m.agentFilter = m.nextAgentFilter()
		m.refresh()
		return m, nil
	case "esc":
		m.term = ""
		m.search.SetValue("")
		m.agentFilter = monitor.FilterAll
		m.refresh()
		return m, nil
	}

	return m, nil
}

// refresh pulls a fresh snapshot through the active filters.
func (m *watchModel) refresh() {
	m.records = m.mon.Query(m.term, m.agentFilter)
	m.agents = m.mon.Agents()
	m.pct = m.mon.Progress()
}

// nextAgentFilter cycles all → each known agent → all.
func (m watchModel) nextAgentFilter() string {
	if len(m.agents) == 0 {
		return monitor.FilterAll
	}
	if m.agentFilter == monitor.FilterAll {
		return m.agents[0].Name
	}
	for i, a := range m.agents {
		if a.Name == m.agentFilter && i+1 < len(m.agents) {
			return m.agents[i+1].Name
		}
	}
	return monitor.FilterAll
}

// View renders the watch display.
func (m watchModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m watchModel) renderContent() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.theme.headerStyle().Render("tabwatch"))
	b.WriteString("  ")
	b.WriteString(m.renderStreamState())
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %3d%%\n\n", m.progress.ViewAs(float64(m.pct)/100), m.pct))

	b.WriteString(m.renderAgents())
	b.WriteString("\n")
	b.WriteString(m.renderRecords())
	b.WriteString("\n")

	if m.searching {
		b.WriteString("/" + m.search.View() + "\n")
	} else {
		b.WriteString(m.renderFilterLine())
		b.WriteString(m.theme.hintStyle().Render("p pause · c clear · / search · f filter agent · q quit"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m watchModel) renderStreamState() string {
	switch {
	case m.mon.Paused():
		return m.theme.warningStyle().Render("[paused]")
	case m.streamDone && m.streamErr != nil:
		return m.theme.errorStyle().Render("[stream lost]")
	case m.streamDone:
		return m.theme.hintStyle().Render("[stream ended]")
	default:
		return m.theme.statusStyle().Render("[live]")
	}
}

func (m watchModel) renderAgents() string {
	var b strings.Builder
	for _, a := range m.agents {
		marker := "·"
		style := m.theme.hintStyle()
		switch a.Status {
		case monitor.AgentActive:
			marker, style = "▶", m.theme.statusStyle()
		case monitor.AgentComplete:
			marker, style = "✓", m.theme.successStyle()
		case monitor.AgentError:
			marker, style = "✗", m.theme.errorStyle()
		}
		line := fmt.Sprintf("%s %-20s %-8s tasks:%-3d", marker, a.Name, a.Status, a.TasksCompleted)
		if a.TasksCompleted > 0 {
			line += fmt.Sprintf(" ok:%3.0f%%", a.SuccessRate)
			if a.AvgResponseTime > 0 {
				line += fmt.Sprintf(" avg:%4.0fms", a.AvgResponseTime)
			}
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m watchModel) renderRecords() string {
	if len(m.records) == 0 {
		if len(m.mon.Records()) == 0 {
			return m.theme.hintStyle().Render("waiting for activity...") + "\n"
		}
		return m.theme.hintStyle().Render("no records match the current filter") + "\n"
	}

	shown := m.records
	if len(shown) > visibleRecords {
		shown = shown[:visibleRecords]
	}

	var b strings.Builder
	for _, rec := range shown {
		style := m.theme.statusStyle()
		switch rec.Level {
		case monitor.LevelSuccess:
			style = m.theme.successStyle()
		case monitor.LevelWarning:
			style = m.theme.warningStyle()
		case monitor.LevelError:
			style = m.theme.errorStyle()
		}
		line := fmt.Sprintf("%s  %-19s %s",
			rec.Timestamp.Format("15:04:05"), rec.Agent, rec.Message)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m watchModel) renderFilterLine() string {
	var parts []string
	if m.term != "" {
		parts = append(parts, fmt.Sprintf("search=%q", m.term))
	}
	if m.agentFilter != monitor.FilterAll {
		parts = append(parts, fmt.Sprintf("agent=%s", m.agentFilter))
	}
	if len(parts) == 0 {
		return ""
	}
	return m.theme.statusStyle().Render(strings.Join(parts, "  ")) + "  esc to reset\n"
}

// tickCmd returns a command that sends a tick after the refresh interval.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
