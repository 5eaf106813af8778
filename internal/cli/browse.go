package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Header and footer take two lines each around the viewport.
const browseChromeHeight = 4

type browseKeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Grid  key.Binding
	Score key.Binding
	Quit  key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Prev:  key.NewBinding(key.WithKeys("up", "k", "left", "h"), key.WithHelp("↑/k", "prev")),
		Next:  key.NewBinding(key.WithKeys("down", "j", "right", "l"), key.WithHelp("↓/j", "next")),
		Grid:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
		Score: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "score")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Grid, k.Score, k.Quit}
}

// browseViewportKeyMap leaves arrows and letters to the browser; only page
// keys scroll the detail pane.
func browseViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
}

// browseModel pages through ranked timetables one at a time.
type browseModel struct {
	resp      *app.RecommendResponse
	cursor    int
	showGrid  bool
	showScore bool
	keys      browseKeyMap
	vp        viewport.Model
	width     int
	quitting  bool
}

func newBrowseModel(resp *app.RecommendResponse) *browseModel {
	vp := viewport.New(80, 20)
	vp.KeyMap = browseViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := &browseModel{
		resp:     resp,
		showGrid: true,
		keys:     newBrowseKeyMap(),
		vp:       vp,
		width:    80,
	}
	m.refresh()
	return m
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-browseChromeHeight)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
				m.vp.GotoTop()
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			if m.cursor < len(m.resp.Candidates)-1 {
				m.cursor++
				m.refresh()
				m.vp.GotoTop()
			}
			return m, nil
		case key.Matches(msg, m.keys.Grid):
			m.showGrid = !m.showGrid
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Score):
			m.showScore = !m.showScore
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *browseModel) refresh() {
	if len(m.resp.Candidates) == 0 {
		m.vp.SetContent(formatter.FormatInfeasibility(m.resp.Infeasibility))
		return
	}
	c := m.resp.Candidates[m.cursor]
	var b strings.Builder
	b.WriteString(formatter.FormatCandidate(c, m.resp, formatter.RecommendOptions{
		Grid:      m.showGrid,
		Breakdown: m.showScore,
	}))
	if lines := formatter.DescribeConstraints(m.resp.Constraints); len(lines) > 0 {
		b.WriteString("\n" + formatter.Header("Preferences") + "\n")
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
	}
	m.vp.SetContent(b.String())
}

func (m *browseModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	title := fmt.Sprintf("%s  %s", formatter.StyleHeader.Render("TABLY"), formatter.TermLabel(m.resp.Term))
	if n := len(m.resp.Candidates); n > 0 {
		c := m.resp.Candidates[m.cursor]
		title += fmt.Sprintf("  %s  %s  %s",
			formatter.Bold(fmt.Sprintf("%d/%d", m.cursor+1, n)),
			formatter.ScoreBadge(c.Score),
			formatter.Dim(formatter.FormatCredits(c.TotalCredits)))
	}
	b.WriteString(title + "\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m *browseModel) helpLine() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, formatter.StyleBlue.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim(" · ")) + "  " + scrollIndicator(m.vp)
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() && vp.AtBottom() {
		return ""
	}
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
