package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show difficulty sidebar
	sidebarWidth       = 24  // Width of difficulty sidebar
	maxRuns            = 100 // Max runs to load
)

// scoreView selects what the scoreboard table lists.
type scoreView int

const (
	viewBest   scoreView = iota // fastest wins of the selected difficulty
	viewRecent                  // latest runs of every mode and difficulty
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll     key.Binding
	Difficulty key.Binding
	Cycle      key.Binding
	ToggleView key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Difficulty, k.ToggleView, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Scroll, k.Difficulty, k.Cycle},
		{k.ToggleView, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "difficulty"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "cycle difficulty"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	store        *storage.Store
	difficulties []string // config profiles first, smallest maze first
	sizes        map[string]string
	bests        map[string]time.Duration
	cursor       int
	view         scoreView
	runs         []storage.RunEntry
	stats        *storage.RunStats
	table        table.Model
	help         help.Model
	keys         ScoreboardKeyMap
	width        int
	height       int
	quitting     bool
	goingBack    bool
}

// NewScoreboardModel creates a new scoreboard model. Difficulties come from
// the config first, then any other difficulty found in the history.
func NewScoreboardModel(store *storage.Store, mazeCfg config.MazeConfig, width, height int) ScoreboardModel {
	sizes := make(map[string]string)
	var names []string
	for _, p := range mazeCfg.SortedProfiles() {
		names = append(names, p.Name)
		sizes[p.Name] = fmt.Sprintf("%dx%d", p.Width, p.Height)
	}
	if store != nil {
		if stored, err := store.Difficulties(); err == nil {
			for _, name := range stored {
				if !slices.Contains(names, name) {
					names = append(names, name)
				}
			}
		}
	}

	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		store:        store,
		difficulties: names,
		sizes:        sizes,
		bests:        make(map[string]time.Duration),
		keys:         DefaultScoreboardKeyMap(),
		help:         h,
		width:        width,
		height:       height,
	}
	m.loadBests()
	m.table = m.createTable()
	m.reload()
	return m
}

// selected returns the difficulty under the cursor.
func (m ScoreboardModel) selected() string {
	if len(m.difficulties) == 0 {
		return ""
	}
	return m.difficulties[m.cursor]
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// loadBests caches the best winning time of every difficulty for the sidebar.
func (m *ScoreboardModel) loadBests() {
	if m.store == nil {
		return
	}
	all, err := m.store.AllStats()
	if err != nil {
		return
	}
	for name, st := range all {
		if st.Won > 0 {
			m.bests[name] = st.Best
		}
	}
}

// createTable builds the table for the current view and window size.
func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	if m.view == viewRecent {
		columns = []table.Column{
			{Title: "Mode", Width: 6},
			{Title: "Difficulty", Width: 10},
			{Title: "Time", Width: 9},
			{Title: "Result", Width: 6},
			{Title: "Date", Width: 12},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Time", Width: 9},
			{Title: "Seed", Width: 20},
			{Title: "Date", Width: 12},
		}
		// Seeds are long; give them whatever width is left
		avail := m.width - 8
		if m.showSidebar() {
			avail -= sidebarWidth + 4
		}
		columns[2].Width = core.Clamp(avail-32, 6, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-11)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload queries the store for the current view and refills the table.
func (m *ScoreboardModel) reload() {
	m.runs = nil
	m.stats = nil
	if m.store != nil {
		var runs []storage.RunEntry
		var err error
		if m.view == viewRecent {
			runs, err = m.store.RecentRuns(maxRuns)
		} else if name := m.selected(); name != "" {
			runs, err = m.store.BestRuns(name, maxRuns)
			if st, serr := m.store.Stats(name); serr == nil {
				m.stats = st
			}
		}
		if err == nil {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		date := r.CreatedAt.Format("Jan 02 15:04")
		if m.view == viewRecent {
			result := "quit"
			if r.Won {
				result = "won"
			}
			rows[i] = table.Row{r.Mode, r.Difficulty, FormatDuration(r.Elapsed), result, date}
			continue
		}
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), FormatDuration(r.Elapsed), fmt.Sprintf("%d", r.Seed), date}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// FormatDuration renders a run time as m:ss.t.
func FormatDuration(d time.Duration) string {
	tenths := int(d / (100 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.ToggleView):
			if m.view == viewBest {
				m.view = viewRecent
			} else {
				m.view = viewBest
			}
			m.table = m.createTable()
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Difficulty), key.Matches(msg, m.keys.Cycle):
			if m.view != viewBest || len(m.difficulties) == 0 {
				return m, nil
			}
			step := 1
			if k := msg.String(); k == "left" || k == "h" || k == "shift+tab" {
				step = -1
			}
			m.cursor = (m.cursor + step + len(m.difficulties)) % len(m.difficulties)
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	sbTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	sbActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RECENT RUNS"
	if m.view == viewBest {
		title = "BEST TIMES"
		if name := m.selected(); name != "" {
			title += " - " + name
		}
	}
	b.WriteString(sbTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	body := sbBoxStyle.Render(m.tableContent())
	switch {
	case m.showSidebar():
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body)
	case m.view == viewBest:
		b.WriteString(centerStyled(m.tabs(), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected difficulty.
func (m ScoreboardModel) statsLine() string {
	if m.view == viewRecent {
		return fmt.Sprintf("Last %d runs, demo included", len(m.runs))
	}
	st := m.stats
	if st == nil || st.Played == 0 {
		return "No runs yet"
	}
	line := fmt.Sprintf("Played %d  Won %d (%.0f%%)", st.Played, st.Won, st.WinRate()*100)
	if st.Won > 0 {
		line += fmt.Sprintf("  Best %s  Avg %s", FormatDuration(st.Best), FormatDuration(st.AvgWin))
	}
	return line
}

// sidebar lists every difficulty with its maze size and best time.
func (m ScoreboardModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Difficulty\n")
	sb.WriteString(strings.Repeat("─", sidebarWidth-4))
	sb.WriteString("\n")

	for i, name := range m.difficulties {
		line := name
		if len(line) > 10 {
			line = line[:9] + "."
		}
		best := "-"
		if d, ok := m.bests[name]; ok {
			best = FormatDuration(d)
		}
		line = fmt.Sprintf("%-10s %8s", line, best)

		if m.view == viewBest && i == m.cursor {
			sb.WriteString(sbTitleStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
		if size, ok := m.sizes[name]; ok {
			sb.WriteString(sbDimStyle.Render("  " + size))
			sb.WriteString("\n")
		}
	}

	return sbBoxStyle.Width(sidebarWidth).Render(sb.String())
}

// tabs renders the difficulty selector used on narrow terminals.
func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.difficulties))
	for i, name := range m.difficulties {
		if i == m.cursor {
			tabs[i] = sbActiveTab.Render(name)
		} else {
			tabs[i] = sbDimStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.difficulties) > 0 {
		line = fmt.Sprintf("< %s >", m.selected())
	}
	return line
}

// tableContent renders the table or a hint when it is empty.
func (m ScoreboardModel) tableContent() string {
	if len(m.runs) > 0 {
		return m.table.View()
	}
	msg := "No escapes recorded yet.\nFind the exit to set a best time!"
	if m.view == viewRecent {
		msg = "No runs recorded yet."
	}
	return sbDimStyle.Italic(true).Padding(2, 4).Render(msg)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, mazeCfg config.MazeConfig, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, mazeCfg, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
