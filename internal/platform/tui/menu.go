package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

const menuControls = "Up/Down: Mode  |  Left/Right: Difficulty  |  Enter: Start  |  Tab: Runs  |  Q: Quit"

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 2)
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuResult is what the menu hands back to the CLI loop.
type MenuResult struct {
	GameID          string
	Difficulty      string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// MenuModel picks a registered mode and a difficulty profile.
type MenuModel struct {
	modes    []registry.GameInfo
	profiles []config.DifficultyProfile
	mode     int
	profile  int
	keys     *KeyMapper
	result   MenuResult
}

// NewMenuModel builds the menu with the named difficulty highlighted.
// Unknown names highlight the smallest profile.
func NewMenuModel(cfg core.RuntimeConfig, mazeCfg config.MazeConfig, difficulty string) MenuModel {
	m := MenuModel{
		modes:    registry.List(),
		profiles: mazeCfg.SortedProfiles(),
		keys:     NewKeyMapper(),
		result:   MenuResult{Config: cfg},
	}
	if p, err := mazeCfg.Profile(difficulty); err == nil {
		for i := range m.profiles {
			if m.profiles[i].Name == p.Name {
				m.profile = i
			}
		}
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.result.Config.ScreenW = msg.Width
		m.result.Config.ScreenH = msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.mode = max(m.mode-1, 0)
	case MenuActionDown:
		m.mode = min(m.mode+1, len(m.modes)-1)
	case MenuActionLeft:
		m.profile = max(m.profile-1, 0)
	case MenuActionRight:
		m.profile = min(m.profile+1, len(m.profiles)-1)
	case MenuActionSelect:
		if len(m.modes) == 0 {
			return m, nil
		}
		m.result.GameID = m.modes[m.mode].ID
		return m, tea.Quit
	case MenuActionScoreboard:
		m.result.WantsScoreboard = true
		return m, tea.Quit
	case MenuActionQuit, MenuActionBack:
		m.result.Quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.result.Quit {
		return ""
	}

	lines := []string{
		menuTitleStyle.Render("T U I   M A Z E"),
		"",
		"Choose a mode and a difficulty",
		"",
	}
	for i, mode := range m.modes {
		if i == m.mode {
			lines = append(lines, menuActiveStyle.Render("> "+mode.Title))
		} else {
			lines = append(lines, "  "+mode.Title)
		}
	}
	lines = append(lines, "", m.difficultyLine(), "", menuHintStyle.Render(menuControls))

	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	w, h := m.result.Config.ScreenW, m.result.Config.ScreenH
	if w <= 0 || h <= 0 {
		return body
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, body)
}

func (m MenuModel) difficultyLine() string {
	p, ok := m.Difficulty()
	if !ok {
		return ""
	}
	left, right := "<", ">"
	if m.profile == 0 {
		left = " "
	}
	if m.profile == len(m.profiles)-1 {
		right = " "
	}
	return fmt.Sprintf("Difficulty: %s %s (%dx%d) %s", left, p.Name, p.Width, p.Height, right)
}

// Difficulty returns the highlighted profile.
func (m MenuModel) Difficulty() (config.DifficultyProfile, bool) {
	if m.profile < 0 || m.profile >= len(m.profiles) {
		return config.DifficultyProfile{}, false
	}
	return m.profiles[m.profile], true
}

// Result reports the choice made so far, including resizes.
func (m MenuModel) Result() MenuResult {
	r := m.result
	if p, ok := m.Difficulty(); ok {
		r.Difficulty = p.Name
	}
	return r
}

// centerText pads plain text to sit centered in width columns.
func centerText(text string, width int) string {
	return centerStyled(text, width)
}

// centerStyled is centerText for strings that carry ANSI styling.
func centerStyled(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunMenu shows the menu until the user picks a mode, opens the run
// history or quits.
func RunMenu(cfg core.RuntimeConfig, mazeCfg config.MazeConfig, difficulty string) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg, mazeCfg, difficulty), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	r := m.Result()
	if r.GameID == "" && !r.WantsScoreboard {
		r.Quit = true
	}
	return r, nil
}
