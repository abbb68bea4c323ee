package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Game IDs the menu can start.
const (
	campaignID = "breakout"
	endlessID  = "breakout_endless"
)

type menuEntry struct {
	label  string
	gameID string // empty for entries that open a sub screen
}

var menuEntries = []menuEntry{
	{label: "Campaign", gameID: campaignID},
	{label: "Endless", gameID: endlessID},
	{label: "Select Level..."},
	{label: "High Scores"},
}

const (
	entryLevelSelect = 2
	entryScoreboard  = 3
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

// MenuModel lets the player pick a mode or a starting level.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	levels        []*breakout.Level
	highScores    map[string]int
	width         int
	height        int
	config        core.RuntimeConfig
	result        MenuResult
	done          bool
}

// NewMenuModel creates a menu. High scores are read once from the store,
// which may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	highScores := make(map[string]int)
	if store != nil {
		for _, id := range []string{campaignID, endlessID} {
			if hs, err := store.HighScore(id); err == nil {
				highScores[id] = hs
			}
		}
	}

	return MenuModel{
		levels:     breakout.BuiltinLevels(),
		highScores: highScores,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "tab" {
			return m.finish(MenuResult{WantsScoreboard: true})
		}
		action := MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelect(action)
		}
		return m.handleModeSelect(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) finish(result MenuResult) (tea.Model, tea.Cmd) {
	m.result = result
	m.done = true
	return m, tea.Quit
}

func (m MenuModel) handleModeSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		return m.finish(MenuResult{Quit: true})
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case entryLevelSelect:
			m.inLevelSelect = true
			m.levelCursor = 0
		case entryScoreboard:
			return m.finish(MenuResult{WantsScoreboard: true})
		default:
			return m.finish(MenuResult{GameID: menuEntries[m.cursor].gameID})
		}
	}
	return m, nil
}

func (m MenuModel) handleLevelSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		return m.finish(MenuResult{Quit: true})
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.finish(MenuResult{GameID: campaignID, StartLevel: m.levelCursor})
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the mode or level list.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B R E A K O U T"), m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		b.WriteString(centerText("Select level:", m.width))
		b.WriteString("\n\n")
		for i, l := range m.levels {
			cursor := "  "
			if i == m.levelCursor {
				cursor = "> "
			}
			b.WriteString(centerText(fmt.Sprintf("%s%2d. %-14s", cursor, i+1, l.Name), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("Select game mode:", m.width))
		b.WriteString("\n\n")
		for i, e := range menuEntries {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			line := cursor + e.label
			if hs, ok := m.highScores[e.gameID]; ok && hs > 0 {
				line = fmt.Sprintf("%-18s best %d", line, hs)
			}
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Enter: Select  |  Esc: Back  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Result returns what the player chose. Valid once the program exited.
func (m MenuModel) Result() MenuResult {
	r := m.result
	r.Config = m.config
	if !m.done {
		r.Quit = true
	}
	return r
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	StartLevel      int // 0-based campaign index
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, fmt.Errorf("tui: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
