package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge"
	"github.com/vovakirdan/tui-merge/internal/storage"
)

// menuEntry is a line of the main menu.
type menuEntry int

const (
	entryPlay menuEntry = iota
	entryDifficulty
	entryScores
	entryQuit
)

var menuEntries = []menuEntry{entryPlay, entryDifficulty, entryScores, entryQuit}

var menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	preset         config.DifficultyPreset
	keyMapper      *KeyMapper
	difficulty     *DifficultyModel // Open difficulty selector
	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	if preset == "" {
		preset = config.DifficultyNormal
	}
	return MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		preset:    preset,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.difficulty != nil {
		return m.updateDifficulty(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.difficulty.Update(msg)
	d, _ := next.(DifficultyModel)
	m.difficulty = &d

	switch {
	case d.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case d.WantsBack():
		m.difficulty = nil
	default:
		if p, ok := d.Selected(); ok {
			m.preset = p
			m.difficulty = nil
		}
	}
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if menuEntries[m.cursor] == entryDifficulty {
			m.preset = cyclePreset(m.preset, false)
		}

	case MenuActionRight:
		if menuEntries[m.cursor] == entryDifficulty {
			m.preset = cyclePreset(m.preset, true)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch menuEntries[m.cursor] {
		case entryPlay:
			m.play = true
			return m, tea.Quit
		case entryDifficulty:
			d := NewDifficultyModel(m.preset, m.width, m.height)
			m.difficulty = &d
		case entryScores:
			m.openScoreboard = true
			return m, tea.Quit
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// cyclePreset steps through the presets, wrapping around.
func cyclePreset(p config.DifficultyPreset, forward bool) config.DifficultyPreset {
	presets := config.Presets()
	i := 0
	for j, q := range presets {
		if q == p {
			i = j
		}
	}
	if forward {
		i = (i + 1) % len(presets)
	} else {
		i = (i - 1 + len(presets)) % len(presets)
	}
	return presets[i]
}

func (m MenuModel) entryLabel(e menuEntry) string {
	switch e {
	case entryPlay:
		return "Play"
	case entryDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", m.preset)
	case entryScores:
		return "High Scores"
	default:
		return "Quit"
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.difficulty != nil {
		return m.difficulty.View()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("  F R U I T   M E R G E  ", m.width)))
	b.WriteString("\n\n")

	if m.store != nil {
		if high, err := m.store.HighScore(fruitmerge.VariantID(m.preset)); err == nil && high > 0 {
			b.WriteString(centerText(fmt.Sprintf("Best (%s): %d", m.preset, high), m.width))
			b.WriteString("\n\n")
		}
	}

	for i, e := range menuEntries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+m.entryLabel(e), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// GameID returns the registry ID of the chosen difficulty.
func (m MenuModel) GameID() string {
	return fruitmerge.VariantID(m.preset)
}

// Preset returns the chosen difficulty.
func (m MenuModel) Preset() config.DifficultyPreset {
	return m.preset
}

// WantsPlay returns true if user started a game.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	model := NewMenuModel(store, cfg, preset)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Preset: preset}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Preset: preset, Quit: true}, nil
	}

	result := MenuResult{
		GameID: m.GameID(),
		Preset: m.Preset(),
		Config: m.Config(),
	}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.WantsPlay():
	default:
		result.Quit = true
	}
	return result, nil
}
