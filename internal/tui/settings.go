package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/captionthis/internal/config"
	"github.com/diogo/captionthis/internal/models"
	"github.com/diogo/captionthis/internal/render"
)

// settingsView represents the current view in the settings screen
type settingsView int

const (
	viewSettingsMain settingsView = iota
	viewStyleSelect
	viewFrontendSelect
	viewThemeSelect    // Markdown theme
	viewTUIThemeSelect // TUI color theme
)

// Menu item indices for the main settings view
const (
	settingDefaultStyle = iota
	settingFrontend
	settingCopyToClipboard
	settingVerbose
	settingTheme
	settingTUITheme
	settingExit
)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// SettingsInfo is read-only context shown above the settings
type SettingsInfo struct {
	ConfigPath string
	KeySource  config.KeySource
}

// SettingsModel edits config.json interactively
type SettingsModel struct {
	config config.Config
	info   SettingsInfo
	save   func(config.Config) error

	view settingsView
	list selector

	feedback        string
	feedbackTimeout time.Duration

	width  int
	height int
	ready  bool
}

// NewSettingsModel creates a settings model for cfg. save persists each
// change; nil uses config.SaveConfig.
func NewSettingsModel(cfg config.Config, info SettingsInfo, save func(config.Config) error) SettingsModel {
	if save == nil {
		save = config.SaveConfig
	}
	if cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme) {
		UpdateTheme()
	}

	m := SettingsModel{
		config:          cfg,
		info:            info,
		save:            save,
		feedbackTimeout: 2 * time.Second,
	}
	m.list = m.mainList(0)
	return m
}

// Config returns the settings as edited so far
func (m SettingsModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

func onOff(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

func (m SettingsModel) mainList(cursor int) selector {
	items := []selectorItem{
		{title: "Default caption style", detail: m.config.Style().Title(), value: settingDefaultStyle},
		{title: "Front end", detail: m.config.Frontend, value: settingFrontend},
		{title: "Copy captions to clipboard", detail: onOff(m.config.CopyToClipboard), value: settingCopyToClipboard},
		{title: "Verbose logging", detail: onOff(m.config.Verbose), value: settingVerbose},
		{title: "Markdown theme", detail: m.markdownTheme(), value: settingTheme},
		{title: "TUI theme", detail: m.config.TUITheme, value: settingTUITheme},
		{title: "Exit", value: settingExit},
	}
	sel := newSelector("Settings", items, false)
	sel.setSize(m.width, m.height)
	sel.cursor = cursor
	return sel
}

func (m SettingsModel) markdownTheme() string {
	if m.config.Markdown.Style == "" {
		return render.ThemeDark
	}
	return m.config.Markdown.Style
}

// choiceList builds a sub-list with the cursor on current
func (m SettingsModel) choiceList(title string, names []string, current string) selector {
	items := make([]selectorItem, len(names))
	cursor := 0
	for i, name := range names {
		items[i] = selectorItem{title: name, value: i}
		if name == current {
			cursor = i
			items[i].detail = "(current)"
		}
	}
	sel := newSelector(title, items, false)
	sel.setSize(m.width, m.height)
	sel.cursor = cursor
	return sel
}

func styleNames() []string {
	var names []string
	for _, s := range models.PromptStyles() {
		names = append(names, s.String())
	}
	return names
}

// Update handles messages and updates the model
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.setSize(m.width, m.height)

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (m.view == viewSettingsMain && msg.String() == "q") {
			return m, tea.Quit
		}

		var action selectorAction
		m.list, action = m.list.update(msg)
		switch action {
		case selectorCancelled:
			if m.view == viewSettingsMain {
				return m, tea.Quit
			}
			cursor := m.mainCursorFor(m.view)
			m.view = viewSettingsMain
			m.list = m.mainList(cursor)
		case selectorChosen:
			return m.handleSelect()
		}
	}

	return m, nil
}

// mainCursorFor keeps the cursor on the setting a sub-view edits
func (m SettingsModel) mainCursorFor(v settingsView) int {
	switch v {
	case viewStyleSelect:
		return settingDefaultStyle
	case viewFrontendSelect:
		return settingFrontend
	case viewThemeSelect:
		return settingTheme
	case viewTUIThemeSelect:
		return settingTUITheme
	}
	return m.list.cursor
}

// handleSelect handles menu item selection
func (m SettingsModel) handleSelect() (tea.Model, tea.Cmd) {
	it, _ := m.list.selected()

	if m.view == viewSettingsMain {
		switch it.value {
		case settingDefaultStyle:
			m.view = viewStyleSelect
			m.list = m.choiceList("Default caption style", styleNames(), m.config.Style().String())
			return m, nil
		case settingFrontend:
			m.view = viewFrontendSelect
			m.list = m.choiceList("Front end", []string{config.FrontendTUI, config.FrontendConsole}, m.config.Frontend)
			return m, nil
		case settingCopyToClipboard:
			m.config.CopyToClipboard = !m.config.CopyToClipboard
			return m.persist(settingCopyToClipboard, "Copy to clipboard "+onOff(m.config.CopyToClipboard))
		case settingVerbose:
			m.config.Verbose = !m.config.Verbose
			return m.persist(settingVerbose, "Verbose logging "+onOff(m.config.Verbose))
		case settingTheme:
			m.view = viewThemeSelect
			m.list = m.choiceList("Markdown theme", render.ThemeNames(), m.markdownTheme())
			return m, nil
		case settingTUITheme:
			m.view = viewTUIThemeSelect
			m.list = m.choiceList("TUI theme", render.TUIThemeNames(), m.config.TUITheme)
			return m, nil
		case settingExit:
			return m, tea.Quit
		}
		return m, nil
	}

	sub := m.view
	m.view = viewSettingsMain
	cursor := m.mainCursorFor(sub)

	switch sub {
	case viewStyleSelect:
		m.config.DefaultStyle = it.title
		return m.persist(cursor, "Default caption style set to "+it.title)
	case viewFrontendSelect:
		m.config.Frontend = it.title
		return m.persist(cursor, "Front end set to "+it.title)
	case viewThemeSelect:
		m.config.Markdown.Style = it.title
		return m.persist(cursor, "Markdown theme set to "+it.title)
	case viewTUIThemeSelect:
		m.config.TUITheme = it.title
		// Apply the new TUI theme immediately
		render.SetTUITheme(it.title)
		UpdateTheme()
		return m.persist(cursor, "TUI theme set to "+it.title)
	}
	return m, nil
}

// persist saves the config and rebuilds the main list
func (m SettingsModel) persist(cursor int, feedback string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = feedback
	}
	m.list = m.mainList(cursor)
	return m, clearFeedback(m.feedbackTimeout)
}

// View renders the settings screen
func (m SettingsModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := max(m.width-4, 40)

	var sections []string
	sections = append(sections, headerStyle.Render(titleStyle.Render("captionthis")+subtitleStyle.Render("  settings")))

	keyStatus := noteOkStyle.Render("✓ " + m.info.KeySource.String())
	if m.info.KeySource == config.KeySourceNone {
		keyStatus = noteWarnStyle.Render("✗ not configured")
	}
	paths := lipgloss.JoinVertical(lipgloss.Left,
		panelTitleStyle.Render("Paths"),
		fmt.Sprintf("  Config:   %s", hintStyle.Render(m.info.ConfigPath)),
		fmt.Sprintf("  Captions: %s", hintStyle.Render(m.config.DataDir)),
		fmt.Sprintf("  API key:  %s", keyStatus),
	)
	sections = append(sections, panelStyle.Width(contentWidth).Render(paths))
	sections = append(sections, panelStyle.Width(contentWidth).Render(m.list.view()))

	if m.feedback != "" {
		style := noteOkStyle
		if strings.HasPrefix(m.feedback, "Error") {
			style = noteWarnStyle
		}
		sections = append(sections, style.Render(m.feedback))
	}

	hint := "↑/↓ move  •  enter select  •  esc back  •  q quit"
	sections = append(sections, statusBarStyle.Render(hint))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RunSettings starts the settings screen and returns the final config
func RunSettings(cfg config.Config, info SettingsInfo) (config.Config, error) {
	p := tea.NewProgram(NewSettingsModel(cfg, info, nil), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return cfg, err
	}
	if sm, ok := final.(SettingsModel); ok {
		return sm.Config(), nil
	}
	return cfg, nil
}
