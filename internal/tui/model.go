package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/app"
	"github.com/diogo/captionthis/internal/models"
	"github.com/diogo/captionthis/internal/render"
)

// AssetService is the part of app.Service the TUI drives
type AssetService interface {
	ListAssets(ctx context.Context, kind models.AssetKind) (*models.AssetList, error)
	Caption(ctx context.Context, record models.AssetRecord, style models.PromptStyle) (*app.CaptionOutcome, error)
	Upload(ctx context.Context, kind models.AssetKind, path string) (*models.UploadOutcome, error)
}

// screen is the state of the TUI
type screen int

const (
	screenMenu screen = iota
	screenLoading
	screenAssets
	screenStyle
	screenPathMode
	screenBrowser
	screenPathInput
	screenFileName
	screenResult
	screenError
)

// Main menu entries, in display order
const (
	menuListVideos = iota
	menuUploadVideo
	menuListImages
	menuUploadImage
	menuQuit
)

// Path mode entries, in display order
const (
	pathBrowse = iota
	pathEnter
)

// Message types for the TUI. seq ties a reply to the request that
// produced it; replies to abandoned requests are dropped.
type (
	assetsMsg struct {
		seq  int
		kind models.AssetKind
		list *models.AssetList
		err  error
	}
	captionMsg struct {
		seq     int
		outcome *app.CaptionOutcome
		err     error
	}
	uploadMsg struct {
		seq     int
		kind    models.AssetKind
		path    string
		outcome *models.UploadOutcome
		err     error
	}
)

// resultNote is a line shown under a result panel
type resultNote struct {
	text string
	warn bool
}

// Options configures the TUI
type Options struct {
	Render render.Options
	// Fs is browsed when picking upload files
	Fs afero.Fs
	// StartDir is where the file browser opens; defaults to the working directory
	StartDir string
	// DefaultStyle is preselected in the caption style chooser
	DefaultStyle models.PromptStyle
}

// Model represents the TUI state
type Model struct {
	svc  AssetService
	opts Options

	ctx    context.Context
	cancel context.CancelFunc
	seq    int

	// UI components
	spinner  spinner.Model
	viewport viewport.Model
	input    textinput.Model

	// Current screen and its selectors
	screen    screen
	menu      selector
	assets    selector
	styles    selector
	pathModes selector
	browser   fileBrowser

	// State
	kind         models.AssetKind
	records      []models.AssetRecord
	record       models.AssetRecord
	loadingLabel string
	inputLabel   string
	inputErr     string
	resultTitle  string
	notes        []resultNote
	err          error

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewModel creates the TUI model
func NewModel(svc AssetService, opts Options) Model {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.StartDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.StartDir = wd
		} else {
			opts.StartDir = "."
		}
	}
	if opts.Render.Width == 0 {
		opts.Render = render.DefaultOptions()
	}

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	ti := textinput.New()
	ti.CharLimit = 4096
	ti.Prompt = "› "
	ti.PromptStyle = inputLabelStyle
	ti.TextStyle = noteOkStyle

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		svc:     svc,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		spinner: s,
		input:   ti,
		screen:  screenMenu,
		menu: newSelector("What would you like to do?", []selectorItem{
			{title: "List Videos", value: menuListVideos},
			{title: "Upload Video", value: menuUploadVideo},
			{title: "List Images", value: menuListImages},
			{title: "Upload Image", value: menuUploadImage},
			{title: "Quit", value: menuQuit},
		}, false),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case assetsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.handleAssets(msg), nil

	case captionMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.handleCaption(msg), nil

	case uploadMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.handleUpload(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.cancel()
		return m, tea.Quit
	}

	switch m.screen {
	case screenMenu:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		var action selectorAction
		m.menu, action = m.menu.update(msg)
		if action == selectorChosen {
			return m.chooseMenu()
		}

	case screenLoading:
		switch msg.String() {
		case "q":
			m.cancel()
			return m, tea.Quit
		case "esc":
			// Abandon the request; its reply will carry a stale seq
			m.seq++
			return m.toMenu(), nil
		}

	case screenAssets:
		var action selectorAction
		m.assets, action = m.assets.update(msg)
		switch action {
		case selectorCancelled:
			return m.toMenu(), nil
		case selectorChosen:
			it, _ := m.assets.selected()
			m.record = m.records[it.value]
			m.styles = m.newStyleSelector()
			m.screen = screenStyle
		}

	case screenStyle:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		var action selectorAction
		m.styles, action = m.styles.update(msg)
		switch action {
		case selectorCancelled:
			return m.toMenu(), nil
		case selectorChosen:
			it, _ := m.styles.selected()
			return m.startCaption(models.PromptStyles()[it.value])
		}

	case screenPathMode:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		var action selectorAction
		m.pathModes, action = m.pathModes.update(msg)
		switch action {
		case selectorCancelled:
			return m.toMenu(), nil
		case selectorChosen:
			it, _ := m.pathModes.selected()
			if it.value == pathBrowse {
				m.browser = newFileBrowser(m.opts.Fs, m.opts.StartDir)
				m.browser.setSize(m.width, m.height)
				m.screen = screenBrowser
				return m, nil
			}
			return m.promptText(screenPathInput, "File path")
		}

	case screenBrowser:
		var action browserAction
		m.browser, action = m.browser.update(msg)
		switch action {
		case browserCancelled:
			return m.toMenu(), nil
		case browserPickedFile:
			return m.startUpload(m.browser.picked)
		case browserPickedFolder:
			return m.promptText(screenFileName, "File name in "+m.browser.dir)
		}

	case screenPathInput, screenFileName:
		switch msg.Type {
		case tea.KeyEsc:
			return m.toMenu(), nil
		case tea.KeyEnter:
			return m.submitPath()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.inputErr = ""
		return m, cmd

	case screenResult, screenError:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc", "enter":
			return m.toMenu(), nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// updateInput forwards non-key messages, such as cursor blinks, to the text input
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.screen != screenPathInput && m.screen != screenFileName {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) chooseMenu() (tea.Model, tea.Cmd) {
	it, _ := m.menu.selected()
	switch it.value {
	case menuListVideos:
		return m.startList(models.AssetVideo)
	case menuListImages:
		return m.startList(models.AssetImage)
	case menuUploadVideo, menuUploadImage:
		m.kind = models.AssetVideo
		title := "Video file path"
		if it.value == menuUploadImage {
			m.kind = models.AssetImage
			title = "Image file path"
		}
		m.pathModes = newSelector(title, []selectorItem{
			{title: "Browse…", value: pathBrowse},
			{title: "Enter path", value: pathEnter},
		}, false)
		m.pathModes.setSize(m.width, m.height)
		m.screen = screenPathMode
		return m, nil
	case menuQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) newStyleSelector() selector {
	styles := models.PromptStyles()
	items := make([]selectorItem, len(styles))
	for i, s := range styles {
		items[i] = selectorItem{title: s.Title(), value: i}
		if s == m.opts.DefaultStyle {
			items[i].detail = "(default)"
		}
	}
	sel := newSelector("Caption style", items, false)
	sel.setSize(m.width, m.height)
	for i, s := range styles {
		if s == m.opts.DefaultStyle {
			sel.cursor = i
		}
	}
	return sel
}

func (m Model) promptText(next screen, label string) (tea.Model, tea.Cmd) {
	m.screen = next
	m.inputLabel = label
	m.inputErr = ""
	m.input.Reset()
	m.input.Width = max(m.width-8, 20)
	cmd := m.input.Focus()
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m Model) submitPath() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.inputErr = "Required"
		return m, nil
	}

	path := value
	if m.screen == screenFileName {
		path = filepath.Join(m.browser.dir, value)
	}
	if !isFile(m.opts.Fs, path) {
		m.inputErr = "File not found"
		return m, nil
	}

	m.input.Blur()
	return m.startUpload(path)
}

func isFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}

// startLoading switches to the spinner and issues a new request seq
func (m Model) startLoading(label string) Model {
	m.seq++
	m.loadingLabel = label
	m.screen = screenLoading
	return m
}

func (m Model) startList(kind models.AssetKind) (tea.Model, tea.Cmd) {
	m.kind = kind
	m = m.startLoading(fmt.Sprintf("Fetching %ss", kind))
	svc, ctx, seq := m.svc, m.ctx, m.seq
	return m, func() tea.Msg {
		list, err := svc.ListAssets(ctx, kind)
		return assetsMsg{seq: seq, kind: kind, list: list, err: err}
	}
}

func (m Model) startCaption(style models.PromptStyle) (tea.Model, tea.Cmd) {
	m = m.startLoading("Generating " + strings.ToLower(style.Title()) + " caption")
	svc, ctx, seq, record := m.svc, m.ctx, m.seq, m.record
	return m, func() tea.Msg {
		outcome, err := svc.Caption(ctx, record, style)
		return captionMsg{seq: seq, outcome: outcome, err: err}
	}
}

func (m Model) startUpload(path string) (tea.Model, tea.Cmd) {
	m = m.startLoading("Uploading " + filepath.Base(path))
	svc, ctx, seq, kind := m.svc, m.ctx, m.seq, m.kind
	return m, func() tea.Msg {
		outcome, err := svc.Upload(ctx, kind, path)
		return uploadMsg{seq: seq, kind: kind, path: path, outcome: outcome, err: err}
	}
}

func (m Model) handleAssets(msg assetsMsg) Model {
	if msg.err != nil {
		return m.showError(msg.err)
	}

	plural := strings.ToUpper(msg.kind.String()[:1]) + msg.kind.String()[1:] + "s"
	if !msg.list.HasResults {
		return m.showResult(plural+" (raw response)", api.FormatJSON(msg.list.Raw), nil)
	}
	if msg.list.Len() == 0 {
		return m.showResult(plural, fmt.Sprintf("No %ss found.", msg.kind), nil)
	}

	m.records = msg.list.Records
	items := make([]selectorItem, len(m.records))
	for i, rec := range m.records {
		items[i] = selectorItem{title: rec.Label(), detail: rec.Status, value: i}
	}
	m.assets = newSelector(fmt.Sprintf("Select a %s to caption (%d)", msg.kind, len(items)), items, true)
	m.assets.setSize(m.width, m.height)
	m.screen = screenAssets
	return m
}

func (m Model) handleCaption(msg captionMsg) Model {
	if msg.err != nil {
		return m.showError(msg.err)
	}

	body, isCaption := render.CaptionOrRaw(msg.outcome.Result, m.renderOptions())

	var notes []resultNote
	title := "Caption"
	if !isCaption {
		title = "Response"
		notes = append(notes, resultNote{text: "No caption found in the response; showing the raw body", warn: true})
	}
	if msg.outcome.SavedPath != "" {
		notes = append(notes, resultNote{text: "Saved to " + msg.outcome.SavedPath})
	}
	if msg.outcome.SaveErr != nil {
		notes = append(notes, resultNote{text: "Could not save caption: " + msg.outcome.SaveErr.Error(), warn: true})
	}
	if msg.outcome.Copied {
		notes = append(notes, resultNote{text: "Copied to clipboard"})
	}

	return m.showResult(title, body, notes)
}

func (m Model) handleUpload(msg uploadMsg) Model {
	if msg.err != nil {
		return m.showError(msg.err)
	}

	title := fmt.Sprintf("Upload response (HTTP %d)", msg.outcome.StatusCode)
	notes := []resultNote{{text: "Uploaded " + msg.path}}
	if !msg.outcome.IsSuccess() {
		notes = []resultNote{{text: "The upload of " + msg.path + " was rejected", warn: true}}
	}
	return m.showResult(title, api.FormatJSON(msg.outcome.Body), notes)
}

func (m Model) showResult(title, body string, notes []resultNote) Model {
	m.screen = screenResult
	m.resultTitle = title
	m.notes = notes
	m.err = nil
	m.setViewportContent(strings.TrimRight(body, "\n"))
	return m
}

func (m Model) showError(err error) Model {
	m.screen = screenError
	m.err = err
	m.notes = nil
	m.setViewportContent(FormatError(err))
	return m
}

func (m Model) toMenu() Model {
	m.screen = screenMenu
	m.err = nil
	m.notes = nil
	m.inputErr = ""
	m.input.Blur()
	return m
}

func (m *Model) setViewportContent(content string) {
	m.viewport = viewport.New(m.panelWidth(), m.viewportHeight())
	m.viewport.SetContent(content)
}

// resize propagates the window size to every component
func (m *Model) resize() {
	m.menu.setSize(m.width, m.height)
	m.assets.setSize(m.width, m.height)
	m.styles.setSize(m.width, m.height)
	m.pathModes.setSize(m.width, m.height)
	m.browser.setSize(m.width, m.height)
	m.input.Width = max(m.width-8, 20)
	m.viewport.Width = m.panelWidth()
	m.viewport.Height = m.viewportHeight()
}

func (m Model) panelWidth() int {
	return max(m.width-4, 20)
}

func (m Model) viewportHeight() int {
	// header, panel border, notes and status bar
	return max(m.height-10-len(m.notes), 3)
}

func (m Model) renderOptions() render.Options {
	opts := m.opts.Render
	if w := m.panelWidth() - 2; w < opts.Width || opts.Width == 0 {
		opts = opts.WithWidth(w)
	}
	return opts
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "  Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.screen {
	case screenMenu:
		b.WriteString(m.menu.view())
	case screenLoading:
		b.WriteString(m.spinner.View() + " " + loadingStyle.Render(m.loadingLabel+"..."))
	case screenAssets:
		b.WriteString(m.assets.view())
	case screenStyle:
		b.WriteString(hintStyle.Render(m.record.Label()))
		b.WriteString("\n\n")
		b.WriteString(m.styles.view())
	case screenPathMode:
		b.WriteString(m.pathModes.view())
	case screenBrowser:
		b.WriteString(m.browser.view())
	case screenPathInput, screenFileName:
		b.WriteString(panelTitleStyle.Render(m.inputLabel))
		b.WriteString("\n")
		b.WriteString(inputPanelStyle.Width(m.panelWidth()).Render(m.input.View()))
		if m.inputErr != "" {
			b.WriteString("\n" + errorStyle.Render(m.inputErr))
		}
	case screenResult:
		b.WriteString(panelTitleStyle.Render(m.resultTitle))
		b.WriteString("\n")
		b.WriteString(panelStyle.Width(m.panelWidth()).Render(m.viewport.View()))
		for _, n := range m.notes {
			style := noteOkStyle
			if n.warn {
				style = noteWarnStyle
			}
			b.WriteString("\n" + style.Render(n.text))
		}
	case screenError:
		b.WriteString(errorStyle.Render("Error"))
		b.WriteString("\n")
		b.WriteString(errorPanelStyle.Width(m.panelWidth()).Render(m.viewport.View()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("captionthis")
	sub := subtitleStyle.Render("  video and image captions")
	return headerStyle.Render(title + sub)
}

func (m Model) renderStatusBar() string {
	var keys [][2]string
	switch m.screen {
	case screenMenu, screenStyle, screenPathMode:
		keys = [][2]string{{"↑/↓", "move"}, {"enter", "select"}, {"esc", "back"}, {"q", "quit"}}
	case screenLoading:
		keys = [][2]string{{"esc", "abandon"}, {"ctrl+c", "quit"}}
	case screenAssets, screenBrowser:
		keys = [][2]string{{"↑/↓", "move"}, {"type", "filter"}, {"enter", "select"}, {"esc", "back"}, {"ctrl+c", "quit"}}
	case screenPathInput, screenFileName:
		keys = [][2]string{{"enter", "upload"}, {"esc", "back"}, {"ctrl+c", "quit"}}
	default:
		keys = [][2]string{{"↑/↓", "scroll"}, {"esc", "menu"}, {"q", "quit"}}
	}

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = statusKeyStyle.Render(k[0]) + " " + statusDescStyle.Render(k[1])
	}
	return statusBarStyle.Render(strings.Join(parts, "  •  "))
}

// Run starts the TUI and blocks until the user quits
func Run(svc AssetService, opts Options) error {
	m := NewModel(svc, opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
