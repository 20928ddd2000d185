package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/henri123lemoine/vista/internal/catalog"
	"github.com/henri123lemoine/vista/internal/config"
	"github.com/henri123lemoine/vista/internal/debug"
	"github.com/henri123lemoine/vista/internal/exec"
	"github.com/henri123lemoine/vista/internal/render"
	"github.com/henri123lemoine/vista/internal/ui"
)

// State represents the current UI state.
type State int

const (
	StateList State = iota
	StateFilter
	StatePreview
	StateSource
	StateHelp
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Model is the main application model.
type Model struct {
	// Data
	templates []catalog.Template
	filtered  []catalog.Template
	recent    []string
	warnings  []error
	config    *config.Config
	recents   *catalog.Recents
	registry  render.Registry

	// UI state
	state      State
	prevState  State
	cursor     int
	viewOffset int
	loading    bool
	err        error
	status     string

	// Preview
	selected *catalog.Template
	preview  string
	scroll   int
	showData bool

	// Filter
	filterInput textinput.Model

	// Dimensions
	width  int
	height int

	// Keys
	keys KeyMap

	shouldQuit bool
}

// New creates a new Model. recents may be nil, which disables the recent list.
func New(cfg *config.Config, recents *catalog.Recents) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter templates..."
	ti.CharLimit = 100

	return Model{
		config:      cfg,
		recents:     recents,
		registry:    render.DefaultRegistry(),
		state:       StateList,
		loading:     true,
		showData:    cfg.UI.ShowData,
		filterInput: ti,
		keys:        KeyMapFromConfig(&cfg.Keys),
	}
}

// RenderOptions returns the renderer options configured by cfg.
func RenderOptions(cfg *config.Config, reg render.Registry) []render.Option {
	return []render.Option{
		render.WithRegistry(reg),
		render.WithTheme(cfg.BaseTheme()),
		render.WithStrictElements(cfg.Render.StrictElements),
		render.WithResponsiveDefault(cfg.Render.Responsive),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadTemplates(m.config.General.TemplatesDir, m.recents)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StatePreview && m.selected != nil {
			m.preview = m.paintPreview(*m.selected)
		}
		m.clampScroll()
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		return m.handleKey(msg)

	case TemplatesLoadedMsg:
		m.loading = false
		m.templates = msg.Templates
		m.recent = msg.Recent
		m.warnings = msg.Warnings
		m.err = nil
		if len(msg.Templates) == 0 && len(msg.Warnings) > 0 {
			m.err = msg.Warnings[0]
		}
		for _, w := range msg.Warnings {
			debug.Log("template warning: %v", w)
		}
		m.applyFilter()
		m.refreshSelected()
		return m, nil

	case EditorFinishedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Editor failed: %v", msg.Err)
			return m, nil
		}
		m.status = fmt.Sprintf("Reloaded %s", msg.Name)
		return m, loadTemplates(m.config.General.TemplatesDir, m.recents)

	case RecentsUpdatedMsg:
		if msg.Err != nil {
			debug.Log("recording recent template failed: %v", msg.Err)
			return m, nil
		}
		m.recent = msg.Names
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.Err)
		} else {
			m.status = fmt.Sprintf("Copied %s to clipboard", msg.Name)
		}
		return m, nil
	}

	return m, nil
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateList:
		return m.handleListKeys(msg)
	case StateFilter:
		return m.handleFilterKeys(msg)
	case StatePreview:
		return m.handlePreviewKeys(msg)
	case StateSource:
		return m.handleSourceKeys(msg)
	case StateHelp:
		// Any key closes help
		m.state = m.prevState
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shouldQuit = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.End):
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Open):
		if t := m.current(); t != nil {
			return m.openPreview(*t)
		}

	case key.Matches(msg, m.keys.Source):
		if t := m.current(); t != nil {
			m.selected = t
			m.state = StateSource
			m.scroll = 0
		}

	case key.Matches(msg, m.keys.Copy):
		if t := m.current(); t != nil {
			return m, copySource(*t)
		}

	case key.Matches(msg, m.keys.Edit):
		if t := m.current(); t != nil {
			return m.edit(*t)
		}

	case key.Matches(msg, m.keys.Filter):
		m.state = StateFilter
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.prevState = m.state
		m.state = StateHelp

	case key.Matches(msg, m.keys.Back):
		// Clear a filter applied from the filter screen
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.applyFilter()
		}
	}

	return m, nil
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.applyFilter()
		m.state = StateList
		return m, nil

	case tea.KeyEnter:
		m.filterInput.Blur()
		m.state = StateList
		return m, nil

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil

	case tea.KeyDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.state = StateList
		m.scroll = 0

	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)

	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)

	case key.Matches(msg, m.keys.Home):
		m.scroll = 0

	case key.Matches(msg, m.keys.End):
		m.scroll = m.maxScroll()

	case key.Matches(msg, m.keys.Data):
		m.showData = !m.showData
		m.preview = m.paintPreview(*m.selected)
		m.clampScroll()

	case key.Matches(msg, m.keys.Source):
		m.state = StateSource
		m.scroll = 0

	case key.Matches(msg, m.keys.Copy):
		return m, copySource(*m.selected)

	case key.Matches(msg, m.keys.Edit):
		return m.edit(*m.selected)

	case key.Matches(msg, m.keys.Help):
		m.prevState = m.state
		m.state = StateHelp
	}

	return m, nil
}

func (m Model) handleSourceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.state = StateList
		m.scroll = 0

	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)

	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)

	case key.Matches(msg, m.keys.Home):
		m.scroll = 0

	case key.Matches(msg, m.keys.End):
		m.scroll = m.maxScroll()

	case key.Matches(msg, m.keys.Open):
		return m.openPreview(*m.selected)

	case key.Matches(msg, m.keys.Copy):
		return m, copySource(*m.selected)

	case key.Matches(msg, m.keys.Edit):
		return m.edit(*m.selected)

	case key.Matches(msg, m.keys.Help):
		m.prevState = m.state
		m.state = StateHelp
	}

	return m, nil
}

// edit suspends the UI and opens a user template in the editor.
func (m Model) edit(t catalog.Template) (tea.Model, tea.Cmd) {
	if t.Builtin || t.Path == "" {
		m.status = "Built-in templates are read-only (y copies the source)"
		return m, nil
	}
	debug.Log("editing %s", t.Path)
	cmd := exec.Edit(m.config.General.Editor, t.Path)
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return EditorFinishedMsg{Name: t.Name, Err: err}
	})
}

// refreshSelected points the open template at its reloaded version.
func (m *Model) refreshSelected() {
	if m.selected == nil {
		return
	}
	t, ok := catalog.Find(m.templates, m.selected.Name)
	if !ok {
		return
	}
	m.selected = &t
	if m.state == StatePreview {
		m.preview = m.paintPreview(t)
	}
	m.clampScroll()
}

// openPreview renders t and records it as recently viewed.
func (m Model) openPreview(t catalog.Template) (tea.Model, tea.Cmd) {
	m.selected = &t
	m.state = StatePreview
	m.scroll = 0
	m.preview = m.paintPreview(t)
	return m, recordRecent(m.recents, t.Name)
}

// paintPreview renders t at the current content width.
func (m Model) paintPreview(t catalog.Template) string {
	done := debug.Timed("preview " + t.Name)
	defer done()

	out := ui.Paint(t.Render(RenderOptions(m.config, m.registry)...), ui.ContentWidth(m.width))
	if m.showData && t.Graphic != nil && len(t.Graphic.Data) > 0 {
		data, err := json.MarshalIndent(t.Graphic.Data, "", "  ")
		if err != nil {
			debug.Log("marshal data-bag for %s: %v", t.Name, err)
		} else {
			out += "\n\n" + ui.HeaderStyle.Render("DATA") + "\n" + ui.SourceStyle.Render(string(data))
		}
	}
	return out
}

// current returns the template under the cursor.
func (m Model) current() *catalog.Template {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	t := m.filtered[m.cursor]
	return &t
}

// scrollText returns the text shown in the current scrollable screen.
func (m Model) scrollText() string {
	switch m.state {
	case StatePreview:
		return m.preview
	case StateSource:
		if m.selected != nil {
			return strings.TrimRight(string(m.selected.Source), "\n")
		}
	}
	return ""
}

func (m Model) maxScroll() int {
	text := m.scrollText()
	if text == "" {
		return 0
	}
	lines := strings.Count(text, "\n") + 1
	if n := lines - ui.BodyHeight(m.height); n > 0 {
		return n
	}
	return 0
}

func (m *Model) scrollBy(delta int) {
	m.scroll += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if maxScroll := m.maxScroll(); m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// ensureCursorVisible adjusts viewOffset so the cursor is visible.
func (m *Model) ensureCursorVisible() {
	if len(m.filtered) == 0 {
		m.viewOffset = 0
		return
	}
	capacity := ui.ListCapacity(m.height)
	if m.cursor < m.viewOffset {
		m.viewOffset = m.cursor
	}
	if m.cursor >= m.viewOffset+capacity {
		m.viewOffset = m.cursor - capacity + 1
	}
	if maxOffset := len(m.filtered) - capacity; m.viewOffset > maxOffset {
		m.viewOffset = max(0, maxOffset)
	}
}

// templateSource implements fuzzy.Source for templates.
type templateSource []catalog.Template

func (s templateSource) String(i int) string {
	t := s[i]
	return t.Title + " " + t.Name + " " + t.Category + " " + t.Description
}

func (s templateSource) Len() int {
	return len(s)
}

// applyFilter filters templates based on the filter input using fuzzy matching.
func (m *Model) applyFilter() {
	filter := strings.TrimSpace(m.filterInput.Value())
	if filter == "" {
		m.filtered = m.templates
	} else {
		matches := fuzzy.FindFrom(filter, templateSource(m.templates))
		m.filtered = make([]catalog.Template, 0, len(matches))
		for _, match := range matches {
			m.filtered = append(m.filtered, m.templates[match.Index])
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.ensureCursorVisible()
}

// helpSections lists the bindings shown on the help screen.
func (m Model) helpSections() []ui.HelpSection {
	section := func(title string, bindings ...key.Binding) ui.HelpSection {
		s := ui.HelpSection{Title: title}
		for _, b := range bindings {
			h := b.Help()
			s.Bindings = append(s.Bindings, ui.HelpBinding{Keys: h.Key, Desc: h.Desc})
		}
		return s
	}
	return []ui.HelpSection{
		section("Navigation", m.keys.Up, m.keys.Down, m.keys.Home, m.keys.End),
		section("Templates", m.keys.Open, m.keys.Source, m.keys.Data, m.keys.Copy, m.keys.Edit, m.keys.Filter),
		section("General", m.keys.Back, m.keys.Help, m.keys.Quit),
	}
}

// View renders the UI.
func (m Model) View() string {
	warnings := make([]string, 0, len(m.warnings))
	for _, w := range m.warnings {
		warnings = append(warnings, w.Error())
	}

	var source string
	if m.selected != nil {
		source = string(m.selected.Source)
	}

	return ui.Render(ui.RenderParams{
		State:        int(m.state),
		Templates:    m.filtered,
		Recent:       m.recent,
		Cursor:       m.cursor,
		ViewOffset:   m.viewOffset,
		VisibleCount: ui.ListCapacity(m.height),
		Width:        m.width,
		Height:       m.height,
		Loading:      m.loading,
		Err:          m.err,
		Warnings:     warnings,
		Status:       m.status,
		FilterInput:  m.filterInput.View(),
		FilterValue:  m.filterInput.Value(),
		Selected:     m.selected,
		Preview:      m.preview,
		Source:       source,
		ScrollOffset: m.scroll,
		HelpSections: m.helpSections(),
	})
}

// ShouldQuit returns whether the app should quit.
func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

// Commands

func loadTemplates(dir string, recents *catalog.Recents) tea.Cmd {
	return func() tea.Msg {
		templates, warnings := catalog.Load(dir)
		var recent []string
		if recents != nil {
			recent = recents.Load()
		}
		return TemplatesLoadedMsg{Templates: templates, Recent: recent, Warnings: warnings}
	}
}

func recordRecent(recents *catalog.Recents, name string) tea.Cmd {
	if recents == nil {
		return nil
	}
	return func() tea.Msg {
		names, err := recents.Add(name)
		return RecentsUpdatedMsg{Names: names, Err: err}
	}
}

func copySource(t catalog.Template) tea.Cmd {
	return func() tea.Msg {
		err := writeClipboard(string(t.Source))
		return CopiedMsg{Name: t.Name, Err: err}
	}
}
