package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"atlas/internal/client"
	"atlas/internal/logging"
	"atlas/internal/store"
	"atlas/internal/types"
)

// tickInterval paces the relative-time redecoration of the sidebar. Nothing
// animated depends on it, so a coarse tick keeps the UI quiet.
const tickInterval = 30 * time.Second

type Model struct {
	api    StudioAPI
	repo   store.Repository
	logger logging.Logger

	keybindings       *Keybindings
	rankPolicy        ProjectRankPolicy
	projectionBuilder SidebarProjectionBuilder

	sync    *ProjectSyncMachine
	sidebar *SidebarController
	detail  *DetailPaneController

	mode       SidebarMode
	projection SidebarProjection
	projects   []types.Project
	appState   types.AppState

	width  int
	height int

	status      string
	statusIsErr bool
	syncSeq     int
	syncID      string
}

type ModelOption func(*Model)

func WithStudioAPI(api StudioAPI) ModelOption {
	return func(m *Model) {
		if m == nil {
			return
		}
		m.api = api
	}
}

func WithLogger(logger logging.Logger) ModelOption {
	return func(m *Model) {
		if m == nil || logger == nil {
			return
		}
		m.logger = logger
	}
}

func WithSidebarMode(mode SidebarMode) ModelOption {
	return func(m *Model) {
		if m == nil {
			return
		}
		m.mode = mode
	}
}

func WithKeybindings(bindings *Keybindings) ModelOption {
	return func(m *Model) {
		if m == nil {
			return
		}
		if bindings == nil {
			bindings = DefaultKeybindings()
		}
		m.keybindings = bindings
	}
}

func NewModel(c *client.Client, repo store.Repository, opts ...ModelOption) Model {
	model := Model{
		repo:        repo,
		logger:      logging.Nop(),
		keybindings: DefaultKeybindings(),
		sync:        NewProjectSyncMachine(),
		sidebar:     NewSidebarController(),
		detail:      NewDetailPaneController(minViewportWidth, minContentHeight),
		mode:        SidebarExpanded,
	}
	if c != nil {
		model.api = NewClientAPI(c)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&model)
		}
	}
	model.refreshSidebar()
	return model
}

func Run(c *client.Client, repo store.Repository, opts ...ModelOption) error {
	model := NewModel(c, repo, opts...)
	p := tea.NewProgram(&model)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(loadCacheSnapshotCmd(m.repo), m.startSyncCmd(), tickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)
	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)
	case cacheSnapshotMsg:
		return m.handleCacheSnapshot(msg)
	case projectsMsg:
		return m.handleProjects(msg)
	case snapshotSavedMsg:
		if msg.err != nil {
			m.log().Warn("snapshot save failed", logging.F("error", msg.err))
		}
		return m, nil
	case appStateSavedMsg:
		if msg.err != nil {
			m.log().Warn("app state save failed", logging.F("error", msg.err))
		}
		return m, nil
	case tickMsg:
		m.refreshSidebar()
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) View() tea.View {
	view := tea.NewView(m.render())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	return view
}

func (m *Model) render() string {
	left := ""
	if m.projection.ShowChrome {
		if m.sidebar != nil {
			left = m.sidebar.View()
		}
	} else {
		left = m.renderCollapsedRail()
	}
	right := ""
	if m.detail != nil {
		right = m.detail.View()
	}
	height := max(lipgloss.Height(left), lipgloss.Height(right))
	if height < 1 {
		height = 1
	}
	divider := strings.Repeat("│\n", height-1) + "│"
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, dividerStyle.Render(divider), right)

	help := helpStyle.Render(m.renderHelp())
	statusText := m.status
	status := statusStyle.Render(statusText)
	if m.statusIsErr {
		status = statusErrorStyle.Render(statusText)
	}
	statusLine := renderStatusLine(m.width, help, status)

	if m.height <= 0 || m.width <= 0 {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, statusLine)
}

// renderCollapsedRail draws the fixed-width rail: the brand mark, the expand
// affordance, and nothing else.
func (m *Model) renderCollapsedRail() string {
	height := max(minContentHeight, m.height-2)
	lines := make([]string, 0, height)
	if m.projection.ShowBrandMark {
		lines = append(lines, brandStyle.Render(" ◆"))
	}
	if m.projection.ShowToggleHint {
		lines = append(lines, hintStyle.Render(" »"))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(collapsedRailWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHelp() string {
	hint := m.projection.ToggleHint
	if hint == "" {
		hint = "toggle"
	}
	parts := []string{
		m.keyForCommand(KeyCommandQuit, "q") + " quit",
		m.keyForCommand(KeyCommandToggleSidebar, "ctrl+b") + " " + hint,
		m.keyForCommand(KeyCommandRefresh, "r") + " refresh",
	}
	if m.projection.ShowChrome {
		parts = append(parts,
			m.keyForCommand(KeyCommandSetActive, "enter")+" set active",
			m.keyForCommand(KeyCommandCopyProjectLink, "c")+" copy link",
		)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	layout := resolveResizeLayout(width, height, m.mode)
	if m.sidebar != nil && !m.mode.Collapsed() {
		m.sidebar.SetSize(layout.sidebarWidth, layout.contentHeight)
	}
	if m.detail != nil {
		m.detail.Resize(layout.viewportWidth, layout.contentHeight)
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.keyString(msg) {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "ctrl+b":
		m.toggleSidebar()
		return m, nil
	case "r":
		return m, m.startSyncCmd()
	case "c":
		m.copyProjectLink()
		return m, nil
	case "ctrl+g":
		m.copyProjectID()
		return m, nil
	case "enter":
		return m, m.setActiveProject()
	case "j", "down":
		if m.mode.Collapsed() {
			return m, nil
		}
		if m.sidebar != nil {
			m.sidebar.CursorDown()
			m.onSelectionChanged()
		}
		return m, nil
	case "k", "up":
		if m.mode.Collapsed() {
			return m, nil
		}
		if m.sidebar != nil {
			m.sidebar.CursorUp()
			m.onSelectionChanged()
		}
		return m, nil
	}
	if m.mode.Collapsed() || m.sidebar == nil {
		return m, nil
	}
	cmd := m.sidebar.Update(msg)
	m.onSelectionChanged()
	return m, cmd
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}
	layout := resolveResizeLayout(m.width, m.height, m.mode)
	if mouse.X >= layout.sidebarWidth {
		return m, nil
	}
	if m.mode.Collapsed() {
		// The rail is one big expand affordance.
		m.toggleSidebar()
		return m, nil
	}
	if m.sidebar != nil {
		m.sidebar.SelectByRow(mouse.Y)
		m.onSelectionChanged()
	}
	return m, nil
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	delta := 0
	switch mouse.Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	default:
		return m, nil
	}
	layout := resolveResizeLayout(m.width, m.height, m.mode)
	if !m.mode.Collapsed() && mouse.X < layout.sidebarWidth {
		if m.sidebar != nil {
			m.sidebar.Scroll(delta)
			m.onSelectionChanged()
		}
		return m, nil
	}
	if m.detail != nil {
		return m, m.detail.Update(msg)
	}
	return m, nil
}

func (m *Model) handleCacheSnapshot(msg cacheSnapshotMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log().Warn("cache load failed", logging.F("error", msg.err))
		return m, nil
	}
	if msg.state != nil {
		m.appState = *msg.state
		if m.sidebar != nil {
			m.sidebar.SetActive(m.appState.ActiveProjectID)
		}
	}
	// Seeding installs the cached collection without granting readiness; the
	// recents block stays suppressed until a live sync lands. A sync that
	// finished before the cache read must not be clobbered by stale rows.
	if len(msg.projects) > 0 && !m.sync.Ready() {
		m.sync.SeedProjects(msg.projects)
		m.projects = m.sync.Projects()
		m.setStatusInfo("showing cached projects")
		m.log().Debug("cache seeded", logging.F("count", len(msg.projects)))
	}
	m.refreshSidebar()
	m.refreshDetail(false)
	return m, nil
}

func (m *Model) handleProjects(msg projectsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.syncSeq {
		return m, nil
	}
	if msg.err != nil {
		transition := m.sync.Apply(SyncEvent{Type: SyncEventFailed, Reason: msg.err.Error(), At: msg.fetchedAt})
		if !transition.Ignored {
			m.setStatusError("sync error: " + msg.err.Error())
		}
		m.log().Error("project sync failed", logging.F("sync_id", m.syncID), logging.F("error", msg.err))
		m.refreshSidebar()
		return m, nil
	}
	transition := m.sync.Apply(SyncEvent{Type: SyncEventSucceeded, Projects: msg.projects, At: msg.fetchedAt})
	if transition.Ignored {
		return m, nil
	}
	m.projects = m.sync.Projects()
	syncedAt := m.sync.Snapshot().LastSynced
	m.appState.LastSyncedAt = &syncedAt
	m.setStatusInfo(fmt.Sprintf("synced %d projects", len(m.projects)))
	m.log().Info("project sync succeeded", logging.F("sync_id", m.syncID), logging.F("count", len(m.projects)))
	m.refreshSidebar()
	m.refreshDetail(true)
	return m, tea.Batch(
		persistProjectsCmd(m.repo, m.projects),
		persistAppStateCmd(m.repo, m.appState),
	)
}

// startSyncCmd moves the machine into loading and returns the fetch command.
// A sync already in flight stays the only one; the next sequence number keeps
// stale responses from landing.
func (m *Model) startSyncCmd() tea.Cmd {
	if m.api == nil {
		m.setStatusError("studio api unavailable")
		return nil
	}
	transition := m.sync.Apply(SyncEvent{Type: SyncEventStarted, At: time.Now()})
	if transition.Ignored {
		m.setStatusInfo("sync already running")
		return nil
	}
	m.syncSeq++
	m.syncID = logging.NewSyncID()
	m.setStatusInfo("syncing projects")
	m.refreshSidebar()
	m.log().Debug("sync started", logging.F("sync_id", m.syncID), logging.F("seq", m.syncSeq))
	return fetchProjectsCmd(m.api, m.syncSeq)
}

func (m *Model) toggleSidebar() {
	m.mode = m.mode.Toggle()
	m.resize(m.width, m.height)
	m.refreshSidebar()
	m.setStatusInfo("sidebar " + m.mode.String())
}

func (m *Model) setActiveProject() tea.Cmd {
	if m.mode.Collapsed() || m.sidebar == nil {
		return nil
	}
	entry := m.sidebar.SelectedItem()
	if entry == nil || !entry.isProject() {
		m.setStatusInfo("select a project")
		return nil
	}
	id := entry.projectID()
	m.appState.ActiveProjectID = id
	m.sidebar.SetActive(id)
	m.refreshDetail(false)
	m.setStatusInfo("active project: " + entry.Title())
	return persistAppStateCmd(m.repo, m.appState)
}

func (m *Model) copyProjectLink() {
	id := m.selectedOrActiveProjectID()
	if id == "" {
		m.setStatusInfo("select a project")
		return
	}
	if m.api == nil {
		m.setStatusError("studio api unavailable")
		return
	}
	m.copyWithStatus(m.api.ProjectURL(id), "project link copied")
}

func (m *Model) copyProjectID() {
	id := m.selectedOrActiveProjectID()
	if id == "" {
		m.setStatusInfo("select a project")
		return
	}
	m.copyWithStatus(id, "project id copied")
}

func (m *Model) copyWithStatus(text, success string) bool {
	_, err := copyTextToClipboard(text)
	if err != nil {
		m.setStatusError("copy failed: " + humanizeClipboardError(err))
		return false
	}
	m.setStatusInfo(success)
	return true
}

func (m *Model) selectedOrActiveProjectID() string {
	if !m.mode.Collapsed() && m.sidebar != nil {
		if id := m.sidebar.SelectedProjectID(); id != "" {
			return id
		}
	}
	return m.appState.ActiveProjectID
}

func (m *Model) onSelectionChanged() {
	m.refreshDetail(false)
}

// refreshSidebar rebuilds the render plan from the current machine state and
// pushes it into the list. Selection survives by key where the row still
// exists.
func (m *Model) refreshSidebar() {
	recent := m.rankPolicyOrDefault().RankRecent(m.projects)
	m.projection = m.projectionBuilderOrDefault().Build(SidebarProjectionInput{
		Mode:   m.mode,
		Ready:  m.sync.Ready(),
		Recent: recent,
		Now:    time.Now(),
	})
	if m.sidebar != nil {
		m.sidebar.Apply(m.projection, m.projects, m.appState.ActiveProjectID)
	}
}

func (m *Model) refreshDetail(force bool) {
	if m.detail == nil {
		return
	}
	id := m.selectedOrActiveProjectID()
	if id == "" {
		if m.detail.ProjectID() != "" {
			m.detail.SetProject(nil)
		}
		return
	}
	if !force && id == m.detail.ProjectID() {
		return
	}
	project, ok := m.projectByID(id)
	if !ok {
		m.detail.SetProject(nil)
		return
	}
	m.detail.SetProject(&project)
}

func (m *Model) projectByID(id string) (types.Project, bool) {
	for _, project := range m.projects {
		if project.ID == id {
			return project, true
		}
	}
	return types.Project{}, false
}

func (m *Model) setStatusInfo(status string) {
	m.status = status
	m.statusIsErr = false
}

func (m *Model) setStatusError(status string) {
	m.status = status
	m.statusIsErr = true
}

func (m *Model) log() logging.Logger {
	if m == nil || m.logger == nil {
		return logging.Nop()
	}
	return m.logger
}

func (m *Model) keyString(msg tea.KeyMsg) string {
	if m == nil {
		return msg.String()
	}
	key := msg.String()
	if m.keybindings == nil {
		return key
	}
	return m.keybindings.Remap(key)
}

func (m *Model) keyForCommand(command, fallback string) string {
	if m == nil || m.keybindings == nil {
		return fallback
	}
	return m.keybindings.KeyFor(command, fallback)
}

func renderStatusLine(width int, help, status string) string {
	if width <= 0 {
		return help + " " + status
	}
	helpWidth := lipgloss.Width(help)
	statusWidth := lipgloss.Width(status)
	padding := width - helpWidth - statusWidth
	if padding < statusLinePadding {
		padding = statusLinePadding
	}
	return help + strings.Repeat(" ", padding) + status
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
