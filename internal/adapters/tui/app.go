package tui

import (
	"context"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"archeologist/internal/adapters/tui/styles"
	"archeologist/internal/adapters/tui/views"
	"archeologist/internal/application"
	"archeologist/internal/application/commands"
	"archeologist/internal/camera"
	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

const (
	orbitStep = math.Pi / 24
	zoomStep  = 0.85
)

// Focus says which part of the screen receives keys
type Focus int

const (
	FocusGraph Focus = iota
	FocusClusters
	FocusSearch
	FocusChat
)

// Config is the TUI's share of the application settings
type Config struct {
	Navigation application.NavigationConfig
	Panels     application.PanelConfig
	CellWidth  int
	CellHeight int
}

// App is the main TUI application model
type App struct {
	loader  *application.GraphLoader
	layout  commands.LayoutFactory
	editor  ports.EditorOpener
	copy    func(string) error
	logger  *zap.Logger
	sim     ports.LayoutEngine
	stats   views.Stats
	loading bool

	camera   *camera.Perspective
	frames   *FrameQueue
	animator *camera.Animator
	nav      *application.Navigator
	host     *PointerHost
	panels   *application.PanelController

	graph    *views.GraphView
	clusters *views.ClusterListModel
	artifact *views.ArtifactView
	search   *views.SearchModel
	chat     *views.ChatModel
	help     *views.HelpModel

	focus    Focus
	showHelp bool
	geo      geometry

	message    string
	messageErr bool
}

// Option configures an App
type Option func(*App)

// WithEditor enables opening the selected node's file
func WithEditor(ed ports.EditorOpener) Option {
	return func(a *App) {
		a.editor = ed
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithLayout sets the layout engine used for fetched graphs
func WithLayout(layout commands.LayoutFactory) Option {
	return func(a *App) {
		a.layout = layout
	}
}

// WithClipboard replaces the system clipboard writer
func WithClipboard(write func(string) error) Option {
	return func(a *App) {
		a.copy = write
	}
}

// NewApp creates a new TUI application. The graph is fetched through
// loader on Init; questions go to backend.
func NewApp(loader *application.GraphLoader, backend ports.Backend, cfg Config, opts ...Option) *App {
	a := &App{
		loader: loader,
		copy:   clipboard.WriteAll,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.camera = camera.NewPerspective(cfg.Navigation.OverviewPosition, domain.Origin)
	a.frames = &FrameQueue{}
	a.animator = camera.NewAnimator(a.camera, a.frames, camera.WithLogger(a.logger))
	a.nav = application.NewNavigator(nil, a.animator,
		application.WithNavigationConfig(cfg.Navigation),
		application.WithNavigatorLogger(a.logger))
	a.host = NewPointerHost(cfg.CellWidth, cfg.CellHeight)
	a.panels = application.NewPanelController(a.host, cfg.Panels, application.WithPanelLogger(a.logger))

	a.graph = views.NewGraphView(a.camera)
	a.clusters = views.NewClusterListModel()
	a.artifact = views.NewArtifactView()
	a.search = views.NewSearchModel(a.nav)
	a.chat = views.NewChatModel(backend)
	a.help = views.NewHelpModel()

	a.nav.OnSelectionChanged(a.artifact.SetNode)
	a.panels.OnSizesChanged(func(application.PanelSizes) { a.relayout() })

	return a
}

type graphLoadedMsg struct {
	result application.LoadResult
	err    error
}

type editorFinishedMsg struct{ err error }

// Init starts the first fetch
func (a *App) Init() tea.Cmd {
	return a.load()
}

func (a *App) load() tea.Cmd {
	if a.loading {
		return nil
	}
	a.loading = true
	loader := a.loader
	return func() tea.Msg {
		res, err := loader.Load(context.Background())
		return graphLoadedMsg{result: res, err: err}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.panels.Interrupt()
		a.geo.width, a.geo.height = msg.Width, msg.Height
		a.help.SetSize(msg.Width, msg.Height)
		a.relayout()
		return a, nil

	case tea.BlurMsg:
		a.panels.Interrupt()
		return a, nil

	case frameMsg:
		a.frames.delivered()
		a.frames.Flush(time.Time(msg))
		if a.sim != nil && !a.sim.Settled() {
			a.sim.Step()
		}
		return a, a.nextFrame()

	case graphLoadedMsg:
		return a, a.applyGraph(msg)

	case views.SearchSelectMsg:
		a.focus = FocusGraph
		a.nav.SelectFromSearch(msg.Node)
		return a, a.nextFrame()

	case views.SearchBlurMsg, views.ChatBlurMsg:
		a.focus = FocusGraph
		return a, nil

	case views.ChatReplyMsg:
		_, cmd := a.chat.Update(msg)
		return a, cmd

	case views.CloseHelpMsg:
		a.showHelp = false
		return a, nil

	case editorFinishedMsg:
		if msg.err != nil {
			a.setMessage(msg.err.Error(), true)
		}
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	// Spinner ticks and cursor blinks
	var cmds []tea.Cmd
	var cmd tea.Cmd
	_, cmd = a.chat.Update(msg)
	cmds = append(cmds, cmd)
	if a.search.Focused() {
		_, cmd = a.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) applyGraph(msg graphLoadedMsg) tea.Cmd {
	a.loading = false
	if msg.err != nil {
		a.setMessage("Backend unreachable: graph not loaded", true)
		return nil
	}

	g := msg.result.Graph
	a.nav.SetGraph(g)
	a.search.Reset()
	a.graph.SetGraph(g)
	if a.layout != nil {
		a.sim = a.layout(g)
	}

	infos, err := commands.NewListClustersCommand(g).Execute(context.Background())
	if err != nil {
		a.logger.Warn("cluster list unavailable", zap.Error(err))
	}
	a.clusters.SetClusters(infos)

	a.stats = views.Stats{
		Nodes:    g.NodeCount(),
		Links:    g.LinkCount(),
		Clusters: len(msg.result.Clusters),
		Stale:    msg.result.Stale != nil,
	}
	if msg.result.Stale != nil {
		a.setMessage("Backend unreachable: showing cached graph", true)
	} else {
		a.setMessage("", false)
	}
	return a.nextFrame()
}

// nextFrame schedules a refresh while an animation or the layout is running
func (a *App) nextFrame() tea.Cmd {
	if a.frames.Pending() || (a.sim != nil && !a.sim.Settled()) {
		return a.frames.Tick()
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.showHelp {
		_, cmd := a.help.Update(msg)
		return cmd
	}

	switch a.focus {
	case FocusSearch:
		if key.Matches(msg, views.InputKeys.Quit) {
			return a.quit()
		}
		_, cmd := a.search.Update(msg)
		return tea.Batch(cmd, a.nextFrame())
	case FocusChat:
		if key.Matches(msg, views.InputKeys.Quit) {
			return a.quit()
		}
		_, cmd := a.chat.Update(msg)
		return cmd
	}

	a.message = ""

	switch {
	case key.Matches(msg, views.Keys.Quit):
		return a.quit()

	case key.Matches(msg, views.Keys.Help):
		a.showHelp = true
		return nil

	case key.Matches(msg, views.Keys.Search):
		a.focus = FocusSearch
		a.chat.Blur()
		return a.search.Focus()

	case key.Matches(msg, views.Keys.Chat):
		a.focus = FocusChat
		a.search.Blur()
		return a.chat.Focus()

	case key.Matches(msg, views.Keys.NextPane):
		if a.focus == FocusGraph {
			a.focus = FocusClusters
		} else {
			a.focus = FocusGraph
		}
		return nil

	case key.Matches(msg, views.Keys.Overview):
		a.nav.Overview()
		return a.nextFrame()

	case key.Matches(msg, views.Keys.Clear):
		a.nav.ClearSelection()
		return nil

	case key.Matches(msg, views.Keys.Copy):
		return a.copySelected()

	case key.Matches(msg, views.Keys.Edit):
		return a.openEditor()

	case key.Matches(msg, views.Keys.Reload):
		return a.load()

	case key.Matches(msg, views.Keys.ZoomIn):
		a.camera.Dolly(zoomStep)
		return nil

	case key.Matches(msg, views.Keys.ZoomOut):
		a.camera.Dolly(1 / zoomStep)
		return nil
	}

	if a.focus == FocusClusters {
		return a.handleClusterKey(msg)
	}

	switch {
	case key.Matches(msg, views.Keys.OrbitLeft):
		a.camera.Orbit(-orbitStep, 0)
	case key.Matches(msg, views.Keys.OrbitRight):
		a.camera.Orbit(orbitStep, 0)
	case key.Matches(msg, views.Keys.OrbitUp):
		a.camera.Orbit(0, orbitStep)
	case key.Matches(msg, views.Keys.OrbitDown):
		a.camera.Orbit(0, -orbitStep)
	}
	return nil
}

func (a *App) handleClusterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, views.Keys.Up):
		a.clusters.CursorUp()
	case key.Matches(msg, views.Keys.Down):
		a.clusters.CursorDown()
	case key.Matches(msg, views.Keys.NextPage):
		a.clusters.NextPage()
	case key.Matches(msg, views.Keys.PrevPage):
		a.clusters.PrevPage()
	case key.Matches(msg, views.Keys.Select):
		if id, ok := a.clusters.Selected(); ok {
			a.nav.FocusCluster(id)
			return a.nextFrame()
		}
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	g := a.geo
	switch msg.Action {
	case tea.MouseActionMotion:
		a.host.Move(msg.X, msg.Y)
		return nil
	case tea.MouseActionRelease:
		a.host.Release()
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if g.inGraph(msg.X, msg.Y) {
			a.camera.Dolly(zoomStep)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if g.inGraph(msg.X, msg.Y) {
			a.camera.Dolly(1 / zoomStep)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	switch {
	case msg.X == g.leftSplit && msg.Y < g.mainRows:
		a.panels.PointerDown(application.HandleLeft)
		return nil
	case msg.X == g.rightSplit && msg.Y < g.mainRows:
		a.panels.PointerDown(application.HandleRight)
		return nil
	case msg.X > g.rightSplit && msg.Y == g.subSplit:
		a.panels.PointerDown(application.HandleSub)
		return nil
	}

	switch {
	case g.inGraph(msg.X, msg.Y):
		if row, ok := a.dropdownRow(msg.Y); ok {
			return a.search.Pick(row)
		}
		a.blurInputs()
		a.focus = FocusGraph
		if n := a.graph.NodeAt(msg.X-g.graphCol, msg.Y, g.graphCols, g.graphRows); n != nil {
			a.nav.FocusNode(n)
			return a.nextFrame()
		}
	case msg.X > g.leftSplit && msg.X < g.rightSplit && msg.Y >= g.graphRows && msg.Y < g.mainRows:
		a.focus = FocusSearch
		a.chat.Blur()
		return a.search.Focus()
	case msg.X < g.leftSplit && msg.Y < g.mainRows:
		a.blurInputs()
		a.focus = FocusClusters
		// border and title rows precede the list
		if id, ok := a.clusters.At(msg.Y - 2); ok {
			a.nav.FocusCluster(id)
			return a.nextFrame()
		}
	case msg.X > g.rightSplit && msg.Y > g.subSplit && msg.Y < g.mainRows:
		a.focus = FocusChat
		a.search.Blur()
		return a.chat.Focus()
	}
	return nil
}

// dropdownRow maps a graph row to a search result row when the dropdown
// covers it
func (a *App) dropdownRow(y int) (int, bool) {
	lines := a.search.DropdownLines(a.geo.graphCols)
	top := a.geo.graphRows - len(lines)
	if len(lines) == 0 || y < top {
		return 0, false
	}
	return y - top, true
}

func (a *App) blurInputs() {
	a.search.Blur()
	a.chat.Blur()
}

func (a *App) copySelected() tea.Cmd {
	n := a.nav.Selected()
	if n == nil {
		return nil
	}
	if err := a.copy(n.ID); err != nil {
		a.setMessage("Copy failed: "+err.Error(), true)
		return nil
	}
	a.setMessage("Copied "+n.ID, false)
	return nil
}

func (a *App) openEditor() tea.Cmd {
	n := a.nav.Selected()
	if a.editor == nil || n == nil {
		return nil
	}

	cmd, err := a.editor.Command(n.File, n.StartLine)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	a.panels.Interrupt()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (a *App) quit() tea.Cmd {
	a.panels.Interrupt()
	return tea.Quit
}

func (a *App) setMessage(msg string, isErr bool) {
	a.message = msg
	a.messageErr = isErr
}

func (a *App) relayout() {
	a.geo = computeGeometry(a.geo.width, a.geo.height, a.panels.Sizes(), a.host)
	a.panels.SetViewport(a.geo.viewportWidth, a.geo.subBottom)
	a.clusters.SetRows(max(a.geo.mainRows-4, 1))
}

// View renders the current view
func (a *App) View() string {
	g := a.geo
	if g.width == 0 || g.height == 0 {
		return ""
	}
	if a.showHelp {
		return a.help.View()
	}

	left := views.RenderPane("Clusters", a.clusters.View(g.leftCols-4, a.focus == FocusClusters), g.leftCols, g.mainRows, a.focus == FocusClusters)

	canvas := a.graph.Render(g.graphCols, g.graphRows, a.nav.Selected())
	canvas = overlayBottom(canvas, a.search.DropdownLines(g.graphCols), g.graphCols)
	center := lipgloss.JoinVertical(lipgloss.Left, canvas, a.search.View(g.graphCols))

	artifact := views.RenderPane("Artifact", a.artifact.View(g.rightCols-4, g.artifactRows-3), g.rightCols, g.artifactRows, false)
	chat := views.RenderPane("Ask", a.chat.View(g.rightCols-4, g.subRows-3), g.rightCols, g.subRows, a.focus == FocusChat)
	right := lipgloss.JoinVertical(lipgloss.Left, artifact, a.splitter(application.HandleSub, g.rightCols), chat)

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		left,
		a.splitter(application.HandleLeft, g.mainRows),
		lipgloss.NewStyle().Width(g.graphCols).Render(center),
		a.splitter(application.HandleRight, g.mainRows),
		right,
	)
	status := views.RenderStatusBar(g.width, a.stats, a.message, a.messageErr)
	return lipgloss.JoinVertical(lipgloss.Left, main, status)
}

func (a *App) splitter(h application.Handle, length int) string {
	style := styles.Splitter
	if a.panels.Dragging(h) {
		style = styles.SplitterActive
	}
	if h == application.HandleSub {
		return style.Render(repeat("─", length))
	}
	lines := make([]string, length)
	for i := range lines {
		lines[i] = "│"
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
