package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/headlines/internal/aggregate"
	"github.com/abelbrown/headlines/internal/config"
	"github.com/abelbrown/headlines/internal/news"
	"github.com/abelbrown/headlines/internal/selection"
)

// View identifies one of the four screens.
type View int

const (
	ViewTopics View = iota
	ViewRegions
	ViewNews
	ViewStarred
)

var viewNames = [...]string{"TOPICS", "REGIONS", "NEWS", "STARRED"}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "UNKNOWN"
	}
	return viewNames[v]
}

var layouts = []string{config.LayoutGrid, config.LayoutList, config.LayoutCompact}

// nextLayout returns the layout after l in cycle order.
func nextLayout(l string) string {
	for i, v := range layouts {
		if v == l {
			return layouts[(i+1)%len(layouts)]
		}
	}
	return config.LayoutGrid
}

// RunFunc performs one aggregation. It is called off the update loop.
type RunFunc func(ctx context.Context, topics []string, regions []selection.Region) (*aggregate.Result, error)

// Bookmarks is the bookmark set as the UI sees it.
type Bookmarks interface {
	IsBookmarked(link string) bool
	Toggle(ctx context.Context, link string) (bool, error)
	Filter(articles []news.Article) []news.Article
	Len() int
}

// Config wires an App to its collaborators.
type Config struct {
	Selection *selection.Selection
	Bookmarks Bookmarks
	Run       RunFunc
	Layout    string // initial layout for both article views
}

// App is the root Bubble Tea model.
// App does not fetch or persist on its own: runs go through Run and
// bookmark writes go through Bookmarks.
type App struct {
	sel       *selection.Selection
	bookmarks Bookmarks
	run       RunFunc

	view    View
	cursors [4]int
	layouts [4]string

	input     textinput.Model
	inputMode bool
	showDebug bool

	spinner spinner.Model
	loading bool
	seq     int
	cancel  context.CancelFunc

	result   *aggregate.Result
	articles []news.Article
	runErr   error

	status    string
	statusErr bool

	width  int
	height int
	ready  bool
	now    func() time.Time
}

// NewApp creates an App from cfg. A nil Selection starts from the default
// worldwide edition with no topics.
func NewApp(cfg Config) App {
	sel := cfg.Selection
	if sel == nil {
		sel = selection.New(selection.Worldwide)
	}

	layout := cfg.Layout
	if layout == "" {
		layout = config.LayoutGrid
	}

	ti := textinput.New()
	ti.Placeholder = "Custom topic (e.g. 'Python')"
	ti.CharLimit = 60
	ti.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StatusBarKey

	a := App{
		sel:       sel,
		bookmarks: cfg.Bookmarks,
		run:       cfg.Run,
		view:      ViewTopics,
		input:     ti,
		spinner:   s,
		now:       time.Now,
	}
	a.layouts[ViewNews] = layout
	a.layouts[ViewStarred] = layout
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if a.inputMode {
			return a.handleInputKey(msg)
		}
		return a.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case RunComplete:
		return a.handleRunComplete(msg), nil
	}

	return a, nil
}

func (a App) handleRunComplete(msg RunComplete) App {
	if msg.Seq != a.seq {
		return a // superseded
	}
	a.loading = false
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	if msg.Err == nil && msg.Result == nil {
		msg.Result = &aggregate.Result{}
	}
	if msg.Err != nil {
		a.runErr = msg.Err
		a.result = nil
		a.articles = nil
		a.setError(msg.Err)
		return a
	}

	a.runErr = nil
	a.result = msg.Result
	a.articles = msg.Result.Articles
	a.cursors[ViewNews] = 0
	a.cursors[ViewStarred] = 0

	if failed := msg.Result.Failed(); failed > 0 {
		a.setError(fmt.Errorf("%d OF %d FEEDS FAILED", failed, len(msg.Result.Pairs)))
	} else {
		a.setStatus(msg.Result.Summary())
	}
	return a
}

// handleKeyMsg processes keyboard input outside the topic input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status, a.statusErr = "", false

	switch {
	case key.Matches(msg, keys.Quit):
		if a.cancel != nil {
			a.cancel()
			a.cancel = nil
		}
		return a, tea.Quit

	case key.Matches(msg, keys.Tab):
		a.view = (a.view + 1) % View(len(viewNames))
		return a, nil

	case key.Matches(msg, keys.BackTab):
		a.view = (a.view + View(len(viewNames)) - 1) % View(len(viewNames))
		return a, nil

	case key.Matches(msg, keys.Details):
		a.showDebug = !a.showDebug && a.result != nil
		return a, nil
	}

	if a.showDebug {
		return a, nil
	}

	switch a.view {
	case ViewTopics:
		return a.handleTopicsKey(msg)
	case ViewRegions:
		return a.handleRegionsKey(msg)
	default:
		return a.handleArticlesKey(msg)
	}
}

func (a App) handleTopicsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cells := a.topicCells()
	cols := topicColumns(a.width)
	cur := a.cursors[ViewTopics]

	switch {
	case key.Matches(msg, keys.Up):
		if cur-cols >= 0 {
			cur -= cols
		}
	case key.Matches(msg, keys.Down):
		if cur+cols < len(cells) {
			cur += cols
		}
	case key.Matches(msg, keys.Left):
		if cur > 0 {
			cur--
		}
	case key.Matches(msg, keys.Right):
		if cur < len(cells)-1 {
			cur++
		}
	case key.Matches(msg, keys.Home):
		cur = 0
	case key.Matches(msg, keys.End):
		cur = len(cells) - 1

	case key.Matches(msg, keys.Toggle):
		if cur < len(cells) {
			c := cells[cur]
			if c.custom {
				a.sel.RemoveCustom(c.topic)
			} else if _, err := a.sel.TogglePreset(c.topic); err != nil {
				a.setError(err)
			}
		}
	case key.Matches(msg, keys.All):
		a.sel.SelectAll()
	case key.Matches(msg, keys.Clear):
		a.sel.ClearTopics()
	case key.Matches(msg, keys.NewTopic):
		a.inputMode = true
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink
	case key.Matches(msg, keys.DropTopic):
		if custom := a.sel.CustomTopics(); len(custom) > 0 {
			last := custom[len(custom)-1]
			a.sel.RemoveCustom(last)
			a.setStatus("REMOVED " + last)
		}
	case key.Matches(msg, keys.Run):
		return a.startRun()
	}

	// Custom topics can disappear under the cursor.
	if n := len(a.topicCells()); cur >= n {
		cur = n - 1
	}
	if cur < 0 {
		cur = 0
	}
	a.cursors[ViewTopics] = cur
	return a, nil
}

func (a App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		topic, err := a.sel.AddCustom(a.input.Value())
		a.inputMode = false
		a.input.Blur()
		if err != nil {
			a.setError(err)
		} else {
			a.setStatus("ADDED " + topic)
		}
		return a, nil

	case tea.KeyEsc, tea.KeyCtrlC:
		a.inputMode = false
		a.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) handleRegionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := a.cursors[ViewRegions]
	n := len(selection.Regions)

	switch {
	case key.Matches(msg, keys.Up):
		if cur > 0 {
			cur--
		}
	case key.Matches(msg, keys.Down):
		if cur < n-1 {
			cur++
		}
	case key.Matches(msg, keys.Home):
		cur = 0
	case key.Matches(msg, keys.End):
		cur = n - 1
	case key.Matches(msg, keys.Toggle):
		r := selection.Regions[cur]
		if _, err := a.sel.ToggleRegion(r.Code); err != nil {
			a.setError(err)
		}
	case key.Matches(msg, keys.Run):
		return a.startRun()
	}

	a.cursors[ViewRegions] = cur
	return a, nil
}

// handleArticlesKey serves both the news and starred views.
func (a App) handleArticlesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := a.visibleArticles()
	cur := a.cursors[a.view]

	// Up and down move a whole row of cards in the grid.
	step := 1
	if a.layouts[a.view] == config.LayoutGrid {
		step = cardColumns(a.width)
	}

	switch {
	case key.Matches(msg, keys.Up):
		if cur >= step {
			cur -= step
		}
	case key.Matches(msg, keys.Down):
		if cur+step < len(list) {
			cur += step
		}
	case key.Matches(msg, keys.Left):
		if cur > 0 {
			cur--
		}
	case key.Matches(msg, keys.Right):
		if cur < len(list)-1 {
			cur++
		}
	case key.Matches(msg, keys.Home):
		cur = 0
	case key.Matches(msg, keys.End):
		if len(list) > 0 {
			cur = len(list) - 1
		}
	case key.Matches(msg, keys.Layout):
		a.layouts[a.view] = nextLayout(a.layouts[a.view])
		a.setStatus("LAYOUT " + strings.ToUpper(a.layouts[a.view]))
	case key.Matches(msg, keys.Star):
		if cur < len(list) {
			a.toggleBookmark(list[cur].Link)
		}
	case key.Matches(msg, keys.Run):
		if a.view == ViewNews && !a.loading {
			return a.startRun()
		}
	}

	// The starred list shrinks when an entry is removed.
	if n := len(a.visibleArticles()); cur >= n {
		cur = n - 1
	}
	if cur < 0 {
		cur = 0
	}
	a.cursors[a.view] = cur
	return a, nil
}

func (a *App) toggleBookmark(link string) {
	if a.bookmarks == nil {
		return
	}
	on, err := a.bookmarks.Toggle(context.Background(), link)
	if err != nil {
		a.setError(fmt.Errorf("bookmark not saved: %w", err))
		return
	}
	if on {
		a.setStatus("STARRED")
	} else {
		a.setStatus("UNSTARRED")
	}
}

// startRun cancels any in-flight run and starts a new one.
func (a App) startRun() (tea.Model, tea.Cmd) {
	topics := a.sel.Topics()
	if len(topics) == 0 {
		a.setError(aggregate.ErrNoTopics)
		return a, nil
	}
	if a.run == nil {
		a.setError(errors.New("no fetcher configured"))
		return a, nil
	}

	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.seq++
	a.loading = true
	a.runErr = nil
	a.view = ViewNews

	seq := a.seq
	regions := a.sel.Regions()
	run := a.run
	cmd := func() tea.Msg {
		res, err := run(ctx, topics, regions)
		return RunComplete{Seq: seq, Result: res, Err: err}
	}
	return a, tea.Batch(cmd, a.spinner.Tick)
}

func (a *App) setStatus(s string) {
	a.status, a.statusErr = s, false
}

func (a *App) setError(err error) {
	a.status, a.statusErr = strings.ToUpper(err.Error()), true
}

// visibleArticles returns the articles of the current article view.
func (a App) visibleArticles() []news.Article {
	if a.view == ViewStarred {
		if a.bookmarks == nil {
			return nil
		}
		return a.bookmarks.Filter(a.articles)
	}
	return a.articles
}

func (a App) isBookmarked(link string) bool {
	return a.bookmarks != nil && a.bookmarks.IsBookmarked(link)
}

// topicCell is one entry of the topic grid.
type topicCell struct {
	topic    string
	custom   bool
	selected bool
}

func (a App) topicCells() []topicCell {
	cells := make([]topicCell, 0, len(selection.PresetTopics)+len(a.sel.CustomTopics()))
	for _, t := range selection.PresetTopics {
		cells = append(cells, topicCell{topic: t, selected: a.sel.IsPresetSelected(t)})
	}
	for _, t := range a.sel.CustomTopics() {
		cells = append(cells, topicCell{topic: t, custom: true, selected: true})
	}
	return cells
}

// View implements tea.Model.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.showDebug && a.result != nil {
		return debugOverlay(a.result, a.width, a.height-1) + "\n" + debugStatusBar(a.width)
	}

	var b strings.Builder
	b.WriteString(renderTabs(a.view, a.width))
	b.WriteString("\n")
	b.WriteString(Header.Render(a.header()))
	b.WriteString(" ")
	b.WriteString(Subtitle.Render(a.subtitle()))
	b.WriteString("\n\n")

	// tabs, header, blank line, status bar
	bodyHeight := a.height - 4
	if a.inputMode {
		bodyHeight--
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	b.WriteString(a.body(bodyHeight))
	b.WriteString("\n")

	if a.inputMode {
		b.WriteString(InputBar.Width(a.width).Render("+ " + a.input.View()))
		b.WriteString("\n")
	}
	b.WriteString(renderStatusBar(a.status, a.statusErr, a.view, a.width))
	return b.String()
}

func (a App) header() string {
	switch a.view {
	case ViewTopics:
		return "SELECT TOPICS"
	case ViewRegions:
		return "SELECT REGIONS"
	case ViewNews:
		return "LATEST NEWS"
	default:
		return "STARRED"
	}
}

func (a App) subtitle() string {
	switch a.view {
	case ViewTopics:
		custom := len(a.sel.CustomTopics())
		if custom == 0 {
			return fmt.Sprintf("%d SELECTED", a.sel.TopicCount())
		}
		return fmt.Sprintf("%d SELECTED (%d PRESET, %d CUSTOM)", a.sel.TopicCount(), len(a.sel.PresetSelection()), custom)
	case ViewRegions:
		return fmt.Sprintf("%d SELECTED", len(a.sel.Regions()))
	case ViewNews:
		if a.result != nil {
			return a.result.Summary()
		}
		return ""
	default:
		if n := len(a.visibleArticles()); n > 0 {
			return fmt.Sprintf("%d SAVED ARTICLES", n)
		}
		return "YOUR SAVED ARTICLES"
	}
}

func (a App) body(height int) string {
	switch a.view {
	case ViewTopics:
		return renderTopics(a.topicCells(), a.cursors[ViewTopics], a.width, height)
	case ViewRegions:
		return renderRegions(a.sel, a.cursors[ViewRegions], height)
	case ViewNews:
		switch {
		case a.loading:
			return HelpStyle.Render(a.spinner.View() + " FETCHING HEADLINES...")
		case a.runErr != nil:
			return ErrorStyle.Render("RUN FAILED: " + a.runErr.Error())
		case a.result == nil:
			return HelpStyle.Render("NO NEWS YET. SELECT TOPICS AND PRESS ENTER.")
		case len(a.articles) == 0:
			return HelpStyle.Render("NO ARTICLES FOUND. TRY DIFFERENT TOPICS.")
		}
	default:
		if len(a.visibleArticles()) == 0 {
			return HelpStyle.Render("NO STARRED ARTICLES. PRESS 's' ON A STORY TO SAVE IT.")
		}
	}
	return renderArticles(a.visibleArticles(), a.cursors[a.view], a.layouts[a.view], a.isBookmarked, a.width, height, a.now())
}

// CurrentView returns the active view (for testing).
func (a App) CurrentView() View {
	return a.view
}

// Cursor returns the cursor of the active view (for testing).
func (a App) Cursor() int {
	return a.cursors[a.view]
}

// Layout returns the layout of the active article view (for testing).
func (a App) Layout() string {
	return a.layouts[a.view]
}

// Articles returns the current news collection (for testing).
func (a App) Articles() []news.Article {
	return a.articles
}

// Status returns the status bar message and whether it is an error (for testing).
func (a App) Status() (string, bool) {
	return a.status, a.statusErr
}

// Loading reports whether a run is in flight (for testing).
func (a App) Loading() bool {
	return a.loading
}

// DebugVisible reports whether the run details overlay is shown (for testing).
func (a App) DebugVisible() bool {
	return a.showDebug
}

// InputActive reports whether the custom topic input has focus (for testing).
func (a App) InputActive() bool {
	return a.inputMode
}
