package tui

import (
	"fmt"
	"time"

	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/internal/ui"
	"github.com/coursecast/coursecast/key"
	"github.com/coursecast/coursecast/player"
	"github.com/coursecast/coursecast/style"
	"github.com/coursecast/coursecast/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble holds the whole UI state. The playback runtime is reached
// only through player, never touched directly.
type statefulBubble struct {
	state         state
	statesHistory stateHistory

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	coursesC  list.Model
	progressC progress.Model
	helpC     help.Model

	courses *catalog.Catalog
	query   catalog.Query
	player  *player.Player

	// view is the last projection of the player surface
	view          playerView
	resumeNoticed bool

	lastError error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

// raiseError shows err on the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState switches to s and remembers where it came from.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != errorState {
		b.statesHistory.push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if s, ok := b.statesHistory.pop(); ok {
		b.setState(s)
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.coursesC.SetSize(listWidth, listHeight)
	b.coursesC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.progressC.Width = b.width
	b.helpC.Width = listWidth
}

func newBubble(options *Options, courses *catalog.Catalog, p *player.Player) *statefulBubble {
	bubble := statefulBubble{
		keymap:        newStatefulKeymap(),
		courses:       courses,
		query:         options.Query,
		player:        p,
		notifier:      &ui.Model{},
		options:       options,
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.coursesC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.coursesC.KeyMap = bubble.keymap.forList()
	bubble.coursesC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
	bubble.coursesC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return bubble.keymap.FullHelp()[0]
	}
	bubble.coursesC.Title = "Courses"
	bubble.coursesC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	bubble.coursesC.Styles.NoItems = paddingStyle
	bubble.coursesC.StatusMessageLifetime = 5 * time.Second
	bubble.coursesC.SetShowPagination(false)
	bubble.coursesC.SetStatusBarItemName("course", "courses")
	bubble.coursesC.SetFilteringEnabled(false)

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search courses (v%s)", constant.Version)
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = "> "
	bubble.inputC.SetValue(options.Query.Search)

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
