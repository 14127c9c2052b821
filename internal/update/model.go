package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"hemma/internal/model"
	"hemma/internal/tracker"
	"hemma/internal/weather"
)

type View string

const (
	ViewBoard  View = "Board"
	ViewWalk   View = "Walk"
	ViewScores View = "Scores"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Board   string
	Walk    string
	Scores  string
	Refresh string
	Help    string
	Quit    string
}

// BoardState is the chore-board pane: the upcoming tasks with a movable
// cursor.
type BoardState struct {
	Items  []tracker.TaskStatus
	Cursor int
}

// WalkState is the dog pane: the countdown task plus the daily feeding
// slots and the weather badge.
type WalkState struct {
	Items   []tracker.TaskStatus
	Feeding model.FeedingState
	Last    model.CompletionEvent
	HasLast bool
	Count   int
	Weather weather.Report
}

// ScoresState shows one leaderboard at a time; tab flips between them.
type ScoresState struct {
	BoardEntries []tracker.Entry
	WalkEntries  []tracker.Entry
	ShowWalk     bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Board          BoardState
	Walk           WalkState
	Scores         ScoresState
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	boardSvc *tracker.Service
	walkSvc  *tracker.Service
	wc       *weather.Client
	location weather.Location
	notices  <-chan string

	// Bubble components used for rich TUI controls
	commandInput   textinput.Model
	scoreTable     table.Model
	walkProgress   progress.Model
	refreshSpinner spinner.Model
	helpModel      help.Model
	refreshing     bool
	now            time.Time
	lastRefresh    time.Time
}

// Deps carries everything the TUI needs from the outside. Notices is the
// channel the tracker notifier writes to; nil disables the notice stream.
type Deps struct {
	Board    *tracker.Service
	Walk     *tracker.Service
	Weather  *weather.Client
	Location weather.Location
	Notices  <-chan string
}

func NewModel(deps Deps) Model {
	m := Model{
		CurrentView: ViewBoard,
		boardSvc:    deps.Board,
		walkSvc:     deps.Walk,
		wc:          deps.Weather,
		location:    deps.Location,
		notices:     deps.Notices,
		now:         time.Now(),
		Keys: GlobalKeyMap{
			Board:   "1",
			Walk:    "2",
			Scores:  "3",
			Refresh: "r",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	input := textinput.New()
	input.Placeholder = "done <task> by <person>"
	input.CharLimit = 120
	m.commandInput = input

	m.scoreTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Member", Width: 16},
			{Title: "Points", Width: 8},
		}),
		table.WithHeight(6),
	)

	m.walkProgress = progress.New(progress.WithDefaultGradient())
	m.refreshSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.helpModel = help.New()
}

// syncBubbleData pushes the latest snapshot into the bubble components.
func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0)
	for _, entry := range m.activeScores() {
		rows = append(rows, table.Row{entry.Name, itoa(entry.Count)})
	}
	m.scoreTable.SetRows(rows)
}

func (m Model) activeScores() []tracker.Entry {
	if m.Scores.ShowWalk {
		return m.Scores.WalkEntries
	}
	return m.Scores.BoardEntries
}

// selectedBoardItem returns the task under the cursor, if any.
func (m Model) selectedBoardItem() (tracker.TaskStatus, bool) {
	if len(m.Board.Items) == 0 {
		return tracker.TaskStatus{}, false
	}
	cursor := m.Board.Cursor
	if cursor < 0 || cursor >= len(m.Board.Items) {
		cursor = 0
	}
	return m.Board.Items[cursor], true
}

// snapshot is one consistent read of both trackers, produced off the
// update loop by refreshCmd.
type snapshot struct {
	Board      []tracker.TaskStatus
	Walk       []tracker.TaskStatus
	BoardScore []tracker.Entry
	WalkScore  []tracker.Entry
	Feeding    model.FeedingState
	Last       model.CompletionEvent
	HasLast    bool
	Count      int
}

type refreshedMsg struct {
	Snap snapshot
	At   time.Time
}

type weatherMsg struct {
	Report weather.Report
}

type tickMsg time.Time

type noticeMsg string

type AppErrorMsg struct {
	Err error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}
