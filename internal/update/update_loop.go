package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"hemma/internal/views"
	"hemma/internal/weather"
)

// refreshEvery bounds how stale the rendered snapshot can get when the
// user is idle. Key actions refresh immediately.
const refreshEvery = 15 * time.Second

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refreshCmd(), tickCmd()}
	if m.wc != nil {
		cmds = append(cmds, m.weatherCmd())
	}
	if m.notices != nil {
		cmds = append(cmds, waitForNoticeCmd(m.notices))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			return m.openPalette(""), nil
		case m.Keys.Board:
			m.CurrentView = ViewBoard
			return m, nil
		case m.Keys.Walk:
			m.CurrentView = ViewWalk
			return m, nil
		case m.Keys.Scores:
			m.CurrentView = ViewScores
			return m, nil
		case m.Keys.Refresh:
			if !m.refreshing {
				m.refreshing = true
				m.Status = StatusBar{Text: "refreshing", IsError: false}
				return m, tea.Batch(m.refreshSpinner.Tick, m.refreshCmd(), m.weatherCmdIfConfigured())
			}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewBoard:
			return m.handleBoardKey(typed)
		case ViewWalk:
			return m.handleWalkKey(typed)
		case ViewScores:
			return m.handleScoresKey(typed)
		}

	case spinner.TickMsg:
		if m.refreshing {
			var cmd tea.Cmd
			m.refreshSpinner, cmd = m.refreshSpinner.Update(typed)
			return m, cmd
		}

	case refreshedMsg:
		m.refreshing = false
		m.lastRefresh = typed.At
		m.now = typed.At
		m.Board.Items = typed.Snap.Board
		if m.Board.Cursor >= len(m.Board.Items) {
			m.Board.Cursor = 0
		}
		m.Walk.Items = typed.Snap.Walk
		m.Walk.Feeding = typed.Snap.Feeding
		m.Walk.Last = typed.Snap.Last
		m.Walk.HasLast = typed.Snap.HasLast
		m.Walk.Count = typed.Snap.Count
		m.Scores.BoardEntries = typed.Snap.BoardScore
		m.Scores.WalkEntries = typed.Snap.WalkScore
		if item, ok := m.selectedBoardItem(); ok {
			m.SelectedTaskID = item.ID
		} else {
			m.SelectedTaskID = ""
		}
		m.syncBubbleData()
		return m, nil

	case weatherMsg:
		m.Walk.Weather = typed.Report
		return m, nil

	case tickMsg:
		m.now = time.Time(typed)
		cmds := []tea.Cmd{tickCmd()}
		if m.now.Sub(m.lastRefresh) >= refreshEvery {
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)

	case noticeMsg:
		m.Status = StatusBar{Text: string(typed), IsError: false}
		return m, waitForNoticeCmd(m.notices)

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.refreshing = false
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.Board.Cursor < len(m.Board.Items)-1 {
			m.Board.Cursor++
		}
	case "k", "up":
		if m.Board.Cursor > 0 {
			m.Board.Cursor--
		}
	case "enter":
		if item, ok := m.selectedBoardItem(); ok {
			return m.openPalette("done " + item.Name + " by "), nil
		}
	}
	if item, ok := m.selectedBoardItem(); ok {
		m.SelectedTaskID = item.ID
	}
	return m, nil
}

func (m Model) handleWalkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.openPalette("walk "), nil
	case "m":
		return m.runFeedToggle("morning")
	case "e":
		return m.runFeedToggle("evening")
	}
	return m, nil
}

func (m Model) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.Scores.ShowWalk = !m.Scores.ShowWalk
		m.syncBubbleData()
	case "j", "down", "k", "up":
		var cmd tea.Cmd
		m.scoreTable, cmd = m.scoreTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) openPalette(prefill string) Model {
	m.Palette.Active = true
	m.Palette.Input = prefill
	m.commandInput.SetValue(prefill)
	m.commandInput.CursorEnd()
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active", IsError: false}
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewBoard:
		leftPane = m.renderBoardView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewWalk:
		leftPane = m.renderWalkView()
		rightPane = m.renderFeedingView() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewScores:
		leftPane = m.renderScoresView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	notificationView := ""
	if m.refreshing {
		notificationView = "refresh: " + m.refreshSpinner.View() + " running"
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("hemma | view: %s | %s", m.CurrentView, m.now.Format("Mon 15:04:05")),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s board | %s walk | %s scores | / cmd | %s refresh | %s help | %s quit", m.Keys.Board, m.Keys.Walk, m.Keys.Scores, m.Keys.Refresh, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderBoardView() string {
	items := make([]views.BoardItemData, 0, len(m.Board.Items))
	for _, item := range m.Board.Items {
		items = append(items, views.BoardItemData{
			ID:       item.ID,
			Name:     item.Name,
			Icon:     item.Icon,
			Assignee: item.Assignee,
			Urgency:  string(item.Urgency),
			DueIn:    humanize.Time(item.NextDue),
		})
	}
	return views.RenderBoardPanel(views.BoardPanelData{
		Items:      items,
		SelectedID: m.SelectedTaskID,
	})
}

func (m Model) renderWalkView() string {
	data := views.WalkPanelData{
		Countdown:  "--:--:--",
		Urgency:    "Normal",
		WalksSoFar: m.Walk.Count,
	}
	if len(m.Walk.Items) > 0 {
		item := m.Walk.Items[0]
		remaining := item.NextDue.Sub(m.now)
		data.Countdown = formatCountdown(remaining)
		data.Urgency = string(item.Urgency)
		data.Assignee = item.Assignee
		if item.Interval > 0 {
			elapsed := 1 - remaining.Seconds()/item.Interval.Seconds()
			data.ProgressView = m.walkProgress.ViewAs(clamp01(elapsed))
		}
	}
	if m.Walk.HasLast {
		data.LastWalk = fmt.Sprintf("%s, %s", m.Walk.Last.Actor, humanize.Time(m.Walk.Last.At))
	}
	if m.Walk.Weather.Label != "" {
		data.Weather = formatWeather(m.Walk.Weather)
	}
	return views.RenderWalkPanel(data)
}

func (m Model) renderFeedingView() string {
	state := m.Walk.Feeding
	data := views.FeedingPanelData{Tracked: true}
	if state.Morning.Fed {
		data.Morning = views.FeedingSlotData{Fed: true, At: state.Morning.At.Format("15:04")}
	}
	if state.Evening.Fed {
		data.Evening = views.FeedingSlotData{Fed: true, At: state.Evening.At.Format("15:04")}
	}
	return views.RenderFeedingPanel(data)
}

func (m Model) renderScoresView() string {
	title := "chore leaderboard"
	if m.Scores.ShowWalk {
		title = "walk leaderboard"
	}
	entries := m.activeScores()
	rows := make([]views.ScoreRowData, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, views.ScoreRowData{Name: entry.Name, Count: entry.Count})
	}
	return views.RenderScoresPanel(views.ScoresPanelData{
		Title:     title,
		TableView: m.scoreTable.View(),
		Rows:      rows,
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.Value())
}

func (m Model) refreshCmd() tea.Cmd {
	board := m.boardSvc
	walk := m.walkSvc
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		var snap snapshot
		var err error
		if board != nil {
			if _, _, err = board.CheckResets(ctx, now); err != nil {
				return AppErrorMsg{Err: err}
			}
			if snap.Board, err = board.Upcoming(ctx); err != nil {
				return AppErrorMsg{Err: err}
			}
			if snap.BoardScore, err = board.Leaderboard(ctx); err != nil {
				return AppErrorMsg{Err: err}
			}
		}
		if walk != nil {
			if _, _, err = walk.CheckResets(ctx, now); err != nil {
				return AppErrorMsg{Err: err}
			}
			if snap.Walk, err = walk.Upcoming(ctx); err != nil {
				return AppErrorMsg{Err: err}
			}
			if snap.WalkScore, err = walk.Leaderboard(ctx); err != nil {
				return AppErrorMsg{Err: err}
			}
			if walk.Config().TracksFeeding {
				feeding, err := walk.Feeding(ctx)
				if err != nil {
					return AppErrorMsg{Err: err}
				}
				snap.Feeding = feeding
			}
			last, ok, err := walk.LastCompleted(ctx)
			if err != nil {
				return AppErrorMsg{Err: err}
			}
			snap.Last = last
			snap.HasLast = ok
			count, err := walk.CompletedCount(ctx)
			if err != nil {
				return AppErrorMsg{Err: err}
			}
			snap.Count = count
		}
		return refreshedMsg{Snap: snap, At: now}
	}
}

func (m Model) weatherCmd() tea.Cmd {
	client := m.wc
	loc := m.location
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		report, err := client.Current(ctx, loc)
		if err != nil {
			report = weather.Fallback()
		}
		return weatherMsg{Report: report}
	}
}

func (m Model) weatherCmdIfConfigured() tea.Cmd {
	if m.wc == nil {
		return nil
	}
	return m.weatherCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForNoticeCmd(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(text)
	}
}

func formatWeather(report weather.Report) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %.1f°C", report.Emoji, report.Label, report.TemperatureC))
}
