package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hemma/internal/commands"
	"hemma/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := commands.Execute(cmd, commands.Handlers{
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			task, ok := m.findBoardTask(ctx, a.Task)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task named %q", a.Task)}
			}
			if err := m.boardSvc.Complete(ctx, task.ID, a.Actor); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s done by %s", task.Name, a.Actor)}, nil
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			interval := time.Duration(a.Days) * 24 * time.Hour
			task, err := m.boardSvc.AddTask(ctx, a.Name, "", interval, a.Assignee)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %s for %s", task.Name, task.Assignee)}, nil
		},
		Walk: func(a commands.WalkArgs) (commands.Result, error) {
			if err := m.walkSvc.CompleteNext(ctx, a.Actor); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("walk logged for %s", a.Actor)}, nil
		},
		Feed: func(a commands.FeedArgs) (commands.Result, error) {
			slot, err := model.ParseMealSlot(a.Slot)
			if err != nil {
				return commands.Result{}, err
			}
			fed, err := m.walkSvc.ToggleFeeding(ctx, slot)
			if err != nil {
				return commands.Result{}, err
			}
			if fed {
				return commands.Result{Message: fmt.Sprintf("%s feeding done", a.Slot)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("%s feeding unmarked", a.Slot)}, nil
		},
		Points: func(a commands.PointsArgs) (commands.Result, error) {
			svc := m.boardSvc
			if !svc.Config().Roster.Contains(a.Member) && m.walkSvc.Config().Roster.Contains(a.Member) {
				svc = m.walkSvc
			}
			if err := svc.AdjustPoints(ctx, a.Member, a.Delta); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("points updated for %s", a.Member)}, nil
		},
		Reset: func() (commands.Result, error) {
			svc := m.boardSvc
			if m.CurrentView == ViewWalk || (m.CurrentView == ViewScores && m.Scores.ShowWalk) {
				svc = m.walkSvc
			}
			if err := svc.ResetScores(ctx); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "leaderboard reset"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, m.refreshCmd()
}

// findBoardTask matches by exact name first, then case-insensitive prefix,
// so "done vacuum floor 1 by Emmy" and "done Vacuum by Emmy" both land.
func (m Model) findBoardTask(ctx context.Context, name string) (model.RecurringTask, bool) {
	tasks, err := m.boardSvc.Tasks(ctx)
	if err != nil {
		return model.RecurringTask{}, false
	}
	for _, task := range tasks {
		if strings.EqualFold(task.Name, name) {
			return task, true
		}
	}
	lower := strings.ToLower(name)
	for _, task := range tasks {
		if strings.HasPrefix(strings.ToLower(task.Name), lower) {
			return task, true
		}
	}
	return model.RecurringTask{}, false
}

func (m Model) runFeedToggle(slot string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	parsed, err := model.ParseMealSlot(slot)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	fed, err := m.walkSvc.ToggleFeeding(ctx, parsed)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if fed {
		m.Status = StatusBar{Text: slot + " feeding done", IsError: false}
	} else {
		m.Status = StatusBar{Text: slot + " feeding unmarked", IsError: false}
	}
	return m, m.refreshCmd()
}
