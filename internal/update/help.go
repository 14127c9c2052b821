package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"hemma/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const commandGuide = `## Commands

- ` + "`done <task> by <person>`" + ` — mark a chore finished
- ` + "`add <name> every <days> for <person>`" + ` — register a chore
- ` + "`walk <person>`" + ` — log a dog walk
- ` + "`feed morning|evening`" + ` — toggle a feeding slot
- ` + "`points <person> +1|-1`" + ` — adjust the leaderboard
- ` + "`reset`" + ` — clear the visible leaderboard
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	}) + "\n" + views.RenderMarkdown(commandGuide)
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Board, Action: "switch to Board"},
		{Key: m.Keys.Walk, Action: "switch to Walk"},
		{Key: m.Keys.Scores, Action: "switch to Scores"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Refresh, Action: "refresh from store"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewBoard:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter", Action: "mark selected task done"},
		}
	case ViewWalk:
		return []KeyBinding{
			{Key: "enter", Action: "log a walk"},
			{Key: "m/e", Action: "toggle morning/evening feeding"},
		}
	case ViewScores:
		return []KeyBinding{
			{Key: "tab", Action: "switch leaderboard"},
			{Key: "j/k", Action: "scroll table"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
