package views

import (
	"fmt"
	"strings"
)

type BoardItemData struct {
	ID       string
	Name     string
	Icon     string
	Assignee string
	Urgency  string
	DueIn    string
}

type BoardPanelData struct {
	Items      []BoardItemData
	SelectedID string
}

type ScoreRowData struct {
	Name  string
	Count int
}

type ScoresPanelData struct {
	Title     string
	TableView string
	Rows      []ScoreRowData
}

type WalkPanelData struct {
	Countdown    string
	Urgency      string
	ProgressView string
	Assignee     string
	LastWalk     string
	WalksSoFar   int
	Weather      string
}

type FeedingSlotData struct {
	Fed bool
	At  string
}

type FeedingPanelData struct {
	Tracked bool
	Morning FeedingSlotData
	Evening FeedingSlotData
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderBoardPanel(data BoardPanelData) string {
	var b strings.Builder
	b.WriteString("this week:\n")
	b.WriteString("actions: [j/k]move [enter]mark done [/]command\n")
	if len(data.Items) == 0 {
		b.WriteString("(nothing due this week)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s %s", cursor, item.Icon, item.Name)
		if item.Assignee != "" {
			line += " · " + item.Assignee
		}
		line += " · " + item.DueIn
		b.WriteString(urgencyStyle(item.Urgency).Render(line) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderScoresPanel(data ScoresPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	b.WriteString("actions: [tab]switch board [/]command\n")
	b.WriteString(data.TableView + "\n")
	for i, row := range data.Rows {
		medal := "  "
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		b.WriteString(fmt.Sprintf("%s %s: %d\n", medal, row.Name, row.Count))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderWalkPanel(data WalkPanelData) string {
	var b strings.Builder
	b.WriteString("next walk:\n")
	b.WriteString(urgencyStyle(data.Urgency).Render("  "+data.Countdown) + "\n")
	b.WriteString(data.ProgressView + "\n")
	if data.Assignee != "" {
		b.WriteString(fmt.Sprintf("turn: %s\n", data.Assignee))
	}
	if data.LastWalk != "" {
		b.WriteString(fmt.Sprintf("last walk: %s\n", data.LastWalk))
	}
	b.WriteString(fmt.Sprintf("walks this week: %d\n", data.WalksSoFar))
	if data.Weather != "" {
		b.WriteString(fmt.Sprintf("outside: %s\n", data.Weather))
	}
	b.WriteString("actions: [enter]log walk [m/e]feeding [/]command")
	return b.String()
}

func RenderFeedingPanel(data FeedingPanelData) string {
	if !data.Tracked {
		return ""
	}
	var b strings.Builder
	b.WriteString("feeding today:\n")
	b.WriteString("  🌅 morning: " + renderFeedingSlot(data.Morning) + "\n")
	b.WriteString("  🌙 evening: " + renderFeedingSlot(data.Evening))
	return b.String()
}

func renderFeedingSlot(slot FeedingSlotData) string {
	if !slot.Fed {
		return "—"
	}
	if slot.At == "" {
		return "✔"
	}
	return "✔ " + slot.At
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
