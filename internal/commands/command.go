package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeDone   Type = "done"
	TypeAdd    Type = "add"
	TypeWalk   Type = "walk"
	TypeFeed   Type = "feed"
	TypePoints Type = "points"
	TypeReset  Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// DoneArgs: "done <task name> by <person>".
type DoneArgs struct {
	Task  string
	Actor string
}

// AddArgs: "add <name> [every <days>] [for <person>]".
type AddArgs struct {
	Name     string
	Days     int
	Assignee string
}

// WalkArgs: "walk <person>".
type WalkArgs struct {
	Actor string
}

// FeedArgs: "feed morning|evening".
type FeedArgs struct {
	Slot string
}

// PointsArgs: "points <person> +1|-1".
type PointsArgs struct {
	Member string
	Delta  int
}

type Command struct {
	Type   Type
	Raw    string
	Done   *DoneArgs
	Add    *AddArgs
	Walk   *WalkArgs
	Feed   *FeedArgs
	Points *PointsArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeDone:
		return parseDone(raw, args)
	case TypeAdd:
		return parseAdd(raw, args)
	case TypeWalk:
		return parseWalk(raw, args)
	case TypeFeed:
		return parseFeed(raw, args)
	case TypePoints:
		return parsePoints(raw, args)
	case TypeReset:
		return Command{Type: TypeReset, Raw: raw}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseDone(raw string, args []string) (Command, error) {
	byIndex := -1
	for i, arg := range args {
		if strings.EqualFold(arg, "by") {
			byIndex = i
		}
	}
	if byIndex <= 0 || byIndex == len(args)-1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task name and 'by <person>'"}
	}
	task := strings.Join(args[:byIndex], " ")
	actor := strings.Join(args[byIndex+1:], " ")
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Task: task, Actor: actor}}, nil
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task name"}
	}

	out := AddArgs{}
	nameParts := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "every":
			if i == len(args)-1 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "every requires a day count"}
			}
			days, err := strconv.Atoi(args[i+1])
			if err != nil || days <= 0 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid day count: %s", args[i+1])}
			}
			out.Days = days
			i++
		case "for":
			if i == len(args)-1 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "for requires a person"}
			}
			out.Assignee = args[i+1]
			i++
		default:
			nameParts = append(nameParts, args[i])
		}
	}

	out.Name = strings.TrimSpace(strings.Join(nameParts, " "))
	if out.Name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseWalk(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "walk requires a person"}
	}
	return Command{Type: TypeWalk, Raw: raw, Walk: &WalkArgs{Actor: strings.Join(args, " ")}}, nil
}

func parseFeed(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "feed requires morning or evening"}
	}
	slot := strings.ToLower(args[0])
	if slot != "morning" && slot != "evening" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown meal slot: %s", args[0])}
	}
	return Command{Type: TypeFeed, Raw: raw, Feed: &FeedArgs{Slot: slot}}, nil
}

func parsePoints(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "points requires a person and +1 or -1"}
	}
	member := strings.Join(args[:len(args)-1], " ")
	var delta int
	switch args[len(args)-1] {
	case "+1":
		delta = 1
	case "-1":
		delta = -1
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid adjustment: %s", args[len(args)-1])}
	}
	return Command{Type: TypePoints, Raw: raw, Points: &PointsArgs{Member: member, Delta: delta}}, nil
}
