package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Done   func(DoneArgs) (Result, error)
	Add    func(AddArgs) (Result, error)
	Walk   func(WalkArgs) (Result, error)
	Feed   func(FeedArgs) (Result, error)
	Points func(PointsArgs) (Result, error)
	Reset  func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeWalk:
		if handlers.Walk == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "walk handler not configured"}
		}
		return handlers.Walk(*cmd.Walk)
	case TypeFeed:
		if handlers.Feed == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "feed handler not configured"}
		}
		return handlers.Feed(*cmd.Feed)
	case TypePoints:
		if handlers.Points == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "points handler not configured"}
		}
		return handlers.Points(*cmd.Points)
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "reset handler not configured"}
		}
		return handlers.Reset()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
