package cmd

import "github.com/mwantia/vshell/session"

// Signal tells the session loop how to proceed after a command.
type Signal int

const (
	SignalNone      Signal = iota // Completed normally
	SignalContinue                // Short-circuited, keep reading
	SignalTerminate               // End the current session
	SignalNest                    // Run a nested session on Target
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalContinue:
		return "continue"
	case SignalTerminate:
		return "terminate"
	case SignalNest:
		return "nest"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single command.
type Result struct {
	Signal Signal
	Target *session.Context
}

var (
	Done      = Result{Signal: SignalNone}
	Continue  = Result{Signal: SignalContinue}
	Terminate = Result{Signal: SignalTerminate}
)

// Nest requests a nested session on target.
func Nest(target *session.Context) Result {
	return Result{Signal: SignalNest, Target: target}
}
