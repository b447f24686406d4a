package tui

import (
	"github.com/dm/mistinfo/internal/engine"
	"github.com/dm/mistinfo/internal/runner"
)

// FetchProgressMsg delivers one settled resource fetch to the view.
type FetchProgressMsg engine.Progress

// RunDoneMsg signals that the run has finished, successfully or not.
type RunDoneMsg struct {
	Result *runner.Result
	Err    error
}
