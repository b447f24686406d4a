package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/mistinfo/internal/engine"
	"github.com/dm/mistinfo/internal/runner"
)

// RunFunc executes one run, reporting each settled fetch to progress.
type RunFunc func(ctx context.Context, progress func(engine.Progress)) (*runner.Result, error)

type runOutcome struct {
	res *runner.Result
	err error
}

// RunWithProgress executes run while rendering the progress view to out.
// Quitting the view cancels the run; RunWithProgress always waits for run
// to return before it does. opts are appended to the program options.
func RunWithProgress(ctx context.Context, siteID string, out io.Writer, run RunFunc, opts ...tea.ProgramOption) (*runner.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewProgress(siteID, cancel)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithOutput(out)}, opts...)...)

	done := make(chan runOutcome, 1)
	go func() {
		res, err := run(ctx, func(pr engine.Progress) {
			p.Send(FetchProgressMsg(pr))
		})
		done <- runOutcome{res: res, err: err}
		p.Send(RunDoneMsg{Result: res, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress view: %w", err)
	}

	o := <-done
	if m.Aborted() && o.err == nil {
		o.err = context.Canceled
	}
	return o.res, o.err
}
