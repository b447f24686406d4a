package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/mistinfo/internal/format"
	"github.com/dm/mistinfo/internal/model"
)

type fetchState int

const (
	statePending fetchState = iota
	stateOK
	stateFailed
)

type kindStatus struct {
	state   fetchState
	elapsed time.Duration
	err     error
}

// Progress is the Bubble Tea model shown while a run is in flight.
type Progress struct {
	siteID  string
	spinner spinner.Model
	kinds   []model.ResourceKind
	status  map[model.ResourceKind]*kindStatus

	// cancel aborts the run when the user quits early. May be nil.
	cancel func()

	done    bool
	aborted bool
	err     error
}

// NewProgress creates the progress model for one site. cancel is invoked if
// the user aborts with q or ctrl+c.
func NewProgress(siteID string, cancel func()) *Progress {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StylePending

	kinds := model.AllKinds()
	status := make(map[model.ResourceKind]*kindStatus, len(kinds))
	for _, k := range kinds {
		status[k] = &kindStatus{}
	}

	return &Progress{
		siteID:  siteID,
		spinner: sp,
		kinds:   kinds,
		status:  status,
		cancel:  cancel,
	}
}

// Init implements tea.Model. Starts the spinner.
func (p *Progress) Init() tea.Cmd {
	return p.spinner.Tick
}

// Update implements tea.Model.
func (p *Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case FetchProgressMsg:
		st, ok := p.status[msg.Kind]
		if !ok || st.state != statePending {
			return p, nil
		}
		st.elapsed = msg.Elapsed
		st.err = msg.Err
		if msg.Err != nil {
			st.state = stateFailed
		} else {
			st.state = stateOK
		}

	case RunDoneMsg:
		p.done = true
		p.err = msg.Err
		return p, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && !p.done {
			p.aborted = true
			if p.cancel != nil {
				p.cancel()
			}
			return p, tea.Quit
		}

	case spinner.TickMsg:
		if p.done {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}

	return p, nil
}

// View implements tea.Model.
func (p *Progress) View() string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Mist site " + p.siteID))
	b.WriteString("\n")

	for _, k := range p.kinds {
		st := p.status[k]
		var line string
		switch st.state {
		case stateOK:
			line = fmt.Sprintf("%s %-13s %s", StyleOK.Render("✓"), k, StyleDim.Render(format.FormatDuration(st.elapsed)))
		case stateFailed:
			line = fmt.Sprintf("%s %-13s %s", StyleFailed.Render("✗"), k, StyleError.Render(truncateErr(st.err, 60)))
		default:
			line = fmt.Sprintf("%s %-13s", p.spinner.View(), k)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch {
	case p.aborted:
		b.WriteString(StyleError.Render("aborted"))
		b.WriteString("\n")
	case p.done && p.err != nil:
		b.WriteString(StyleError.Render("run failed, no reports written"))
		b.WriteString("\n")
	case !p.done:
		b.WriteString(StyleDim.Render("q to abort"))
		b.WriteString("\n")
	}
	return b.String()
}

// Aborted reports whether the user quit before the run finished.
func (p *Progress) Aborted() bool { return p.aborted }

func truncateErr(err error, n int) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
