package tui

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Progress shows a spinner with a running file count while a scan or fix runs.
// Add is cheap and safe to call from any goroutine; the count is picked up on
// the next spinner tick.
type Progress struct {
	program *tea.Program
	count   *atomic.Int64
	done    chan struct{}
}

type stopMsg struct{}

type progressModel struct {
	spinner  spinner.Model
	label    string
	count    *atomic.Int64
	style    lipgloss.Style
	stopping bool
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.stopping = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.stopping {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.style.Render(fmt.Sprintf("%s %d files", m.label, m.count.Load())))
}

// StartProgress starts rendering to w. Call Stop before writing anything else to w.
func StartProgress(w io.Writer, label string) *Progress {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	count := new(atomic.Int64)
	model := progressModel{
		spinner: s,
		label:   label,
		count:   count,
		style:   lipgloss.NewStyle().Foreground(ColorMuted),
	}

	p := &Progress{
		program: tea.NewProgram(model,
			tea.WithOutput(w),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		),
		count: count,
		done:  make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		_, _ = p.program.Run()
	}()
	return p
}

// Add advances the count by n.
func (p *Progress) Add(n int) {
	p.count.Add(int64(n))
}

// Stop clears the spinner line and waits for the renderer to exit.
func (p *Progress) Stop() {
	p.program.Send(stopMsg{})
	<-p.done
}
