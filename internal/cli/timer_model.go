package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avendel/fastrack/internal/cli/formatter"
	"github.com/avendel/fastrack/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type timerKeyMap struct {
	Pause    key.Binding
	Resume   key.Binding
	Complete key.Binding
	Stop     key.Binding
	Quit     key.Binding
}

func newTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Stop:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type timerTickMsg time.Time

// timerModel is the live fast timer. It redraws once a second and lets
// the user drive the session lifecycle without leaving the view.
type timerModel struct {
	app     *App
	session *domain.FastingSession
	keys    timerKeyMap

	now      time.Time
	final    string
	err      error
	quitting bool
}

func newTimerModel(app *App, s *domain.FastingSession) timerModel {
	return timerModel{
		app:     app,
		session: s,
		keys:    newTimerKeyMap(),
		now:     time.Now().UTC(),
	}
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (m timerModel) Init() tea.Cmd {
	return timerTick()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case timerTickMsg:
		if m.quitting {
			return m, nil
		}
		m.now = time.Time(msg).UTC()
		return m, timerTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m timerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		if m.session.Status != domain.SessionActive {
			return m, nil
		}
		s, err := m.app.Sessions.Pause(ctx)
		return m.applyResult(s, err, "")

	case key.Matches(msg, m.keys.Resume):
		if m.session.Status != domain.SessionPaused {
			return m, nil
		}
		s, err := m.app.Sessions.Resume(ctx)
		return m.applyResult(s, err, "")

	case key.Matches(msg, m.keys.Complete):
		s, err := m.app.Sessions.Complete(ctx)
		return m.applyResult(s, err, "Fast completed. Well done!")

	case key.Matches(msg, m.keys.Stop):
		s, err := m.app.Sessions.Stop(ctx)
		return m.applyResult(s, err, "Fast stopped.")
	}

	return m, nil
}

func (m timerModel) applyResult(s *domain.FastingSession, err error, final string) (tea.Model, tea.Cmd) {
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.session = s
	if final != "" {
		m.final = final
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m timerModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.final != "" {
		return formatter.StyleGreen.Render(m.final) + "\n"
	}

	s := m.session
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n",
		formatter.SessionTypeBadge(s.Type),
		formatter.SessionStatusPill(s.Status))

	fmt.Fprintf(&b, "%s\n\n", formatter.StyleBold.Render(formatter.FormatClock(s.Elapsed(m.now))))
	fmt.Fprintf(&b, "%s\n", formatter.RenderProgress(s.Progress(m.now), 30))
	fmt.Fprintf(&b, "%s remaining of %s\n",
		formatter.FormatDuration(s.Remaining(m.now)),
		formatter.FormatDuration(s.Planned))

	b.WriteString("\n")
	b.WriteString(formatter.Dim("p pause · r resume · c complete · s stop · q quit"))

	return formatter.RenderBox("Fasting", b.String())
}
