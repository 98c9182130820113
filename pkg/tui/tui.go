// Package tui renders the transcript in the terminal and feeds user
// submissions to the turn controller.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/parleyhq/parley/pkg/transcript"
	"github.com/parleyhq/parley/pkg/turns"
)

// transcriptChangedMsg is sent whenever the sink mutates, including
// from resolution goroutines.
type transcriptChangedMsg struct{}

type model struct {
	sink *transcript.Transcript
	ctrl *turns.Controller

	vp       viewport.Model
	ti       textinput.Model
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool

	userStyle    lipgloss.Style
	pendingStyle lipgloss.Style
}

func newModel(sink *transcript.Transcript, ctrl *turns.Controller) model {
	ti := textinput.New()
	ti.Placeholder = "Send a message…"
	ti.Prompt = "> "
	ti.Focus()

	return model{
		sink:         sink,
		ctrl:         ctrl,
		ti:           ti,
		userStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		pendingStyle: lipgloss.NewStyle().Faint(true),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 2
		}
		m.ti.Width = msg.Width - len(m.ti.Prompt)
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(msg.Width),
		); err == nil {
			m.renderer = r
		}
		m.refresh()
		return m, nil

	case transcriptChangedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			input := m.ti.Value()
			switch strings.ToLower(strings.TrimSpace(input)) {
			case "exit", "quit", "stop":
				return m, tea.Quit
			}
			m.ctrl.SubmitTurn(context.Background(), input)
			m.ti.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.renderLines())
	m.vp.GotoBottom()
}

func (m *model) renderLines() string {
	var b strings.Builder
	for _, line := range m.sink.Lines() {
		switch {
		case line.Speaker == transcript.SpeakerUser:
			b.WriteString(m.userStyle.Render("You: ") + line.Text + "\n")
		case line.Text == turns.Placeholder:
			b.WriteString(m.pendingStyle.Render(line.Text) + "\n")
		default:
			b.WriteString(m.renderAgent(line.Text))
		}
	}
	return b.String()
}

// renderAgent renders the reply as markdown, falling back to plain
// text when the renderer is unavailable or chokes on the input.
func (m *model) renderAgent(text string) string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(text); err == nil {
			return out
		}
	}
	return text + "\n"
}

func (m model) View() string {
	if !m.ready {
		return "loading…"
	}
	return m.vp.View() + "\n" + m.ti.View()
}

// Run starts the terminal frontend and blocks until the user leaves.
func Run(ctx context.Context, sink *transcript.Transcript, ctrl *turns.Controller) error {
	m := newModel(sink, ctrl)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Resolution goroutines land on the transcript; forward every
	// change into the program loop.
	sink.OnChange(func() {
		p.Send(transcriptChangedMsg{})
	})

	_, err := p.Run()
	return err
}
