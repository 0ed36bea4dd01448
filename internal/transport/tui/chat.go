package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/service/chat"
	"github.com/sandevgo/pastcast/internal/service/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 20
	inputHeight   = 3
)

type ChatService interface {
	Handle(ctx context.Context, sessionID, text string) chat.Exchange
}

type entry struct {
	role   string
	text   string
	intent string
}

type replyMsg struct {
	text   string
	intent string
}

type model struct {
	ctx       context.Context
	chat      ChatService
	commands  core.CmdRouter
	sessionID string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	render   func(md string, width int) string

	transcript []entry
	busy       bool
	width      int
	quitting   bool
}

func NewSessionID() string {
	return "cli-" + uuid.NewString()
}

func newModel(ctx context.Context, chatSvc ChatService, commands core.CmdRouter, sessionID string) model {
	ti := textinput.New()
	ti.Placeholder = "Ask about weather, people, facts, or translate a phrase (Enter to send, Esc to quit)"
	ti.Prompt = "│ "
	ti.CharLimit = 4000
	ti.Width = defaultWidth
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(defaultWidth, defaultHeight)

	return model{
		ctx:       ctx,
		chat:      chatSvc,
		commands:  commands,
		sessionID: sessionID,
		input:     ti,
		viewport:  vp,
		spinner:   sp,
		render:    renderMarkdown,
		width:     defaultWidth,
	}
}

// renderMarkdown falls back to the raw text when glamour cannot render.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-inputHeight, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			return m.submit()
		}

	case replyMsg:
		m.busy = false
		m.transcript = append(m.transcript, entry{role: core.RoleAssistant, text: msg.text, intent: msg.intent})
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var tiCmd, vpCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()

	switch text {
	case "":
		return m, nil
	case "exit", "quit":
		m.quitting = true
		return m, tea.Quit
	}

	m.transcript = append(m.transcript, entry{role: core.RoleUser, text: text})
	m.busy = true
	m.refresh()
	return m, tea.Batch(m.ask(text), m.spinner.Tick)
}

// ask runs slash commands locally and everything else through the chat service.
func (m model) ask(text string) tea.Cmd {
	return func() tea.Msg {
		if m.commands != nil {
			if out, ok := m.commands.Execute(m.ctx, m.sessionID, text); ok {
				return replyMsg{text: out}
			}
		}
		ex := m.chat.Handle(m.ctx, m.sessionID, text)
		return replyMsg{text: ex.Reply, intent: string(ex.Intent)}
	}
}

func (m *model) refresh() {
	var sb strings.Builder
	for _, e := range m.transcript {
		if e.role == core.RoleUser {
			sb.WriteString(ui.UserStyle.Render("you") + "  " + e.text + "\n\n")
			continue
		}
		header := ui.BotStyle.Render(core.AppName)
		if e.intent != "" {
			header += " " + ui.IntentStyle.Render("("+e.intent+")")
		}
		sb.WriteString(header + "\n" + m.render(e.text, max(m.width-2, 20)) + "\n\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	status := ""
	if m.busy {
		status = m.spinner.View() + " thinking..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.viewport.View(), status, m.input.View())
}

// Run opens the full-screen chat and blocks until the user quits.
func Run(ctx context.Context, chatSvc ChatService, commands core.CmdRouter, sessionID string) error {
	p := tea.NewProgram(newModel(ctx, chatSvc, commands, sessionID), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
