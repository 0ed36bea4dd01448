package installer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	channelWeb      = "Web API only"
	channelTelegram = "Web API + Telegram"
)

// ChannelStep chooses whether the Telegram bot runs next to the HTTP API.
type ChannelStep struct {
	choices []string
	cursor  int
}

func NewChannelStep() Step {
	return &ChannelStep{
		choices: []string{channelWeb, channelTelegram},
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars[keyChannel] = s.choices[s.cursor]
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChannelStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select chat channels:\n\n")
	writeChoices(&b, s.choices, s.cursor)
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
