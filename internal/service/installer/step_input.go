package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep asks for one env value. A blank answer keeps the default, or
// writes nothing when the step is optional and has no default.
type InputStep struct {
	input    textinput.Model
	envKey   string
	title    string
	optional bool
	// defaultFor computes the default from earlier answers.
	defaultFor func(state *InstallState) string
	// skip leaves the step without asking.
	skip    func(state *InstallState) bool
	started bool
}

type inputOption func(*InputStep)

func secret() inputOption {
	return func(s *InputStep) {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '*'
	}
}

func optional() inputOption {
	return func(s *InputStep) { s.optional = true }
}

func placeholder(p string) inputOption {
	return func(s *InputStep) { s.input.Placeholder = p }
}

func withDefault(fn func(state *InstallState) string) inputOption {
	return func(s *InputStep) { s.defaultFor = fn }
}

func skipUnless(fn func(state *InstallState) bool) inputOption {
	return func(s *InputStep) {
		s.skip = func(state *InstallState) bool { return !fn(state) }
	}
}

func NewInputStep(envKey, title string, opts ...inputOption) *InputStep {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Focus()

	s := &InputStep{input: ti, envKey: envKey, title: title}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.started {
		s.started = true
		if s.skip != nil && s.skip(state) {
			return nil, nil
		}
		if s.defaultFor != nil && s.input.Placeholder == "" {
			s.input.Placeholder = s.defaultFor(state)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && s.defaultFor != nil {
			val = s.defaultFor(state)
		}
		if val == "" && !s.optional {
			return s, cmd
		}
		if val != "" {
			state.EnvVars[s.envKey] = val
		}
		return nil, nil
	}
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	hint := ""
	if s.optional {
		hint = " (optional, press Enter to skip)"
	}
	return fmt.Sprintf("Enter %s%s:\n\n%s\n\n(press enter to confirm)\n", s.title, hint, s.input.View())
}
