package installer

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/pastcast/internal/config"
)

// FinalizationStep computes derived values and drops wizard-only keys.
type FinalizationStep struct {
	runtimePath string
}

func NewFinalizationStep(runtimePath string) Step {
	return &FinalizationStep{runtimePath: runtimePath}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state, s.runtimePath)
	return nil, nil
}

func finalize(state *InstallState, runtimePath string) {
	if state.EnvVars["PASTCAST_TELEGRAM_TOKEN"] != "" {
		state.EnvVars["PASTCAST_ENABLE_TELEGRAM"] = "true"
	} else {
		state.EnvVars["PASTCAST_ENABLE_TELEGRAM"] = "false"
	}

	if state.EnvVars["PASTCAST_DEBUG"] == "" {
		state.EnvVars["PASTCAST_DEBUG"] = "0"
	}
	if state.EnvVars["PASTCAST_STORAGE"] == "" {
		state.EnvVars["PASTCAST_STORAGE"] = config.StorageSQLite
	}
	state.EnvVars["PASTCAST_TRENDS_PATH"] = filepath.Join(runtimePath, trendsFile)

	delete(state.EnvVars, keyChannel)
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
