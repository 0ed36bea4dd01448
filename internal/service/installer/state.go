package installer

import "strings"

// Keys collected by the wizard but never written to .env.
const (
	keyChannel = "_CHANNEL"
)

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) provider() string {
	return strings.ToLower(s.EnvVars["PASTCAST_LLM_PROVIDER"])
}

func (s *InstallState) telegramSelected() bool {
	return s.EnvVars[keyChannel] == channelTelegram
}
