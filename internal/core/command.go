package core

import "context"

// CmdRouter dispatches slash commands typed into a chat transport.
type CmdRouter interface {
	// Execute reports ok=false when input is a regular message for the chat pipeline.
	Execute(ctx context.Context, sessionID, input string) (reply string, ok bool)
	ListCommands() []Command
}

// Command is one slash command, addressed by Name without the leading slash.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
