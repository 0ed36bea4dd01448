package command

import (
	"github.com/sandevgo/pastcast/internal/core"
)

func NewCommands(history HistoryStore, model ModelInfo) []core.Command {
	return []core.Command{
		NewHistoryCommand(history),
		NewClearCommand(history),
		NewModelCommand(model),
		NewLanguagesCommand(),
	}
}

// NewRouter builds the command router with /help listing every command.
func NewRouter(history HistoryStore, model ModelInfo) *Router {
	r := New(NewCommands(history, model))
	help := NewHelpCommand(r)
	r.commands[help.Name()] = help
	return r
}
