package main

import (
	"io"
	"os"
	"os/signal"

	"github.com/sandevgo/pastcast/internal/transport/tui"
	"github.com/spf13/cobra"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the terminal chat",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// The TUI owns the terminal.
		var logOut io.Writer = io.Discard
		if debug {
			logOut = cmd.ErrOrStderr()
		}
		ctx, flushLog := setupLoggerTo(ctx, logOut)
		defer flushLog()

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		sessionID := chatSession
		if sessionID == "" {
			sessionID = tui.NewSessionID()
		}
		return tui.Run(ctx, app.Chat, app.Commands, sessionID)
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "", "resume a session id (default: new cli-<uuid>)")
	rootCmd.AddCommand(chatCmd)
}
