package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/pastcast/internal/service/chat"
	"github.com/spf13/cobra"
)

var askSession string

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLoggerTo(cmd.Context(), cmd.ErrOrStderr())
		defer flushLog()

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		ex := app.Chat.Handle(ctx, askSession, strings.Join(args, " "))
		if ex.Intent != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s]\n", ex.Intent)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ex.Reply)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", chat.DefaultSession, "session id")
	rootCmd.AddCommand(askCmd)
}
