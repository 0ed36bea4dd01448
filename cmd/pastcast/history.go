package main

import (
	"fmt"

	"github.com/sandevgo/pastcast/internal/service/chat"
	"github.com/sandevgo/pastcast/internal/service/ui"
	"github.com/spf13/cobra"
)

var (
	historySession string
	historyLimit   int
	clearSession   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation of a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLoggerTo(cmd.Context(), cmd.ErrOrStderr())
		defer flushLog()

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		turns, err := app.Chat.History(ctx, historySession, historyLimit)
		if err != nil {
			return err
		}
		if len(turns) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.DescStyle.Render("No messages."))
			return nil
		}
		for _, t := range turns {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n",
				ui.DescStyle.Render(t.CreatedAt.Format("2006-01-02 15:04")),
				ui.UsageStyle.Render(t.Role),
				t.Content,
			)
		}
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete stored conversations (all sessions unless --session is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLoggerTo(cmd.Context(), cmd.ErrOrStderr())
		defer flushLog()

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		if err := app.Chat.Clear(ctx, clearSession); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Chat memory cleared.")
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historySession, "session", "s", chat.DefaultSession, "session id")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of turns")
	clearCmd.Flags().StringVarP(&clearSession, "session", "s", "", "only clear this session")
	rootCmd.AddCommand(historyCmd, clearCmd)
}
