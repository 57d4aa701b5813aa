package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"termai/internal/builtin"
	"termai/internal/display"
	"termai/internal/terminal"
)

// NewExecCmd creates the exec subcommand: run one command line and exit
// with its status code.
func NewExecCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command>",
		Short: "Run a single command and exit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.setup()

			registry := terminal.NewRegistry()
			builtin.Register(registry)
			dispatcher := terminal.NewDispatcher(registry)

			sess, err := terminal.NewSession("")
			if err != nil {
				display.ShowError(err.Error())
				os.Exit(1)
			}
			defer sess.Close()

			result := dispatcher.Dispatch(context.Background(), args[0], sess)
			display.ShowLines(result.Stdout)
			display.ShowErrorLines(result.Stderr)
			os.Exit(result.ExitCode)
		},
	}
}
