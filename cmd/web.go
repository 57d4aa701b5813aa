package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"termai/internal/ai"
	"termai/internal/builtin"
	"termai/internal/display"
	"termai/internal/history"
	"termai/internal/terminal"
	"termai/internal/web"
)

// NewWebCmd creates the web subcommand: serve the terminal over HTTP.
func NewWebCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the terminal over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			app.setup()

			registry := terminal.NewRegistry()
			builtin.Register(registry)
			dispatcher := terminal.NewDispatcher(registry)

			var translator *ai.Translator
			if app.cfg.AIEnabled() {
				client := ai.NewGeminiClient(app.cfg)
				defer client.Close()
				translator = ai.NewTranslator(client, app.cfg.Model)
			}

			var recorder history.Recorder
			if store, err := history.NewStore(); err == nil {
				if loadErr := store.Load(); loadErr != nil {
					display.ShowWarning("could not load history: " + loadErr.Error())
				}
				defer func() { _ = store.Save() }()
				recorder = store
			}

			server := web.NewServer(app.cfg, dispatcher, translator, recorder)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.Run(ctx); err != nil {
				display.ShowError(err.Error())
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&app.cfg.Web.Host, "host", "", "Listen host")
	cmd.Flags().IntVar(&app.cfg.Web.Port, "port", 0, "Listen port")
	return cmd
}
