package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"termai/internal/config"
	"termai/internal/display"
	"termai/internal/logging"
)

// App holds the application state shared by the subcommands
type App struct {
	cfg   *config.Config
	debug bool
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	app := NewApp()

	rootCmd := &cobra.Command{
		Use:   "termai",
		Short: "An AI-assisted terminal",
		Long: `termai is a terminal with built-in shell commands and natural
language translation. Type commands as usual, or prefix a request with
"ai" or "smart" to have it translated into commands you can confirm.

Examples:
  termai                                # Interactive terminal
  termai exec "ls -l"                   # Run one command and exit
  termai web                            # Serve the terminal over HTTP
  termai web --port 8080`,
		Run: func(cmd *cobra.Command, args []string) {
			app.setup()
			app.runInteractive()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&app.cfg.APIKey, "api-key", "", "API key for natural language translation")
	rootCmd.PersistentFlags().StringVarP(&app.cfg.Model, "model", "m", "", "Model for natural language translation")
	rootCmd.PersistentFlags().StringVar(&app.cfg.BaseURL, "base-url", "", "OpenAI-compatible chat completions endpoint")

	rootCmd.AddCommand(NewExecCmd(app))
	rootCmd.AddCommand(NewWebCmd(app))
	rootCmd.AddCommand(NewInitConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup validates configuration and wires the default logger. Exits on
// configuration errors.
func (app *App) setup() {
	app.cfg.Debug = app.debug

	if err := app.cfg.Validate(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}

	logging.SetLevel(app.cfg.LogLevel)
	if app.cfg.Debug {
		logging.SetFormat(logging.FormatText)
	}
}

// NewInitConfigCmd creates the init-config subcommand
func NewInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a sample configuration file",
		Run: func(cmd *cobra.Command, args []string) {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				display.ShowError(err.Error())
				os.Exit(1)
			}
			cmd.Printf("Wrote %s\n", path)
		},
	}
}
