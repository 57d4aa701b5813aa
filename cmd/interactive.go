package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"termai/internal/ai"
	"termai/internal/builtin"
	"termai/internal/display"
	"termai/internal/history"
	"termai/internal/safety"
	"termai/internal/terminal"
)

// TerminalSession holds the state for an interactive terminal session.
type TerminalSession struct {
	app        *App
	dispatcher *terminal.Dispatcher
	translator *ai.Translator
	policy     *safety.Policy
	sess       *terminal.Session
	store      history.Recorder
	exitFlag   bool
}

// aiPrefixes mark input that should be translated instead of dispatched
var aiPrefixes = []string{"ai ", "smart "}

// completer suggests command names for the first word of the input.
func (s *TerminalSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	// Only complete the command position
	if strings.Contains(strings.TrimSpace(text), " ") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	var suggestions []prompt.Suggest
	for _, name := range s.dispatcher.Registry().Names() {
		suggestions = append(suggestions, prompt.Suggest{Text: name})
	}
	suggestions = append(suggestions,
		prompt.Suggest{Text: "ai", Description: "Translate natural language into a command"},
		prompt.Suggest{Text: "smart", Description: "Same as ai"},
	)
	for alias, expansion := range terminal.DefaultAliases {
		suggestions = append(suggestions, prompt.Suggest{Text: alias, Description: expansion})
	}

	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// runInteractive starts the terminal REPL. It wires the builtin
// registry, the safety policy, persisted history, and the translator
// when an API key is available.
func (app *App) runInteractive() {
	registry := terminal.NewRegistry()
	builtin.Register(registry)
	dispatcher := terminal.NewDispatcher(registry)

	sess, err := terminal.NewSession("")
	if err != nil {
		display.ShowError(err.Error())
		return
	}
	defer sess.Close()

	policy := safety.NewPolicy()
	if err := policy.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: Could not load safety rules: %v\n", err)
	}

	var store history.Recorder
	if st, err := history.NewStore(); err == nil {
		if err := st.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Note: Could not load history: %v\n", err)
		}
		store = st
	}

	var translator *ai.Translator
	if app.cfg.AIEnabled() {
		client := ai.NewGeminiClient(app.cfg)
		defer client.Close()
		translator = ai.NewTranslator(client, app.cfg.Model)
	}

	fmt.Println("termai - AI-assisted terminal")
	fmt.Printf("Working directory: %s\n", sess.WorkingDir())
	if translator != nil {
		fmt.Printf("AI: enabled (model: %s)\n", app.cfg.Model)
	} else {
		fmt.Println("AI: disabled (set GEMINI_API_KEY to enable)")
	}
	fmt.Println("Type help for commands, Ctrl+C or Ctrl+D to quit")
	fmt.Println()

	session := &TerminalSession{
		app:        app,
		dispatcher: dispatcher,
		translator: translator,
		policy:     policy,
		sess:       sess,
		store:      store,
	}

	opts := []prompt.Option{
		prompt.WithCompleter(session.completer),
		prompt.WithPrefix("$ "),
		prompt.WithTitle("termai"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithMaxSuggestion(15),
		prompt.WithCompletionOnDown(),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Println()
				display.ShowGoodbye()
				session.saveState()
				session.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					display.ShowGoodbye()
					session.saveState()
					session.exitFlag = true
				}
				return false
			},
		}),
	}
	if store != nil {
		opts = append(opts, prompt.WithHistory(store.Lines()))
	}

	p := prompt.New(session.executor, opts...)
	p.Run()
}

// saveState persists history and safety rules at exit.
func (s *TerminalSession) saveState() {
	if s.store != nil {
		if err := s.store.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not save history: %v\n", err)
		}
	}
	if err := s.policy.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not save safety rules: %v\n", err)
	}
}

// executor handles one line of REPL input.
func (s *TerminalSession) executor(input string) {
	if s.exitFlag {
		return
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return
	}

	lower := strings.ToLower(trimmed)
	for _, prefix := range aiPrefixes {
		if strings.HasPrefix(lower, prefix) {
			s.handleAI(strings.TrimSpace(trimmed[len(prefix):]))
			return
		}
	}

	s.runCommand(trimmed, true)

	first := strings.ToLower(firstToken(trimmed, s.dispatcher))
	if first == "exit" || first == "quit" {
		s.saveState()
		s.exitFlag = true
	}
}

// runCommand gates a command through the safety policy and dispatches
// it. With confirm set, destructive commands prompt the user first;
// cancelled commands still land in history.
func (s *TerminalSession) runCommand(line string, confirm bool) terminal.Result {
	switch s.policy.Decide(line) {
	case safety.Block:
		display.ShowCommandBlocked(line, safety.RiskDescription(safety.Dangerous))
		s.sess.AppendHistory(line)
		s.recordPersisted(line)
		return terminal.Failf(terminal.ExitFailure, "command blocked: %s", line)
	case safety.AskConfirm:
		if confirm {
			switch display.AskCommandConfirmation(line) {
			case display.ApprovalDenied:
				fmt.Println("Operation cancelled")
				s.sess.AppendHistory(line)
				s.recordPersisted(line)
				return terminal.Failf(terminal.ExitFailure, "cancelled: %s", line)
			case display.ApprovalSession:
				s.policy.AllowForSession(line)
			case display.ApprovalAlways:
				s.policy.AddAllowRule(line)
			}
		}
	}

	result := s.dispatcher.Dispatch(context.Background(), line, s.sess)
	s.recordPersisted(line)
	display.ShowLines(result.Stdout)
	display.ShowErrorLines(result.Stderr)
	return result
}

// recordPersisted appends a line to the on-disk history store.
func (s *TerminalSession) recordPersisted(line string) {
	if s.store != nil {
		s.store.Append(s.sess.ID(), line)
	}
}

// handleAI translates a natural language query, shows the suggestion,
// and dispatches the commands only after explicit confirmation.
func (s *TerminalSession) handleAI(query string) {
	if query == "" {
		display.ShowError("usage: ai <natural language request>")
		return
	}
	if s.translator == nil {
		display.ShowError("AI is not configured. Set GEMINI_API_KEY or GEMINI_API_KEYS")
		return
	}

	sp := display.NewSpinner("Thinking...")
	suggestion, err := s.translator.Translate(context.Background(), query, ai.Context{
		WorkingDir: s.sess.WorkingDir(),
		Entries:    listDir(s.sess.WorkingDir()),
		OS:         runtime.GOOS,
	})
	sp.Stop()

	if err != nil {
		display.ShowError(err.Error())
		return
	}
	if !suggestion.Interpreted() {
		msg := suggestion.ErrorMessage
		if msg == "" {
			msg = "could not interpret the request"
		}
		display.ShowError(msg)
		return
	}

	display.ShowSuggestion(suggestion.Commands, suggestion.Explanation)
	if !display.AskConfirmation("Execute these commands?") {
		fmt.Println("Operation cancelled")
		return
	}

	for _, command := range suggestion.Commands {
		display.ShowCommandExecuting(command)
		result := s.runCommand(command, true)
		if result.Failed() {
			display.ShowWarning("stopping: previous command failed")
			return
		}
	}
}

// firstToken returns the command name after alias expansion.
func firstToken(line string, d *terminal.Dispatcher) string {
	fields := strings.Fields(d.ExpandAlias(line))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// listDir returns directory entry names for AI context.
func listDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
