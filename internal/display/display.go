// Package display renders terminal output: styled errors, command
// results, AI suggestions, and confirmation prompts.
package display

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// ShowError prints an error message to stderr
func ShowError(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+msg)
}

// ShowWarning prints a warning message to stderr
func ShowWarning(msg string) {
	fmt.Fprintln(os.Stderr, warnStyle.Render("Warning: ")+msg)
}

// ShowLines prints output lines to stdout
func ShowLines(lines []string) {
	for _, line := range lines {
		fmt.Println(line)
	}
}

// ShowErrorLines prints error lines to stderr
func ShowErrorLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(os.Stderr, line)
	}
}

// ShowSuggestion renders a translated suggestion: the proposed commands
// and the model's explanation.
func ShowSuggestion(commands []string, explanation string) {
	fmt.Println(promptStyle.Render("Suggested commands:"))
	for i, c := range commands {
		fmt.Printf("  %d. %s\n", i+1, commandStyle.Render(c))
	}
	if explanation != "" {
		fmt.Println(dimStyle.Render("  " + explanation))
	}
}

// ShowCommandExecuting announces that a command is about to run
func ShowCommandExecuting(command string) {
	fmt.Println(dimStyle.Render("$ ") + commandStyle.Render(command))
}

// ShowCommandBlocked explains why a command was refused
func ShowCommandBlocked(command, reason string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Blocked: ")+command)
	fmt.Fprintln(os.Stderr, dimStyle.Render("  "+reason))
}

// ShowGoodbye prints the exit banner
func ShowGoodbye() {
	fmt.Println(successStyle.Render("Goodbye!"))
}

// Approval is the user's answer to a confirmation prompt
type Approval int

const (
	// ApprovalDenied rejects the command
	ApprovalDenied Approval = iota
	// ApprovalOnce approves this invocation only
	ApprovalOnce
	// ApprovalSession approves the command for the rest of the session
	ApprovalSession
	// ApprovalAlways approves the command permanently
	ApprovalAlways
)

// AskConfirmation asks a yes/no question on stdin. Anything other than
// y/yes is a no.
func AskConfirmation(question string) bool {
	fmt.Printf("%s [y/N] ", promptStyle.Render(question))
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// AskCommandConfirmation asks the user whether a command may run,
// offering once/session/always scopes.
func AskCommandConfirmation(command string) Approval {
	fmt.Println(warnStyle.Render("About to run: ") + commandStyle.Render(command))
	fmt.Print(promptStyle.Render("Allow? ") + dimStyle.Render("[y]es / [s]ession / [a]lways / [N]o "))

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ApprovalDenied
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return ApprovalOnce
	case "s", "session":
		return ApprovalSession
	case "a", "always":
		return ApprovalAlways
	default:
		return ApprovalDenied
	}
}

// Spinner wraps an activity indicator shown while waiting on the AI.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates and starts a spinner with a message
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	return &Spinner{s: s}
}

// Stop halts the spinner and clears its line
func (sp *Spinner) Stop() {
	sp.s.Stop()
}
