package builtin

import (
	"context"
	"fmt"

	"termai/internal/terminal"
)

// commandHelp describes one builtin for the help command.
type commandHelp struct {
	name string
	desc string
}

var fileHelp = []commandHelp{
	{"ls [-al] [path]", "List directory contents"},
	{"cd [path]", "Change directory"},
	{"pwd", "Print working directory"},
	{"mkdir <dir>...", "Create directories"},
	{"rm [-r] <file>...", "Remove files"},
	{"rmdir <dir>...", "Remove empty directories"},
	{"cp <src>... <dst>", "Copy files"},
	{"mv <src>... <dst>", "Move/rename files"},
	{"cat <file>...", "Print file contents"},
	{"touch <file>...", "Create empty files"},
	{"grep <pattern> <file>...", "Search in files"},
	{"find <path> [-name <pat>]", "Find files"},
	{"du [path]", "Show directory size"},
}

var systemHelp = []commandHelp{
	{"ps", "List processes"},
	{"top", "Show top processes by CPU"},
	{"kill <pid>", "Terminate a process"},
	{"df", "Show disk usage"},
	{"free", "Show memory usage"},
	{"uptime", "Show system uptime"},
	{"whoami", "Show current user"},
	{"date", "Show current date/time"},
}

var terminalHelp = []commandHelp{
	{"echo <text>", "Print text"},
	{"history", "Show command history"},
	{"clear", "Clear the screen"},
	{"help", "Show this help"},
	{"exit, quit", "Exit the terminal"},
}

// Register wires every builtin command into reg. A duplicate name is a
// startup configuration error and fails fast.
func Register(reg *terminal.Registry) {
	reg.MustRegister("ls", terminal.HandlerFunc(lsCmd))
	reg.MustRegister("cd", terminal.HandlerFunc(cdCmd))
	reg.MustRegister("pwd", terminal.HandlerFunc(pwdCmd))
	reg.MustRegister("mkdir", terminal.HandlerFunc(mkdirCmd))
	reg.MustRegister("rm", terminal.HandlerFunc(rmCmd))
	reg.MustRegister("rmdir", terminal.HandlerFunc(rmdirCmd))
	reg.MustRegister("cp", terminal.HandlerFunc(cpCmd))
	reg.MustRegister("mv", terminal.HandlerFunc(mvCmd))
	reg.MustRegister("cat", terminal.HandlerFunc(catCmd))
	reg.MustRegister("touch", terminal.HandlerFunc(touchCmd))
	reg.MustRegister("grep", terminal.HandlerFunc(grepCmd))
	reg.MustRegister("find", terminal.HandlerFunc(findCmd))
	reg.MustRegister("du", terminal.HandlerFunc(duCmd))

	reg.MustRegister("ps", terminal.HandlerFunc(psCmd))
	reg.MustRegister("top", terminal.HandlerFunc(topCmd))
	reg.MustRegister("kill", terminal.HandlerFunc(killCmd))
	reg.MustRegister("df", terminal.HandlerFunc(dfCmd))
	reg.MustRegister("free", terminal.HandlerFunc(freeCmd))
	reg.MustRegister("uptime", terminal.HandlerFunc(uptimeCmd))

	reg.MustRegister("echo", terminal.HandlerFunc(echoCmd))
	reg.MustRegister("date", terminal.HandlerFunc(dateCmd))
	reg.MustRegister("whoami", terminal.HandlerFunc(whoamiCmd))
	reg.MustRegister("history", terminal.HandlerFunc(historyCmd))
	reg.MustRegister("clear", terminal.HandlerFunc(clearCmd))
	reg.MustRegister("exit", terminal.HandlerFunc(exitCmd))
	reg.MustRegister("quit", terminal.HandlerFunc(exitCmd))
	reg.MustRegister("help", helpHandler())
}

func helpHandler() terminal.Handler {
	return terminal.HandlerFunc(func(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
		lines := []string{"Available commands:", "", "  File operations:"}
		for _, h := range fileHelp {
			lines = append(lines, fmt.Sprintf("    %-28s %s", h.name, h.desc))
		}
		lines = append(lines, "", "  System:")
		for _, h := range systemHelp {
			lines = append(lines, fmt.Sprintf("    %-28s %s", h.name, h.desc))
		}
		lines = append(lines, "", "  Terminal:")
		for _, h := range terminalHelp {
			lines = append(lines, fmt.Sprintf("    %-28s %s", h.name, h.desc))
		}
		lines = append(lines, "", "  AI:",
			fmt.Sprintf("    %-28s %s", "ai <query>", "Translate natural language into a command"),
			fmt.Sprintf("    %-28s %s", "smart <query>", "Same as ai"),
			"", "  Aliases: ll, la, .., ..., h, c, q")
		return terminal.OK(lines...)
	})
}
