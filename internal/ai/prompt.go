package ai

import (
	"fmt"
	"strings"

	"termai/internal/constants"
)

// systemPrompt instructs the model to behave as a command interpreter
// and to reply with a strict JSON object.
const systemPrompt = `You are an expert terminal command interpreter. Convert natural language requests into appropriate terminal commands.

Rules:
1. For file operations, use exact file names from the available files list when possible
2. For directory operations, suggest appropriate directory names
3. Use standard Unix/Linux commands (ls, cd, mkdir, rm, cp, mv, cat, grep, etc.)
4. If the request is unclear or impossible, set success to false
5. Break complex operations into multiple commands
6. Always prioritize safety - avoid destructive operations without clear intent

Respond with a JSON object containing:
{
  "commands": ["command1", "command2", ...],
  "explanation": "Brief explanation",
  "success": true/false,
  "error_message": "Error message if success is false"
}`

// buildUserPrompt renders the session context and query into the user
// message. The directory listing is capped so large directories do not
// blow up the prompt.
func buildUserPrompt(query string, tctx Context) string {
	entries := tctx.Entries
	if len(entries) > constants.MaxContextEntries {
		entries = entries[:constants.MaxContextEntries]
	}

	var sb strings.Builder
	sb.WriteString("Context:\n")
	fmt.Fprintf(&sb, "- Current directory: %s\n", tctx.WorkingDir)
	fmt.Fprintf(&sb, "- Available files/folders: %s\n", strings.Join(entries, ", "))
	fmt.Fprintf(&sb, "- Operating system: %s\n\n", tctx.OS)
	fmt.Fprintf(&sb, "Natural language request: %q", query)
	return sb.String()
}
