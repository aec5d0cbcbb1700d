package voice

import "strings"

// Command maps one recognized phrase to its host action. The same table
// drives classification, privilege gating and dispatch, so the three
// can never drift apart.
type Command struct {
	Phrase          string
	Description     string
	RequiresCreator bool
	Shell           string
}

// Commands is the full recognized vocabulary. Order matters: the first
// phrase contained in the input wins.
var Commands = []Command{
	{Phrase: "list files", Description: "List files in current directory", RequiresCreator: false, Shell: "ls -la"},
	{Phrase: "system status", Description: "Show system resource usage", RequiresCreator: false, Shell: "top -n 1 -b | head -20"},
	{Phrase: "memory usage", Description: "Show memory usage statistics", RequiresCreator: false, Shell: "free -h"},
	{Phrase: "cpu usage", Description: "Show CPU usage statistics", RequiresCreator: false, Shell: `top -n 1 -b | grep "Cpu(s)"`},
	{Phrase: "network info", Description: "Show network information", RequiresCreator: false, Shell: "ifconfig"},
	{Phrase: "disk usage", Description: "Show disk usage", RequiresCreator: false, Shell: "df -h"},
	{Phrase: "processes", Description: "Show running processes", RequiresCreator: false, Shell: "ps aux | head -20"},
	{Phrase: "uptime", Description: "Show system uptime", RequiresCreator: false, Shell: "uptime"},
	{Phrase: "date", Description: "Show current date and time", RequiresCreator: false, Shell: "date"},
	{Phrase: "whoami", Description: "Show current user", RequiresCreator: false, Shell: "whoami"},
	{Phrase: "open application", Description: "Open the file manager", RequiresCreator: true, Shell: "xdg-open ."},
	{Phrase: "shutdown", Description: "Shutdown the system", RequiresCreator: true, Shell: "shutdown -h now"},
	{Phrase: "restart", Description: "Restart the system", RequiresCreator: true, Shell: "shutdown -r now"},
}

// Lookup finds the first command whose phrase is contained in the
// normalized (lower-cased, trimmed) input.
func Lookup(input string) (Command, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, cmd := range Commands {
		if strings.Contains(normalized, cmd.Phrase) {
			return cmd, true
		}
	}
	return Command{}, false
}
