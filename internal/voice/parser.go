package voice

import "strings"

// ParsedCommand classifies one utterance. Wake-phrase detection and
// system-command detection are independent: an utterance may be both.
type ParsedCommand struct {
	IsSystemCommand   bool
	Command           string
	IsNexusActivation bool
}

var wakePhrases = []string{
	"hey nexus",
	"hey n.e.x.u.s",
	"nexus activate",
}

// ParseVoiceCommand classifies an utterance against the wake phrases
// and the command vocabulary. Command carries the raw utterance so the
// executor sees exactly what the user said.
func ParseVoiceCommand(text string) ParsedCommand {
	normalized := strings.ToLower(strings.TrimSpace(text))

	activation := false
	for _, phrase := range wakePhrases {
		if strings.Contains(normalized, phrase) {
			activation = true
			break
		}
	}

	_, isCommand := Lookup(normalized)

	parsed := ParsedCommand{
		IsSystemCommand:   isCommand,
		IsNexusActivation: activation,
	}
	if isCommand {
		parsed.Command = text
	}
	return parsed
}
