package tui

import "strings"

// Command represents a parsed prompt command.
type Command struct {
	Name string
	Args []string
}

// aliases maps short command names to their full form.
var aliases = map[string]string{
	"q":  "quit",
	"h":  "help",
	"v":  "view",
	"o":  "open",
	"r":  "refresh",
	"b":  "back",
	"s":  "search",
	"qr": "share",
}

// Commands lists the prompt commands, used for completion.
var Commands = []string{"view", "open", "share", "back", "refresh", "search", "help", "quit"}

// ParseCommand parses a command string (without the leading ':').
func ParseCommand(input string) Command {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{}
	}
	name := strings.ToLower(fields[0])
	if full, ok := aliases[name]; ok {
		name = full
	}
	return Command{Name: name, Args: fields[1:]}
}

// Arg returns the i-th argument or an empty string.
func (c Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// Rest joins the arguments from i on, e.g. a conversation title.
func (c Command) Rest(i int) string {
	if i >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[i:], " ")
}
