package commands

import "strings"

type CommandType string

const (
	CmdEvent     CommandType = "event"
	CmdRoleMsg   CommandType = "rolemsg"
	CmdAutoEvent CommandType = "autoevent"
	CmdPing      CommandType = "ping"
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// Parse extracts a bot command from a message. It returns false when
// the message does not start with the prefix or names no known command.
func Parse(prefix, content string) (*Command, bool) {
	if !strings.HasPrefix(content, prefix) {
		return nil, false
	}

	parts := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(parts) == 0 {
		return nil, false
	}

	cmd := &Command{
		Args: parts[1:],
		Raw:  content,
	}

	switch parts[0] {
	case "event":
		cmd.Type = CmdEvent
	case "rolemsg":
		cmd.Type = CmdRoleMsg
	case "autoevent":
		cmd.Type = CmdAutoEvent
	case "ping":
		cmd.Type = CmdPing
	default:
		return nil, false
	}

	return cmd, true
}
