package menu

import (
	"fmt"
	"regexp"
)

// Command is the interpreted meaning of a selected choice.
type Command int

const (
	// CommandItem means the choice is treated as a menu item label.
	CommandItem Command = iota
	CommandCheckout
	CommandCancel
	CommandMoreInfo
	CommandHelp
)

// Precedence is the order in which command patterns are tried.
// The first match wins; anything left over is an item selection.
var Precedence = []Command{CommandCheckout, CommandCancel, CommandMoreInfo, CommandHelp}

func (c Command) String() string {
	switch c {
	case CommandItem:
		return "item"
	case CommandCheckout:
		return "checkout"
	case CommandCancel:
		return "cancel"
	case CommandMoreInfo:
		return "more_info"
	case CommandHelp:
		return "help"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// CommandEntry is a selectable command choice.
// Pattern is matched as a case-insensitive substring regexp against the
// selected value. An empty pattern matches the label literally.
type CommandEntry struct {
	Label   string `json:"label" yaml:"label" mapstructure:"label" validate:"required"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" mapstructure:"pattern"`
}

// Commands groups the four command entries.
type Commands struct {
	Checkout CommandEntry `json:"checkout" yaml:"checkout" mapstructure:"checkout"`
	Cancel   CommandEntry `json:"cancel" yaml:"cancel" mapstructure:"cancel"`
	MoreInfo CommandEntry `json:"more_info" yaml:"more_info" mapstructure:"more_info"`
	Help     CommandEntry `json:"help" yaml:"help" mapstructure:"help"`
}

func (c Commands) entry(cmd Command) CommandEntry {
	switch cmd {
	case CommandCheckout:
		return c.Checkout
	case CommandCancel:
		return c.Cancel
	case CommandMoreInfo:
		return c.MoreInfo
	case CommandHelp:
		return c.Help
	}
	return CommandEntry{}
}

type matcher struct {
	cmd Command
	re  *regexp.Regexp
}

func compileCommands(c Commands) ([]matcher, error) {
	out := make([]matcher, 0, len(Precedence))
	for _, cmd := range Precedence {
		entry := c.entry(cmd)
		pattern := entry.Pattern
		if pattern == "" {
			pattern = regexp.QuoteMeta(entry.Label)
		}
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s pattern %q: %v", ErrInvalidMenu, cmd, entry.Pattern, err)
		}
		out = append(out, matcher{cmd: cmd, re: re})
	}
	return out, nil
}
