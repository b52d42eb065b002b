package git

import "slices"

// Command is a git subcommand ngm runs across repositories.
type Command string

const (
	CommandStatus   Command = "status"
	CommandPull     Command = "pull"
	CommandPush     Command = "push"
	CommandCheckout Command = "checkout"
	CommandAdd      Command = "add"
	CommandCommit   Command = "commit"
)

// Args returns the full argument list for c followed by the user's extra args.
// Status ignores extra args: its flags are fixed.
func (c Command) Args(extra ...string) []string {
	if c == CommandStatus {
		return slices.Clone(StatusArgs)
	}
	return append([]string{string(c)}, extra...)
}

// CheckoutTarget returns the branch a checkout with args switches to: the
// value of -b/-B when present, otherwise the first non-flag argument.
// Empty when args name no branch (e.g. "checkout -- file").
func CheckoutTarget(args []string) string {
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "--":
			return ""
		case a == "-b" || a == "-B" || a == "--orphan":
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		case len(a) > 0 && a[0] == '-':
			continue
		default:
			return a
		}
	}
	return ""
}
